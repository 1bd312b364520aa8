package commands

import (
	"github.com/spf13/cobra"

	"github.com/openmesh-network/xnode-deployer-go/cmd/xnode-deployer/handlers"
)

// Undeploy returns the undeploy command.
func Undeploy() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "undeploy",
		Short: "Delete a deployed machine and its handle record",
		Long: `Undeploy deletes the machine referenced by the persisted handle record
and removes the record afterwards.

The configuration must select the same provider (and for Hivelocity, the
same machine class) the machine was deployed with, since the delete
endpoint is derived from it.

Example:
  xnode-deployer undeploy -c xnode.yaml --name my-xnode

WARNING: this operation is irreversible. The machine and its data are lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Undeploy(cmd.Context(), configPath, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployer configuration file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Deployment name the handle record was saved under (required)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
