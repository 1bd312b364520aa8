package commands

import (
	"github.com/spf13/cobra"

	"github.com/openmesh-network/xnode-deployer-go/cmd/xnode-deployer/handlers"
)

// IPv4 returns the ipv4 command.
func IPv4() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "ipv4",
		Short: "Print the public IPv4 address of a deployed machine",
		Long: `IPv4 looks up the public IPv4 address of the machine referenced by the
persisted handle record and prints it to stdout.

A machine that has no address assigned yet is reported as pending, not as
an error; re-run later or use deploy --wait.

Example:
  xnode-deployer ipv4 -c xnode.yaml --name my-xnode`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.IPv4(cmd.Context(), configPath, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployer configuration file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Deployment name the handle record was saved under (required)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
