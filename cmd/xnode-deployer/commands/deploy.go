package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openmesh-network/xnode-deployer-go/cmd/xnode-deployer/handlers"
)

// Deploy returns the deploy command.
//
// Deploy provisions a new machine on the configured provider and persists
// its handle under the deployment name. The remote machine is billable from
// the moment the provider accepts the request, even if this command is
// interrupted before the handle is persisted.
func Deploy() *cobra.Command {
	var (
		configPath string
		name       string
		wait       bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision a new machine and persist its handle",
		Long: `Deploy provisions a new machine on the configured provider.

The machine is bootstrapped with a cloud-init script built from the deploy
section of the configuration. Its handle is persisted under the deployment
name (see --name) so a later undeploy or ipv4 can find it.

With --wait, deploy polls the provider until the machine is assigned a
public IPv4 address and prints it.

Example:
  xnode-deployer deploy -c xnode.yaml --name my-xnode --wait

WARNING: creation is not idempotent. Retrying after an ambiguous failure
may provision a second, billable machine.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				name = "xnode-" + uuid.NewString()[:8]
			}
			return handlers.Deploy(cmd.Context(), configPath, name, wait)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployer configuration file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Deployment name used as the handle record key (default: generated)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until the machine has a public IPv4 address")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
