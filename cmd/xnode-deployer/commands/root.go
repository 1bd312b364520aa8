// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the xnode-deployer CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xnode-deployer",
		Short: "Provision and decommission Xnode machines on cloud providers",
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Undeploy())
	cmd.AddCommand(IPv4())
	cmd.AddCommand(Version())

	return cmd
}
