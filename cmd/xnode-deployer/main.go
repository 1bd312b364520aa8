// Package main is the entry point for the xnode-deployer CLI.
//
// xnode-deployer provisions and decommissions Xnode machines on supported
// cloud providers (Hivelocity, Hyperstack, Hetzner Cloud) behind one
// uniform lifecycle: deploy, ipv4, undeploy. Handles for deployed machines
// are persisted locally or in an S3 bucket so a later undeploy can run from
// a different process or host.
//
// For detailed usage information, run:
//
//	xnode-deployer --help
package main

import (
	"fmt"
	"os"

	"github.com/openmesh-network/xnode-deployer-go/cmd/xnode-deployer/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
