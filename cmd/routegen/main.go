package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routegen",
		Short: "Route contract generator",
		Long: `Routegen derives a complete family of RPC route contracts from a
single entity definition: CRUD, list with composable query dimensions,
batch, soft-delete, and streaming variants.`,
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(openapiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
