// Package main is the entry point for the WanderNote API.
// Its sole responsibility is wiring dependencies together behind the cobra
// commands. No business logic belongs here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/wandernote/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wandernote",
		Short: "WanderNote travel journal API",
		Long: `wandernote serves the WanderNote HTTP API and manages its database schema.
Configuration is read from the environment; a .env file in the working
directory is loaded first without overriding variables already set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadDotEnv()
		},
		RunE: runServe,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	return root
}
