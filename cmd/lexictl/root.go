package main

import (
	"fmt"
	"os"

	"lexiguide/internal/config"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// container is built once, before any subcommand runs.
var container *config.Container

var rootCmd = &cobra.Command{
	Use:   "lexictl",
	Short: "LexiGuide CLI - extract, analyze and define legal text offline",
	Long: `lexictl runs the LexiGuide document pipelines without the HTTP API.

It reads the same environment variables as the server. Documents are kept in
memory for the duration of a command; nothing is written to Supabase.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if container == nil {
			container = config.NewContainer(cmd.Context(), config.Options{LocalStore: true})
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if container != nil {
		_ = container.Close(rootCmd.Context())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
