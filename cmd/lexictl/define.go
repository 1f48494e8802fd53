package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"lexiguide/internal/domain"

	"github.com/spf13/cobra"
)

var defineCmd = &cobra.Command{
	Use:   "define [term]",
	Short: "Look up a term in the dictionary, explained in a legal context",
	Example: `  lexictl define indemnity
  lexictl define "force majeure" --plain`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		return runDefine(ctx, cmd.OutOrStdout(), container.DictionaryService, strings.Join(args, " "), !plain)
	},
}

func init() {
	rootCmd.AddCommand(defineCmd)
	defineCmd.Flags().Bool("plain", false, "Skip the legal-context explanation")
}

func runDefine(ctx context.Context, out io.Writer, dict domain.DictionaryService, term string, legal bool) error {
	entry, err := dict.Lookup(ctx, term, legal)
	if err != nil {
		return err
	}
	fmt.Fprint(out, entry.Formatted)
	return nil
}
