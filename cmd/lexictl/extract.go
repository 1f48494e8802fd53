package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lexiguide/internal/domain"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text from a PDF, image, text, Markdown or EPUB file",
	Example: `  lexictl extract lease.pdf
  lexictl extract scan.png --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		return runExtract(ctx, cmd.OutOrStdout(), container.ExtractionService, args[0], jsonOut)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().Duration("timeout", 5*time.Minute, "Processing timeout")
}

func runExtract(ctx context.Context, out io.Writer, extractor domain.TextExtractor, path string, jsonOut bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	extracted, err := extractor.Extract(ctx, filepath.Base(path), "", data)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(extracted)
	}

	fmt.Fprintf(out, "Method: %s", extracted.Method)
	if extracted.Confidence > 0 && extracted.Confidence < 1 {
		fmt.Fprintf(out, " (confidence %.2f)", extracted.Confidence)
	}
	fmt.Fprintf(out, "\nPages: %d\n%s\n\n", len(extracted.Pages), strings.Repeat("-", 40))
	fmt.Fprintln(out, extracted.Text)
	return nil
}
