package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"lexiguide/internal/domain"

	"github.com/spf13/cobra"
)

// cliOwner owns every document the CLI loads into its in-memory store.
const cliOwner = "lexictl"

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Extract a document and print its analysis and legal glossary",
	Long: `Extract the text of a document, then run the summary and term-extraction
prompts against the configured LLM provider (LLM_PROVIDER).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		return runAnalyze(ctx, cmd.OutOrStdout(), container.DocumentService, container.AnalysisService, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Duration("timeout", 5*time.Minute, "Processing timeout")
}

func runAnalyze(ctx context.Context, out io.Writer, docs domain.DocumentService, analyses domain.AnalysisService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := docs.Upload(ctx, cliOwner, filepath.Base(path), "", f)
	if err != nil {
		return err
	}

	analysis, err := analyses.Analyze(ctx, cliOwner, doc.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# %s\n\n", doc.Name)
	fmt.Fprintf(out, "%d pages, %d words, extracted via %s\n\n", doc.PageCount, doc.WordCount, doc.Extraction.Method)
	fmt.Fprintf(out, "## Analysis\n\n%s\n\n", analysis.Summary)
	fmt.Fprintf(out, "## Legal terms\n\n%s\n\n", analysis.Terms)
	fmt.Fprintf(out, "---\n%s\n", analysis.Disclaimer)
	return nil
}
