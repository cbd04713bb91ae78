// =============================================================================
// Card View - Render Command
// =============================================================================
//
// This file defines the 'render' command, the main command for turning
// record files into card documents.
//
// COMMAND USAGE:
//   cardview render [flags]
//
// FLAGS:
//   --dry-run : Render and print without writing or archiving files
//   --file    : Render a single file instead of the input directory
//   --card    : Use this card configuration instead of pattern matching
//   --format  : Override output_format ("text", "json" or "xml")
//   --color   : Keep ANSI colors in text output
//
// PROCESSING PIPELINE:
//   1. Load configuration files
//   2. Discover record files in the input directory
//   3. Render files concurrently, bounded by max_concurrency
//   4. Print the results and a summary
//   5. Write the summary log and, on failures, the error log
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cardview/internal/pipeline"
	"github.com/ginjaninja78/cardview/internal/records"
	"github.com/ginjaninja78/cardview/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dryRun       bool
	filePath     string
	cardName     string
	outputFormat string
	colorOutput  bool
)

// =============================================================================
// RENDER COMMAND DEFINITION
// =============================================================================

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render record files as cards",
	Long: `The render command scans the input directory for record files, matches
each one to a card configuration, and writes one card document per file.

Files are rendered concurrently. A failure in one file is logged and, unless
continue_on_error is false, does not stop the others.

On success:
  - The document is placed in the output directory
  - With archive_inputs, the input is moved to the input archive and the
    document is copied to the output archive
  - A summary log is written to the output directory

On error:
  - An error log is written to the output directory
  - The input file stays in the input directory`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render and print without writing output files")
	renderCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to render")
	renderCmd.Flags().StringVar(&cardName, "card", "", "Card configuration to use instead of pattern matching")
	renderCmd.Flags().StringVar(&outputFormat, "format", "", "Output format: text, json or xml (default from config)")
	renderCmd.Flags().BoolVar(&colorOutput, "color", false, "Keep ANSI colors in text output")
}

// =============================================================================
// MAIN RENDER FUNCTION
// =============================================================================

func runRender(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Fprintln(out, "=== Card View ===")

	mainConfig, cardConfigs, err := loadConfigs()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d card configuration(s)\n", len(cardConfigs))

	renderer, err := newRenderer(mainConfig, outputFormat, colorOutput)
	if err != nil {
		return err
	}

	p := pipeline.New(mainConfig, cardConfigs, renderer, logger)
	p.CardName = cardName
	p.DryRun = dryRun

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = p.Files.DiscoverInputFiles(records.Supported)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No record files found in the input directory.")
		return nil
	}
	fmt.Fprintf(out, "Found %d file(s) to render\n", len(inputFiles))

	// =========================================================================
	// STEP 3: RENDER FILES CONCURRENTLY
	// =========================================================================

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := p.RunAll(ctx, inputFiles)

	// =========================================================================
	// STEP 4: REPORT RESULTS
	// =========================================================================

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		switch {
		case !result.Success:
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
		case dryRun:
			fmt.Fprintf(out, "  ✓ %s (dry run, %d cards)\n\n", name, result.Stats.CardsRendered)
			out.Write(result.Rendered)
			fmt.Fprintln(out)
		default:
			fmt.Fprintf(out, "  ✓ %s -> %s\n", name, result.OutputFile)
		}
	}

	summary := pipeline.Summarize(results, startTime, time.Now())
	fmt.Fprintln(out)
	fmt.Fprint(out, utils.FormatSummary(summary))

	if dryRun {
		return nil
	}

	// =========================================================================
	// STEP 5: WRITE LOGS
	// =========================================================================

	if path, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir); err != nil {
		fmt.Fprintf(out, "Warning: failed to write summary log: %v\n", err)
	} else {
		fmt.Fprintf(out, "Summary written to %s\n", path)
	}

	if summary.FailedFiles > 0 {
		path, err := utils.WriteErrorLog(pipeline.ErrorLogEntries(results), mainConfig.OutputDir)
		if err != nil {
			fmt.Fprintf(out, "Warning: failed to write error log: %v\n", err)
		} else {
			fmt.Fprintf(out, "Errors have been logged to %s\n", path)
		}
	}

	return nil
}

// commandContext returns the command's context, or a background context
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
