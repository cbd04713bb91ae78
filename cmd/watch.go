package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cardview/internal/pipeline"
	"github.com/ginjaninja78/cardview/internal/records"
)

var (
	watchDebounce time.Duration
	watchInitial  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render record files as they change",
	Long: `The watch command renders every record file written to the input directory
once it has been quiet for the debounce interval. It runs until interrupted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		mainConfig, cardConfigs, err := loadConfigs()
		if err != nil {
			return err
		}

		renderer, err := newRenderer(mainConfig, outputFormat, false)
		if err != nil {
			return err
		}
		p := pipeline.New(mainConfig, cardConfigs, renderer, logger)
		p.CardName = cardName

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		report := func(result pipeline.Result) {
			name := filepath.Base(result.FilePath)
			if result.Success {
				fmt.Fprintf(out, "  ✓ %s -> %s\n", name, result.OutputFile)
			} else {
				fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
			}
		}

		if watchInitial {
			existing, err := p.Files.DiscoverInputFiles(records.Supported)
			if err != nil {
				return fmt.Errorf("failed to discover input files: %w", err)
			}
			for _, result := range p.RunAll(ctx, existing) {
				report(result)
			}
		}

		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", mainConfig.InputDir)
		return p.Watch(ctx, mainConfig.InputDir, watchDebounce, report)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", pipeline.DefaultDebounce, "Quiet time before a changed file is rendered")
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "Render files already in the input directory first")
	watchCmd.Flags().StringVar(&cardName, "card", "", "Card configuration to use instead of pattern matching")
	watchCmd.Flags().StringVar(&outputFormat, "format", "", "Output format: text, json or xml (default from config)")
}
