// =============================================================================
// Card View - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cardview)
//   ├── renderCmd   (cardview render)
//   ├── watchCmd    (cardview watch)
//   ├── validateCmd (cardview validate)
//   ├── cardsCmd    (cardview cards)
//   └── versionCmd  (cardview version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Setting up logging before any subcommand runs
//   3. Flushing the logger when the command finishes
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/logging"
	"github.com/ginjaninja78/cardview/internal/render"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// logger is shared by all commands. It is replaced once the main
// configuration is loaded so log_level and log_file apply.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "cardview",
	Short: "Card View - Render record files as compact cards",
	Long: `Card View turns record files (CSV, TSV, XLSX, JSON, YAML or SQLite) into
cards: a title plus a few prioritized, formatted lines per record.

Each card configuration names a card kind (event, contact, product, service,
travel, todo, note, lead), the files it applies to, and optional field
overrides: icons, label actions, date handling and emptiness rules.

Example Usage:
  cardview render                      # Render all files in the input directory
  cardview render --file events.csv    # Render a single file
  cardview render --format json        # Write JSON documents instead of text
  cardview watch                       # Re-render files as they change
  cardview validate                    # Check card configurations`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Options{Verbose: verbose, Console: true})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfigs loads the main configuration and every card configuration,
// then rebuilds the logger from the main configuration.
func loadConfigs() (*config.MainConfig, []*config.CardConfig, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	l, err := logging.New(logging.Options{
		Level:   mainConfig.LogLevel,
		Verbose: verbose,
		File:    mainConfig.LogFile,
		Console: true,
	})
	if err != nil {
		return nil, nil, err
	}
	_ = logger.Sync()
	logger = l

	cardConfigs, err := config.LoadCardConfigs(mainConfig.CardsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load card configs: %w", err)
	}
	logger.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.Int("cards", len(cardConfigs)))

	return mainConfig, cardConfigs, nil
}

// newRenderer builds the renderer for the configured format. A non-empty
// override wins over output_format.
func newRenderer(mainConfig *config.MainConfig, override string, color bool) (render.Renderer, error) {
	format := mainConfig.OutputFormat
	if override != "" {
		format = override
	}
	return render.New(format, render.Options{
		Theme: mainConfig.Theme,
		Width: mainConfig.CardWidth,
		Color: color,
	})
}
