package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/cards"
	"github.com/ginjaninja78/cardview/internal/validation"
)

// validateLog is an optional path for the validation log.
var validateLog string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate card configurations without rendering",
	Long: `The validate command loads every card configuration and checks it against
the built-in card kinds. Errors make the command exit non-zero; warnings are
reported but do not.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		_, cardConfigs, err := loadConfigs()
		if err != nil {
			return err
		}

		result := validation.ValidateAll(cardConfigs, cards.DefaultCatalog())
		logger.Info("validation finished",
			zap.Int("cards", result.CardsValidated),
			zap.Int("errors", result.ErrorCount),
			zap.Int("warnings", result.WarningCount))

		fmt.Fprintf(out, "Validated %d card configuration(s)\n", result.CardsValidated)
		fmt.Fprintln(out, validation.FormatErrors(result.Errors))

		if validateLog != "" {
			if err := validation.WriteErrorLog(result.Errors, validateLog); err != nil {
				return err
			}
			fmt.Fprintf(out, "Validation log written to %s\n", validateLog)
		}

		if !result.IsValid {
			return fmt.Errorf("%d card configuration error(s)", result.ErrorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateLog, "log", "", "Also write findings to this file")
}
