package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cardview/internal/cards"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// showConfigured also lists the card configurations from cards_dir.
var showConfigured bool

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the built-in card kinds",
	Long: `The cards command lists every built-in card kind with its line priority and
limit. With --configured it also lists the card configurations in cards_dir.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		catalog := cards.DefaultCatalog()

		kinds := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("KIND", "LIMIT", "PRIORITY")
		for _, name := range catalog.Names() {
			kind, _ := catalog.Lookup(name)
			kinds.Row(kind.Name, limitText(kind.Limit), strings.Join(kind.Priority, ", "))
		}
		fmt.Fprintln(out, kinds.Render())

		if !showConfigured {
			return nil
		}

		_, cardConfigs, err := loadConfigs()
		if err != nil {
			return err
		}

		configured := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("CARD", "KIND", "PATTERNS")
		for _, card := range cardConfigs {
			kind := card.Kind
			if kind == "" {
				kind = "(custom)"
			}
			configured.Row(card.CardName, kind, strings.Join(card.FileMatchingPatterns, ", "))
		}
		fmt.Fprintln(out, configured.Render())
		return nil
	},
}

func limitText(limit int) string {
	if limit == heading.NoLimit {
		return "all"
	}
	return strconv.Itoa(limit)
}

func init() {
	rootCmd.AddCommand(cardsCmd)

	cardsCmd.Flags().BoolVar(&showConfigured, "configured", false, "Also list configured cards")
}
