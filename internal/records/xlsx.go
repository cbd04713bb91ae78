package records

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// loadXLSX reads the configured sheet, or the first one, of a workbook.
// Header and data rows follow the card's csv_settings.
func loadXLSX(_ context.Context, path string, card *config.CardConfig) ([]heading.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := card.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheetName, err)
	}

	return rowsToRecords(rows, card.CSVSettings)
}
