package records

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// loadDelimited parses a delimited text file using the card's CSV settings.
func loadDelimited(_ context.Context, path string, card *config.CardConfig) ([]heading.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, card.CSVSettings)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return rowsToRecords(allRows, card.CSVSettings)
}

// configureReader applies the delimiter setting and relaxes the reader for
// hand-edited exports.
//
// DELIMITER ALIASES:
//   - "\t", "tab"        : Tab
//   - "|", "pipe"        : Pipe
//   - ";", "semicolon"   : Semicolon
//   - anything else      : Its first character
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows may have a varying number of fields.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}
