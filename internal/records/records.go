// =============================================================================
// Card View - Record Sources
// =============================================================================
//
// This module loads the records a card is built from. A record is a flat
// attribute map (heading.Record); every source below produces a list of them.
//
// SUPPORTED SOURCES:
//   - .csv / .tsv / .txt    : Delimited text, configured per card
//   - .xlsx                 : Excel workbooks (configured or first sheet)
//   - .json                 : An array of objects, or a single object
//   - .yaml / .yml          : A list of mappings, or a single mapping
//   - .db / .sqlite / .sqlite3 : SQLite databases (table or query)
//
// CELL COERCION:
//   Delimited text and spreadsheet cells arrive as strings. They are coerced
//   so the default emptiness rule sees real values: numeric text becomes a
//   float64 and true/false become bools. Numbers with leading zeros (postal
//   codes, phone numbers) stay text.
//
// =============================================================================

package records

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// loaderFunc loads all records from one file.
type loaderFunc func(ctx context.Context, path string, card *config.CardConfig) ([]heading.Record, error)

// loaders maps a lower-case file extension to its loader.
var loaders = map[string]loaderFunc{
	".csv":     loadDelimited,
	".tsv":     loadDelimited,
	".txt":     loadDelimited,
	".xlsx":    loadXLSX,
	".json":    loadJSON,
	".yaml":    loadYAML,
	".yml":     loadYAML,
	".db":      loadSQLite,
	".sqlite":  loadSQLite,
	".sqlite3": loadSQLite,
}

// Load reads every record from a file, choosing the source by extension.
//
// PARAMETERS:
//   - ctx: Cancels long reads (SQLite queries, large files).
//   - path: The record file.
//   - card: The card configuration supplying source settings. May be nil.
//
// RETURNS:
//   - The records in file order.
//   - An error for unsupported extensions or unreadable files.
func Load(ctx context.Context, path string, card *config.CardConfig) ([]heading.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	load, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported record file type %q", ext)
	}

	if card == nil {
		card = &config.CardConfig{}
		config.ApplyCardConfigDefaults(card)
	}
	if ext == ".tsv" && card.CSVSettings.Delimiter == "," {
		settings := *card
		settings.CSVSettings.Delimiter = "tab"
		card = &settings
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return load(ctx, path, card)
}

// Supported reports whether a file has a loadable extension.
func Supported(path string) bool {
	_, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the supported extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// =============================================================================
// ROW HANDLING
// =============================================================================

var numberPattern = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)

// Coerce converts a text cell into a typed value.
func Coerce(cell string) any {
	s := strings.TrimSpace(cell)

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if numberPattern.MatchString(s) && !hasLeadingZero(s) && significantDigits(s) <= maxExactDigits {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// maxExactDigits is the longest digit run a float64 always holds exactly.
// Longer numbers (account numbers, long ids) stay text.
const maxExactDigits = 15

// significantDigits counts digits without sign, leading zeros, and trailing
// zeros of the fraction.
func significantDigits(s string) int {
	s = strings.TrimLeft(s, "+-")
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
	}
	s = strings.Replace(s, ".", "", 1)
	s = strings.TrimLeft(s, "0")
	return len(s)
}

func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// rowsToRecords turns a grid of text cells into records, using the header
// settings of the card. Header rows are merged column by column.
func rowsToRecords(allRows [][]string, settings config.CSVSettings) ([]heading.Record, error) {
	if len(allRows) == 0 {
		return []heading.Record{}, nil
	}

	headers, err := extractHeaders(allRows, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	startIndex := settings.DataStartRow - 1
	if startIndex < settings.HeaderRows {
		startIndex = settings.HeaderRows
	}
	if startIndex >= len(allRows) {
		return []heading.Record{}, nil
	}

	records := make([]heading.Record, 0, len(allRows)-startIndex)
	for _, row := range allRows[startIndex:] {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		record := make(heading.Record, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				record[header] = Coerce(row[colIndex])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// extractHeaders extracts the column headers, merging multi-row headers.
//
// EXAMPLE (2 header rows):
//
//	Row 1: "Session", "",      "Speaker"
//	Row 2: "Title",   "Room",  "Name"
//	Result: "Session Title", "Room", "Speaker Name"
func extractHeaders(allRows [][]string, settings config.CSVSettings) ([]string, error) {
	if settings.HeaderRows <= 0 {
		return nil, fmt.Errorf("header_rows must be at least 1")
	}
	if len(allRows) < settings.HeaderRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}
	if settings.HeaderRows == 1 {
		return cleanHeaders(allRows[0]), nil
	}

	maxCols := 0
	for _, row := range allRows[:settings.HeaderRows] {
		maxCols = max(maxCols, len(row))
	}

	headers := make([]string, maxCols)
	for col := 0; col < maxCols; col++ {
		var parts []string
		for _, row := range allRows[:settings.HeaderRows] {
			if col < len(row) {
				if value := strings.TrimSpace(row[col]); value != "" {
					parts = append(parts, value)
				}
			}
		}
		headers[col] = strings.Join(parts, " ")
	}

	return cleanHeaders(headers), nil
}

// cleanHeaders trims headers and names blank ones Column_N.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
