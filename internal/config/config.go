// =============================================================================
// Card View - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the card-specific
// configurations.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Card Configs (cards/*.yaml): One file per card type (products,
//      contacts, events, ...) declaring fields, priority and limit
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Modular: Each card type has its own configuration file
//   - Extensible: New card types can be added without code changes
//   - Defaulted: Missing settings fall back to sensible values on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where record files are placed.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where rendered card documents are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives record files after a successful render.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every rendered document.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// CardsDir is the directory containing card configurations.
	// Default: "./cards"
	CardsDir string `yaml:"cards_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an extra log destination. Empty disables file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output file name, without extension.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {card}      - Card name
	//   {original}  - Input file name without extension
	// Default: "{card}_{timestamp}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// OutputFormat selects the renderer: "text", "json" or "xml".
	// Default: "text"
	OutputFormat string `yaml:"output_format"`

	// Theme selects the text renderer palette: "light" or "dark".
	// Default: "light"
	Theme string `yaml:"theme"`

	// CardWidth is the width of a text card frame in columns.
	// Default: 48
	CardWidth int `yaml:"card_width"`

	// =========================================================================
	// DATE SETTINGS
	// =========================================================================

	// DateInputLayouts are the Go time layouts tried, in order, when a date
	// field holds a string.
	DateInputLayouts []string `yaml:"date_input_layouts"`

	// DateOutputLayout is the Go time layout used for date lines.
	// Default: "Jan 2, 2006"
	DateOutputLayout string `yaml:"date_output_layout"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files rendered at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps processing other files when one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveInputs moves record files to InputArchiveDir after a render.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs"`
}

// ShouldContinueOnError reports the effective continue_on_error setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// =============================================================================
// CARD CONFIGURATION STRUCTURE
// =============================================================================

// CardConfig holds the configuration for one card type.
type CardConfig struct {
	// CardName is the human-readable name used in logs and output names.
	CardName string `yaml:"card_name"`

	// Kind names a built-in card kind whose defaults this card starts from.
	// Examples: "event", "contact", "product", "service", "travel",
	// "todo", "note", "lead". Leave empty for a fully custom card.
	Kind string `yaml:"kind"`

	// FileMatchingPatterns is a list of glob patterns matched against
	// record file names. The first card with a matching pattern is used.
	//
	// Examples:
	//   - "products_*.csv"
	//   - "*_contacts.xlsx"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// CSVSettings contains settings for parsing CSV record files.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// Sheet is the XLSX sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet,omitempty"`

	// SQL configures SQLite record files.
	SQL SQLSettings `yaml:"sql,omitempty"`

	// TitleField is the record attribute used as the card title.
	// Empty falls back to the kind's title keys.
	TitleField string `yaml:"title_field,omitempty"`

	// Fields declares the display lines. When empty, the kind's fields
	// are used. A field with the same key as a kind field replaces it.
	Fields []FieldSpec `yaml:"fields"`

	// Priority is the ordered list of keys shown on the card.
	// Empty falls back to the kind's priority, then to field order.
	Priority []string `yaml:"priority"`

	// Limit caps the number of lines. Absent means no cap beyond the
	// priority list itself.
	Limit *int `yaml:"limit,omitempty"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of header rows in the CSV file.
	// Multi-row headers are merged column by column.
	// Default: 1
	HeaderRows int `yaml:"header_rows"`

	// DataStartRow is the 1-based row number where data begins.
	// Default: HeaderRows + 1
	DataStartRow int `yaml:"data_start_row"`
}

// SQLSettings selects the rows read from a SQLite record file.
type SQLSettings struct {
	// Table is read with SELECT * when Query is empty.
	Table string `yaml:"table,omitempty"`

	// Query is a full read query.
	Query string `yaml:"query,omitempty"`
}

// FieldSpec is the YAML form of a field descriptor.
type FieldSpec struct {
	// Key is the record attribute to read.
	Key string `yaml:"key"`

	// Icon is the icon class attached to the line (e.g. "fa-calendar").
	Icon string `yaml:"icon,omitempty"`

	// IsDate routes the value through the date converter.
	IsDate bool `yaml:"is_date,omitempty"`

	// Label is a chain of label actions applied to the value.
	Label []LabelAction `yaml:"label,omitempty"`

	// Empty names the emptiness rule. Empty uses the default rule.
	// Supported: "default", "never", "zero_allowed", "blank", "falsy_string"
	Empty string `yaml:"empty,omitempty"`
}

// LabelAction defines a single label formatting step.
type LabelAction struct {
	// Type is the action to apply.
	// Supported types:
	//   - "prepend_string"      : Add Value before the text
	//   - "append_string"       : Add Value after the text
	//   - "template"            : Replace {value} in Value with the text
	//   - "trim"                : Remove surrounding whitespace
	//   - "uppercase"           : Convert to uppercase
	//   - "lowercase"           : Convert to lowercase
	//   - "title_case"          : Capitalize each word
	//   - "replace"             : Replace Find with Value
	//   - "regex_replace"       : Replace regex Find with Value
	//   - "substring"           : Keep "start,end" runes
	//   - "truncate"            : Cut to Value runes, adding an ellipsis
	//   - "pad_zeros_to_length" : Left-pad with zeros to Value length
	//   - "format_number"       : Fixed Value decimal places
	//   - "currency"            : Thousands separators, 2 decimals, Value symbol
	//   - "comma"               : Thousands separators
	//   - "ordinal"             : 1 -> 1st, 2 -> 2nd
	//   - "pluralize"           : "<n> <Value>" with Value pluralized
	//   - "lookup"              : Replace using LookupTable
	//   - "lookup_with_default" : Like lookup, Value when not found
	//   - "if_empty_use_default": Value when the text is blank
	//   - "extract_digits"      : Keep digits only
	//   - "normalize_whitespace": Collapse runs of whitespace
	Type string `yaml:"type"`

	// Value is the parameter for the action.
	Value string `yaml:"value,omitempty"`

	// Find is used by "replace" and "regex_replace".
	Find string `yaml:"find,omitempty"`

	// LookupTable is used by the lookup actions.
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseMainConfig(data)
	if err != nil {
		return nil, err
	}

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ParseMainConfig parses and defaults a main configuration without
// touching the file system.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyMainConfigDefaults(&config)
	return &config, nil
}

// ApplyMainConfigDefaults sets default values for any unset option.
func ApplyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.CardsDir == "" {
		config.CardsDir = "./cards"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{card}_{timestamp}_{uuid}"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "text"
	}
	if config.Theme == "" {
		config.Theme = "light"
	}
	if config.CardWidth <= 0 {
		config.CardWidth = 48
	}
	if len(config.DateInputLayouts) == 0 {
		config.DateInputLayouts = DefaultDateInputLayouts()
	}
	if config.DateOutputLayout == "" {
		config.DateOutputLayout = "Jan 2, 2006"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
}

// DefaultDateInputLayouts returns the layouts tried for string dates.
func DefaultDateInputLayouts() []string {
	return []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"01/02/2006",
		"1/2/2006",
		"Jan 2, 2006",
	}
}

// validateMainConfig makes sure the working directories exist.
func validateMainConfig(config *MainConfig) error {
	switch config.OutputFormat {
	case "text", "json", "xml":
	default:
		return fmt.Errorf("unsupported output_format %q", config.OutputFormat)
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.CardsDir,
	}
	if config.ArchiveInputs {
		dirs = append(dirs, config.InputArchiveDir, config.OutputArchiveDir)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadCardConfigs loads all card configurations from a directory.
//
// PARAMETERS:
//   - cardsDir: The directory containing card configuration files.
//
// RETURNS:
//   - The card configurations sorted by file name, so that pattern
//     matching is deterministic.
//   - An error if the directory cannot be read or any file cannot be parsed.
func LoadCardConfigs(cardsDir string) ([]*CardConfig, error) {
	files, err := filepath.Glob(filepath.Join(cardsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list card files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(cardsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list card files: %w", err)
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)

	configs := make([]*CardConfig, 0, len(files))
	for _, file := range files {
		config, err := LoadCardConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// LoadCardConfig loads a single card configuration file.
// When card_name is absent, the file name without extension is used.
func LoadCardConfig(filePath string) (*CardConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config, err := ParseCardConfig(data)
	if err != nil {
		return nil, err
	}

	if config.CardName == "" {
		base := filepath.Base(filePath)
		config.CardName = base[:len(base)-len(filepath.Ext(base))]
	}

	return config, nil
}

// ParseCardConfig parses and defaults a card configuration.
func ParseCardConfig(data []byte) (*CardConfig, error) {
	var config CardConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	ApplyCardConfigDefaults(&config)
	return &config, nil
}

// ApplyCardConfigDefaults sets default values for a card configuration.
func ApplyCardConfigDefaults(config *CardConfig) {
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.HeaderRows <= 0 {
		config.CSVSettings.HeaderRows = 1
	}
	if config.CSVSettings.DataStartRow <= 0 {
		config.CSVSettings.DataStartRow = config.CSVSettings.HeaderRows + 1
	}
}

// MatchCard returns the first card whose patterns match the file name.
func MatchCard(filePath string, cards []*CardConfig) *CardConfig {
	fileName := filepath.Base(filePath)

	for _, card := range cards {
		for _, pattern := range card.FileMatchingPatterns {
			matched, err := filepath.Match(pattern, fileName)
			if err != nil {
				// Invalid pattern, skip it.
				continue
			}
			if matched {
				return card
			}
		}
	}

	return nil
}

// FindCard returns the card with the given name, or nil.
func FindCard(name string, cards []*CardConfig) *CardConfig {
	for _, card := range cards {
		if card.CardName == name {
			return card
		}
	}
	return nil
}
