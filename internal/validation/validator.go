// =============================================================================
// Card View - Validation Module
// =============================================================================
//
// This module checks card configurations before any record is rendered.
// A card that would fail at render time, or silently show nothing, is
// reported here with the field and rule involved.
//
// VALIDATION RULES:
//   - name:       Every card needs a name (errors)
//   - patterns:   A card without file patterns only runs via --card (warning)
//   - kind:       A kind must exist in the catalog (error)
//   - fields:     A custom card needs fields; keys must be set and unique
//   - label:      Every label action chain must compile (error)
//   - empty:      Empty rules must be known (error)
//   - limit:      -1 (no limit) or zero and above (error)
//   - priority:   Keys should be producible by a field or the kind (warning)
//
// SEVERITY LEVELS:
//   - error:   The card cannot be used
//   - warning: The card works but probably not as intended
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/cardview/internal/cards"
	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/format"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is "error" or "warning".
	Severity string

	// Card is the card name.
	Card string

	// Field is the field key or setting involved, if any.
	Field string

	// Rule is the rule that was checked.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] Card '%s' (%s): %s",
			strings.ToUpper(e.Severity), e.Card, e.Rule, e.Message)
	}
	return fmt.Sprintf("[%s] Card '%s', Field '%s' (%s): %s",
		strings.ToUpper(e.Severity), e.Card, e.Field, e.Rule, e.Message)
}

// ValidationResult contains the results of validating many cards.
type ValidationResult struct {
	// IsValid is true when there are no errors.
	IsValid bool

	// Errors contains all findings, errors and warnings.
	Errors []*ValidationError

	// ErrorCount is the number of errors (not warnings).
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// CardsValidated is the number of cards checked.
	CardsValidated int
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateAll validates every card and checks that names are unique.
func ValidateAll(cardConfigs []*config.CardConfig, catalog *cards.Catalog) *ValidationResult {
	result := &ValidationResult{
		IsValid:        true,
		Errors:         make([]*ValidationError, 0),
		CardsValidated: len(cardConfigs),
	}

	seen := make(map[string]bool, len(cardConfigs))
	for _, card := range cardConfigs {
		findings := ValidateCard(card, catalog)

		if card.CardName != "" {
			if seen[card.CardName] {
				findings = append(findings, &ValidationError{
					Severity: SeverityError,
					Card:     card.CardName,
					Rule:     "name",
					Message:  "duplicate card name",
				})
			}
			seen[card.CardName] = true
		}

		for _, finding := range findings {
			result.Errors = append(result.Errors, finding)
			if finding.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false
			} else {
				result.WarningCount++
			}
		}
	}

	return result
}

// ValidateCard validates a single card configuration.
//
// PARAMETERS:
//   - card: The card configuration.
//   - catalog: The catalog its kind is looked up in.
//
// RETURNS:
//   - All findings, in rule order. Empty when the card is fine.
func ValidateCard(card *config.CardConfig, catalog *cards.Catalog) []*ValidationError {
	var findings []*ValidationError
	add := func(severity, field, rule, msg string, args ...any) {
		findings = append(findings, &ValidationError{
			Severity: severity,
			Card:     card.CardName,
			Field:    field,
			Rule:     rule,
			Message:  fmt.Sprintf(msg, args...),
		})
	}

	if strings.TrimSpace(card.CardName) == "" {
		add(SeverityError, "", "name", "card_name is required")
	}
	if len(card.FileMatchingPatterns) == 0 {
		add(SeverityWarning, "", "patterns", "no file_matching_patterns; the card is only used when selected explicitly")
	}

	var kind cards.Kind
	hasKind := false
	if card.Kind != "" {
		kind, hasKind = catalog.Lookup(card.Kind)
		if !hasKind {
			add(SeverityError, "kind", "kind", "unknown kind %q (known: %s)", card.Kind, strings.Join(catalog.Names(), ", "))
		}
	} else if len(card.Fields) == 0 {
		add(SeverityError, "fields", "fields", "a card without a kind needs fields")
	}

	producible := make(map[string]bool)
	if hasKind {
		for _, f := range kind.Fields {
			producible[f.Key] = true
		}
		for _, key := range kind.Priority {
			producible[key] = true
		}
	}

	keys := make(map[string]bool, len(card.Fields))
	for i, spec := range card.Fields {
		key := strings.TrimSpace(spec.Key)
		if key == "" {
			add(SeverityError, fmt.Sprintf("fields[%d]", i), "fields", "field key is required")
			continue
		}
		if keys[key] {
			add(SeverityError, key, "fields", "duplicate field key")
		}
		keys[key] = true
		producible[key] = true

		if _, err := format.Compile(spec.Label); err != nil {
			add(SeverityError, key, "label", "%v", err)
		}
		if _, err := format.EmptyRule(spec.Empty); err != nil {
			add(SeverityError, key, "empty", "%v", err)
		}
	}

	if card.Limit != nil && *card.Limit < heading.NoLimit {
		add(SeverityError, "limit", "limit", "limit must be -1 (no limit) or at least 0, got %d", *card.Limit)
	}

	for _, key := range card.Priority {
		if !producible[key] {
			add(SeverityWarning, key, "priority", "no field or kind line produces this key")
		}
	}

	return findings
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []*ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes validation errors to a log file.
//
// PARAMETERS:
//   - errors: The validation errors to write.
//   - filePath: The path to the output file.
//
// RETURNS:
//   - An error if writing fails.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Card validation log\nGenerated: %s\n\n", time.Now().Format(time.RFC3339))
	writer.WriteString(FormatErrors(errors))

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
