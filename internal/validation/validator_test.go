package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/cardview/internal/cards"
	"github.com/ginjaninja78/cardview/internal/config"
)

func intPtr(n int) *int { return &n }

func rules(findings []*ValidationError) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Severity+":"+f.Rule)
	}
	return out
}

func TestValidateCard_Valid(t *testing.T) {
	card := &config.CardConfig{
		CardName:             "events",
		Kind:                 "event",
		FileMatchingPatterns: []string{"events_*.csv"},
		Fields:               []config.FieldSpec{{Key: "room", Icon: "fa-door-open"}},
		Priority:             []string{"location", "room", "startdate"},
		Limit:                intPtr(-1),
	}

	assert.Empty(t, ValidateCard(card, cards.DefaultCatalog()))
}

func TestValidateCard_Findings(t *testing.T) {
	card := &config.CardConfig{
		Kind: "meeting",
		Fields: []config.FieldSpec{
			{Key: ""},
			{Key: "a", Label: []config.LabelAction{{Type: "regex_replace", Find: "(["}}},
			{Key: "a", Empty: "sometimes"},
		},
		Priority: []string{"a", "ghost"},
		Limit:    intPtr(-4),
	}

	findings := ValidateCard(card, cards.DefaultCatalog())

	assert.Equal(t, []string{
		"error:name",
		"warning:patterns",
		"error:kind",
		"error:fields",
		"error:label",
		"error:fields",
		"error:empty",
		"error:limit",
		"warning:priority",
	}, rules(findings))
	assert.True(t, HasErrors(findings))
	assert.Equal(t, "ghost", findings[len(findings)-1].Field)
}

func TestValidateCard_CustomCardNeedsFields(t *testing.T) {
	findings := ValidateCard(&config.CardConfig{CardName: "x", FileMatchingPatterns: []string{"*"}}, cards.DefaultCatalog())
	assert.Equal(t, []string{"error:fields"}, rules(findings))
}

func TestValidateAll(t *testing.T) {
	good := &config.CardConfig{CardName: "notes", Kind: "note", FileMatchingPatterns: []string{"*.json"}}
	dup := &config.CardConfig{CardName: "notes", Kind: "note"}

	result := ValidateAll([]*config.CardConfig{good, dup}, cards.DefaultCatalog())

	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.CardsValidated)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, []string{"warning:patterns", "error:name"}, rules(result.Errors))
}

func TestHasErrors_WarningsOnly(t *testing.T) {
	assert.False(t, HasErrors([]*ValidationError{{Severity: SeverityWarning}}))
	assert.False(t, HasErrors(nil))
}

func TestFormatAndWriteErrorLog(t *testing.T) {
	assert.Equal(t, "No validation errors.", FormatErrors(nil))

	findings := []*ValidationError{
		{Severity: SeverityError, Card: "events", Field: "speaker", Rule: "label", Message: "bad"},
		{Severity: SeverityWarning, Card: "events", Rule: "patterns", Message: "none"},
	}
	text := FormatErrors(findings)
	assert.Contains(t, text, "2 finding(s)")
	assert.Contains(t, text, "1. [ERROR] Card 'events', Field 'speaker' (label): bad")
	assert.Contains(t, text, "2. [WARNING] Card 'events' (patterns): none")

	path := filepath.Join(t.TempDir(), "validation.log")
	require.NoError(t, WriteErrorLog(findings, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Card validation log")
	assert.Contains(t, string(data), text)
}
