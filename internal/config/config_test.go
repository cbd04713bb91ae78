package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMainConfig_Defaults(t *testing.T) {
	cfg, err := ParseMainConfig([]byte("input_dir: ./records\n"))
	require.NoError(t, err)

	assert.Equal(t, "./records", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./cards", cfg.CardsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "{card}_{timestamp}_{uuid}", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 48, cfg.CardWidth)
	assert.Equal(t, "Jan 2, 2006", cfg.DateOutputLayout)
	assert.NotEmpty(t, cfg.DateInputLayouts)
	assert.True(t, cfg.ShouldContinueOnError())
}

func TestParseMainConfig_ContinueOnErrorFalse(t *testing.T) {
	cfg, err := ParseMainConfig([]byte("continue_on_error: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.ShouldContinueOnError())
}

func TestParseMainConfig_Invalid(t *testing.T) {
	_, err := ParseMainConfig([]byte("input_dir: [unclosed"))
	require.Error(t, err)
}

func TestLoadMainConfig_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "input_dir: " + filepath.Join(dir, "in") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"cards_dir: " + filepath.Join(dir, "cards") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	for _, d := range []string{cfg.InputDir, cfg.OutputDir, cfg.CardsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadMainConfig_RejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "output_format: yaml\ninput_dir: " + filepath.Join(dir, "in") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadMainConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")
}

const productCard = `
kind: product
file_matching_patterns: ["products_*.csv"]
csv_settings:
  delimiter: "|"
fields:
  - key: description
  - key: priceeach
    icon: fa-tag
    label:
      - type: currency
        value: "$"
  - key: qtysold
    empty: zero_allowed
priority: [description, priceeach, qtysold]
limit: 2
`

func TestParseCardConfig(t *testing.T) {
	card, err := ParseCardConfig([]byte(productCard))
	require.NoError(t, err)

	assert.Equal(t, "product", card.Kind)
	assert.Equal(t, "|", card.CSVSettings.Delimiter)
	assert.Equal(t, 1, card.CSVSettings.HeaderRows)
	assert.Equal(t, 2, card.CSVSettings.DataStartRow)
	require.Len(t, card.Fields, 3)
	assert.Equal(t, "fa-tag", card.Fields[1].Icon)
	assert.Equal(t, []LabelAction{{Type: "currency", Value: "$"}}, card.Fields[1].Label)
	assert.Equal(t, "zero_allowed", card.Fields[2].Empty)
	require.NotNil(t, card.Limit)
	assert.Equal(t, 2, *card.Limit)
}

func TestParseCardConfig_NoLimit(t *testing.T) {
	card, err := ParseCardConfig([]byte("kind: note\n"))
	require.NoError(t, err)
	assert.Nil(t, card.Limit)
}

func TestLoadCardConfigs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_products.yaml"), []byte(productCard), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_notes.yml"), []byte("kind: note\nfile_matching_patterns: ['*.json']\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("nope"), 0644))

	cards, err := LoadCardConfigs(dir)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "a_notes", cards[0].CardName)
	assert.Equal(t, "b_products", cards[1].CardName)

	assert.Same(t, cards[1], MatchCard("/in/products_2024.csv", cards))
	assert.Same(t, cards[0], MatchCard("notes.json", cards))
	assert.Nil(t, MatchCard("unknown.xlsx", cards))

	assert.Same(t, cards[0], FindCard("a_notes", cards))
	assert.Nil(t, FindCard("missing", cards))
}

func TestLoadCardConfigs_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("fields: {"), 0644))

	_, err := LoadCardConfigs(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
