package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace writes a main config and one card config under a temp dir and
// returns the config path and the input dir.
func workspace(t *testing.T, cardYAML string) (string, string) {
	t.Helper()
	root := t.TempDir()

	mainYAML := fmt.Sprintf(`input_dir: %[1]s/input
output_dir: %[1]s/output
input_archive_dir: %[1]s/input_archive
output_archive_dir: %[1]s/output_archive
cards_dir: %[1]s/cards
log_level: error
output_name_format: "{card}_{original}"
`, root)
	configPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(mainYAML), 0644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "cards"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cards", "events.yaml"), []byte(cardYAML), 0644))

	return configPath, filepath.Join(root, "input")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dryRun, filePath, cardName, outputFormat, colorOutput = false, "", "", "", false
	showConfigured, validateLog = false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const eventsCard = `card_name: events
kind: event
file_matching_patterns: ["events*.csv"]
`

func TestRenderCommand(t *testing.T) {
	configPath, inputDir := workspace(t, eventsCard)
	require.NoError(t, os.MkdirAll(inputDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "events.csv"),
		[]byte("title,venue,city\nGo meetup,Hall A,Berlin\n"), 0644))

	out, err := execute(t, "render", "--config", configPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 file(s) to render")
	assert.Contains(t, out, "✓ events.csv")

	outputDir := filepath.Join(filepath.Dir(configPath), "output")
	assert.FileExists(t, filepath.Join(outputDir, "events_events.json"))
}

func TestRenderCommand_DryRun(t *testing.T) {
	configPath, inputDir := workspace(t, eventsCard)
	require.NoError(t, os.MkdirAll(inputDir, 0755))
	input := filepath.Join(inputDir, "events.csv")
	require.NoError(t, os.WriteFile(input, []byte("title,venue,city\nGo meetup,Hall A,Berlin\n"), 0644))

	out, err := execute(t, "render", "--config", configPath, "--dry-run", "--file", input)
	require.NoError(t, err)
	assert.Contains(t, out, "dry run, 1 cards")
	assert.Contains(t, out, "Go meetup")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(configPath), "output", "events_events.txt"))
}

func TestValidateCommand(t *testing.T) {
	configPath, _ := workspace(t, eventsCard)
	out, err := execute(t, "validate", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Validated 1 card configuration(s)")

	configPath, _ = workspace(t, "card_name: broken\nkind: invoice\n")
	_, err = execute(t, "validate", "--config", configPath)
	require.Error(t, err)
}

func TestCardsCommand(t *testing.T) {
	out, err := execute(t, "cards")
	require.NoError(t, err)
	for _, kind := range []string{"event", "contact", "product", "lead"} {
		assert.Contains(t, out, kind)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    "+Version)
}
