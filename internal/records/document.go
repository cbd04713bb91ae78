package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// loadJSON reads an array of objects, or a single object.
func loadJSON(_ context.Context, path string, _ *config.CardConfig) ([]heading.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []heading.Record{}, nil
	}

	if data[0] == '{' {
		var record heading.Record
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return []heading.Record{record}, nil
	}

	var records []heading.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return compact(records), nil
}

// loadYAML reads a list of mappings, or a single mapping.
func loadYAML(_ context.Context, path string, _ *config.CardConfig) ([]heading.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return []heading.Record{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		var record heading.Record
		if err := root.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode YAML record: %w", err)
		}
		return []heading.Record{record}, nil
	case yaml.SequenceNode:
		var records []heading.Record
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode YAML records: %w", err)
		}
		return compact(records), nil
	default:
		return nil, fmt.Errorf("YAML records must be a list or a mapping")
	}
}

// compact drops null entries from a decoded list.
func compact(records []heading.Record) []heading.Record {
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
