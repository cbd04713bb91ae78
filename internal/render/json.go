package render

import (
	"encoding/json"
	"fmt"
)

// JSONRenderer writes a document as indented JSON.
type JSONRenderer struct {
	Indent string
}

// Render implements Renderer.
func (r *JSONRenderer) Render(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", r.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension implements Renderer.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
