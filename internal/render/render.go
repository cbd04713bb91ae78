// =============================================================================
// Card View - Output Rendering Module
// =============================================================================
//
// This module writes presented cards to an output document. Three renderers
// are provided:
//   - text: framed cards for terminals and plain-text files
//   - json: an indented JSON document for other programs
//   - xml:  an indented XML document for bulk-upload systems
//
// DOCUMENT STRUCTURE (json):
//   {
//     "card": "products",
//     "source": "products_2024.csv",
//     "generatedAt": "2024-03-01T09:30:00Z",
//     "cards": [
//       {"id": "7", "kind": "product", "title": "...", "lines": [
//         {"subHeading": "$25.00", "iconClass": "fa-tag"}
//       ]}
//     ]
//   }
//
// CUSTOMIZATION:
//   - Add a renderer by implementing Renderer and registering it in New
//   - Adjust colors in theme.go
//
// =============================================================================

package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/cardview/internal/cards"
)

// Document is everything written for one record file.
type Document struct {
	Card        string       `json:"card"`
	Source      string       `json:"source,omitempty"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Cards       []cards.Card `json:"cards"`
}

// Renderer turns a document into output bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)

	// Extension is the output file extension, including the dot.
	Extension() string
}

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// Options contains options for rendering.
type Options struct {
	// Theme selects the text palette: "light" or "dark".
	// Default: "light"
	Theme string

	// Width is the outer width of a text card in columns.
	// Default: 48
	Width int

	// Color enables ANSI colors in text output. Files are written without
	// color unless this is set.
	// Default: false
	Color bool

	// Indent is the JSON indentation string.
	// Default: "  " (two spaces)
	Indent string
}

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		Theme:  "light",
		Width:  48,
		Indent: "  ",
	}
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "xml"}

// New returns the renderer for an output format.
func New(format string, options Options) (Renderer, error) {
	defaults := DefaultOptions()
	if options.Width <= 0 {
		options.Width = defaults.Width
	}
	if options.Indent == "" {
		options.Indent = defaults.Indent
	}
	if options.Theme == "" {
		options.Theme = defaults.Theme
	}

	switch strings.ToLower(format) {
	case "text", "txt":
		theme, err := ThemeByName(options.Theme)
		if err != nil {
			return nil, err
		}
		return NewTextRenderer(theme, options), nil
	case "json":
		return &JSONRenderer{Indent: options.Indent}, nil
	case "xml":
		return &XMLRenderer{Indent: options.Indent}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
