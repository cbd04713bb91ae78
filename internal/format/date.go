package format

import (
	"strings"
	"time"

	"github.com/ginjaninja78/cardview/internal/heading"
)

// DefaultOutputLayout is the layout used when a DateConverter has none.
const DefaultOutputLayout = "Jan 2, 2006"

// DateConverter turns date-like values into display strings.
type DateConverter struct {
	// InputLayouts are tried in order for string values.
	InputLayouts []string

	// OutputLayout is the display layout. Empty uses DefaultOutputLayout.
	OutputLayout string

	// Location is used to parse and display times. nil means UTC.
	Location *time.Location
}

// NewDateConverter builds a converter from configured layouts.
func NewDateConverter(inputLayouts []string, outputLayout string) DateConverter {
	return DateConverter{
		InputLayouts: inputLayouts,
		OutputLayout: outputLayout,
	}
}

// Convert formats time values and strings that parse with one of the input
// layouts. Anything else is returned unchanged.
func (c DateConverter) Convert(value any) any {
	switch v := value.(type) {
	case time.Time:
		return c.format(v)
	case *time.Time:
		if v == nil {
			return value
		}
		return c.format(*v)
	case string:
		if t, ok := c.parse(v); ok {
			return c.format(t)
		}
	}
	return value
}

// Func exposes Convert as a heading.DateConverter.
func (c DateConverter) Func() heading.DateConverter {
	return c.Convert
}

func (c DateConverter) parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range c.InputLayouts {
		if t, err := time.ParseInLocation(layout, s, c.location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (c DateConverter) format(t time.Time) string {
	layout := c.OutputLayout
	if layout == "" {
		layout = DefaultOutputLayout
	}
	return t.In(c.location()).Format(layout)
}

func (c DateConverter) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
