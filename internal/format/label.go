// =============================================================================
// Card View - Label Formatting Engine
// =============================================================================
//
// This module turns the label actions declared in a card configuration into
// a heading.LabelFunc, the function that renders a raw record value as the
// sub-heading text of a card line.
//
// ACTION TYPES:
//   - String manipulations (prepend, append, trim, case conversion)
//   - Numeric formatting (padding, precision, currency, ordinals)
//   - Lookup table replacements
//   - Regular expression replacements
//   - Templates
//
// COMPILATION:
//   Actions are compiled once per card, when the configuration is resolved.
//   Unknown types, bad regular expressions and bad numeric parameters are
//   reported then, so rendering itself never fails on a label.
//
// CUSTOMIZATION:
//   - Add new action types by adding cases to compileAction
//   - Chain multiple actions for complex labels
//
// =============================================================================

package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// step is one compiled label action.
type step func(string) string

var (
	digitsPattern     = regexp.MustCompile(`\d+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// =============================================================================
// COMPILATION
// =============================================================================

// Compile compiles a chain of label actions into a label function.
//
// PARAMETERS:
//   - actions: The label actions, applied in order.
//
// RETURNS:
//   - A label function that starts from heading.Stringify(value) and applies
//     every action. nil when there are no actions, so the default text is used.
//   - An error naming the first action that cannot be compiled.
func Compile(actions []config.LabelAction) (heading.LabelFunc, error) {
	if len(actions) == 0 {
		return nil, nil
	}

	steps := make([]step, 0, len(actions))
	for i, action := range actions {
		s, err := compileAction(action)
		if err != nil {
			return nil, fmt.Errorf("label action %d (%s): %w", i+1, action.Type, err)
		}
		steps = append(steps, s)
	}

	return func(value any) string {
		text := heading.Stringify(value)
		for _, s := range steps {
			text = s(text)
		}
		return text
	}, nil
}

// compileAction compiles a single label action.
//
// SUPPORTED ACTIONS:
//   See the switch statement below for all supported action types.
func compileAction(action config.LabelAction) (step, error) {
	switch action.Type {

	// =========================================================================
	// STRING MANIPULATIONS
	// =========================================================================

	case "prepend_string":
		// EXAMPLE: "Main Hall" with value "Room: " -> "Room: Main Hall"
		return func(s string) string { return action.Value + s }, nil

	case "append_string":
		// EXAMPLE: "45" with value " min" -> "45 min"
		return func(s string) string { return s + action.Value }, nil

	case "template":
		// EXAMPLE: "12" with value "Seats left: {value}" -> "Seats left: 12"
		if !strings.Contains(action.Value, "{value}") {
			return nil, fmt.Errorf("template %q has no {value} placeholder", action.Value)
		}
		return func(s string) string { return strings.ReplaceAll(action.Value, "{value}", s) }, nil

	case "trim":
		return strings.TrimSpace, nil

	case "uppercase":
		return strings.ToUpper, nil

	case "lowercase":
		return strings.ToLower, nil

	case "title_case":
		// A Caser keeps state between calls, so each label gets its own.
		return func(s string) string {
			return cases.Title(language.English).String(strings.ToLower(s))
		}, nil

	case "replace":
		// EXAMPLE: "hello-world" with find "-" and value " " -> "hello world"
		if action.Find == "" {
			return nil, fmt.Errorf("replace requires find")
		}
		return func(s string) string { return strings.ReplaceAll(s, action.Find, action.Value) }, nil

	case "regex_replace":
		// EXAMPLE: "ABC-123" with find "[A-Z]+" and value "X" -> "X-123"
		if action.Find == "" {
			return nil, fmt.Errorf("regex_replace requires find")
		}
		re, err := regexp.Compile(action.Find)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		return func(s string) string { return re.ReplaceAllString(s, action.Value) }, nil

	case "substring":
		// VALUE FORMAT: "start,end" (0-indexed runes, end is exclusive)
		// EXAMPLE: "ABCDEFGH" with value "2,5" -> "CDE"
		parts := strings.Split(action.Value, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("substring value must be \"start,end\", got %q", action.Value)
		}
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || start < 0 {
			return nil, fmt.Errorf("invalid substring start %q", parts[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || end < start {
			return nil, fmt.Errorf("invalid substring end %q", parts[1])
		}
		return func(s string) string {
			runes := []rune(s)
			if start >= len(runes) {
				return ""
			}
			return string(runes[start:min(end, len(runes))])
		}, nil

	case "truncate":
		// EXAMPLE: "A very long abstract" with value "6" -> "A very…"
		n, err := positiveInt(action.Value)
		if err != nil {
			return nil, err
		}
		return func(s string) string {
			if utf8.RuneCountInString(s) <= n {
				return s
			}
			return strings.TrimSpace(string([]rune(s)[:n])) + "…"
		}, nil

	// =========================================================================
	// NUMERIC FORMATTING
	// =========================================================================

	case "pad_zeros_to_length":
		// EXAMPLE: "42" with value "5" -> "00042"
		n, err := positiveInt(action.Value)
		if err != nil {
			return nil, err
		}
		return func(s string) string { return PadLeft(s, n, '0') }, nil

	case "format_number":
		// VALUE FORMAT: Number of decimal places.
		// EXAMPLE: "1234.5" with value "2" -> "1234.50"
		places, err := strconv.Atoi(action.Value)
		if err != nil || places < 0 {
			return nil, fmt.Errorf("invalid decimal places %q", action.Value)
		}
		return numeric(func(f float64) string {
			return strconv.FormatFloat(f, 'f', places, 64)
		}), nil

	case "currency":
		// VALUE: The currency symbol. Default "$".
		// EXAMPLE: "1234.5" -> "$1,234.50"
		symbol := action.Value
		if symbol == "" {
			symbol = "$"
		}
		return numeric(func(f float64) string {
			if f < 0 {
				return "-" + symbol + humanize.FormatFloat("#,###.##", -f)
			}
			return symbol + humanize.FormatFloat("#,###.##", f)
		}), nil

	case "comma":
		// EXAMPLE: "1234567" -> "1,234,567"
		return numeric(humanize.Commaf), nil

	case "ordinal":
		// EXAMPLE: "3" -> "3rd"
		return integer(humanize.Ordinal), nil

	case "pluralize":
		// VALUE: The singular noun.
		// EXAMPLE: "3" with value "seat" -> "3 seats"
		if action.Value == "" {
			return nil, fmt.Errorf("pluralize requires a noun")
		}
		return integer(func(n int) string { return english.Plural(n, action.Value, "") }), nil

	// =========================================================================
	// LOOKUP TABLE REPLACEMENTS
	// =========================================================================

	case "lookup":
		// EXAMPLE: "P" with lookup_table {"P": "Paid"} -> "Paid"
		if len(action.LookupTable) == 0 {
			return nil, fmt.Errorf("lookup requires lookup_table")
		}
		return func(s string) string {
			if replacement, exists := action.LookupTable[s]; exists {
				return replacement
			}
			return s
		}, nil

	case "lookup_with_default":
		// The default value is specified in action.Value.
		if len(action.LookupTable) == 0 {
			return nil, fmt.Errorf("lookup_with_default requires lookup_table")
		}
		return func(s string) string {
			if replacement, exists := action.LookupTable[s]; exists {
				return replacement
			}
			return action.Value
		}, nil

	case "if_empty_use_default":
		return func(s string) string {
			if strings.TrimSpace(s) == "" {
				return action.Value
			}
			return s
		}, nil

	// =========================================================================
	// SPECIAL FORMATTING
	// =========================================================================

	case "extract_digits":
		// EXAMPLE: "+1 (555) 010-2000" -> "15550102000"
		return func(s string) string {
			return strings.Join(digitsPattern.FindAllString(s, -1), "")
		}, nil

	case "normalize_whitespace":
		return func(s string) string {
			return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
		}, nil

	default:
		return nil, fmt.Errorf("unknown label action type: %s", action.Type)
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// numeric wraps a float formatter. Non-numeric text passes through unchanged.
func numeric(format func(float64) string) step {
	return func(s string) string {
		f, ok := heading.Float(s)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return s
		}
		return format(f)
	}
}

// integer wraps an int formatter. Fractions are rounded.
func integer(format func(int) string) step {
	return numeric(func(f float64) string {
		return format(int(math.Round(f)))
	})
}

func positiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", value)
	}
	return n, nil
}

// PadLeft pads a string with a character on the left to reach the target
// length in runes.
func PadLeft(s string, length int, padChar rune) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return strings.Repeat(string(padChar), length-n) + s
}
