package format

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/cardview/internal/heading"
)

// EmptyRuleNames lists the accepted values of a field's empty setting.
var EmptyRuleNames = []string{"default", "never", "zero_allowed", "blank", "falsy_string"}

// EmptyRule returns the emptiness predicate for a rule name.
// "" and "default" return nil, which selects heading.IsEmpty.
func EmptyRule(name string) (heading.EmptyFunc, error) {
	switch name {
	case "", "default":
		return nil, nil
	case "never":
		return func(any) bool { return false }, nil
	case "zero_allowed":
		return zeroAllowed, nil
	case "blank":
		return blank, nil
	case "falsy_string":
		return falsyString, nil
	default:
		return nil, fmt.Errorf("unknown empty rule %q (want one of %s)", name, strings.Join(EmptyRuleNames, ", "))
	}
}

// zeroAllowed shows every number, including zero and negatives.
func zeroAllowed(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	if _, ok := heading.Float(value); ok {
		return false
	}
	return heading.IsEmpty(value)
}

func blank(value any) bool {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return heading.IsEmpty(value)
}

func falsyString(value any) bool {
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false", "no", "n/a":
			return true
		}
		return false
	}
	return heading.IsEmpty(value)
}
