// =============================================================================
// Card View - Card Kinds
// =============================================================================
//
// A Kind describes one type of card: which record attributes become lines,
// in what order they are shown, how many fit, and which lines are derived
// from several attributes at once (the "additional" map).
//
// ARCHITECTURE:
//   - Built-in kinds cover the common cards: event, contact, product,
//     service, travel, todo, note and lead
//   - A card configuration may start from a built-in kind and override its
//     fields, priority and limit, or declare a fully custom kind
//   - Kinds are held by a Catalog, created explicitly and passed to whoever
//     needs it
//
// =============================================================================

package cards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/format"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// Kind describes one type of card.
type Kind struct {
	// Name identifies the kind (e.g. "event").
	Name string

	// TitleKeys are tried in order; the first non-empty value is the title.
	TitleKeys []string

	// Fields are the candidate lines, in declaration order.
	Fields []heading.FieldDescriptor

	// Priority is the display order of line keys.
	Priority []string

	// Limit caps the number of lines. heading.NoLimit shows all.
	Limit int

	// Additional derives extra lines from the whole record. May be nil.
	Additional heading.AdditionalMapFunc
}

// Field returns the descriptor for a key.
func (k Kind) Field(key string) (heading.FieldDescriptor, bool) {
	for _, f := range k.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return heading.FieldDescriptor{}, false
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog holds the known card kinds by name.
type Catalog struct {
	kinds map[string]Kind
}

// NewCatalog creates a catalog holding the given kinds.
func NewCatalog(kinds ...Kind) *Catalog {
	c := &Catalog{kinds: make(map[string]Kind, len(kinds))}
	for _, k := range kinds {
		c.Register(k)
	}
	return c
}

// DefaultCatalog creates a catalog of the built-in kinds.
func DefaultCatalog() *Catalog {
	return NewCatalog(BuiltinKinds()...)
}

// Register adds or replaces a kind.
func (c *Catalog) Register(kind Kind) {
	c.kinds[strings.ToLower(kind.Name)] = kind
}

// Lookup returns the kind with the given name, ignoring case.
func (c *Catalog) Lookup(name string) (Kind, bool) {
	k, ok := c.kinds[strings.ToLower(name)]
	return k, ok
}

// Names returns the kind names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the kind a card configuration describes.
//
// RULES:
//   - The card's kind, when set, must name a catalog kind; its fields,
//     priority, limit and additional lines are the starting point
//   - A configured field replaces a kind field with the same key, other
//     configured fields are appended
//   - A configured priority replaces the kind's; with neither, field order
//     is used
//   - A configured limit replaces the kind's; a negative limit shows all
//   - title_field is tried before the kind's title keys
//
// RETURNS:
//   - The resolved kind.
//   - An error for an unknown kind, or a label or empty rule that does not
//     compile.
func (c *Catalog) Resolve(card *config.CardConfig) (Kind, error) {
	kind := Kind{Limit: heading.NoLimit}
	if card.Kind != "" {
		base, ok := c.Lookup(card.Kind)
		if !ok {
			return Kind{}, fmt.Errorf("unknown card kind %q (known: %s)", card.Kind, strings.Join(c.Names(), ", "))
		}
		kind = base.clone()
	}
	if card.CardName != "" {
		kind.Name = card.CardName
	}

	for _, spec := range card.Fields {
		field, err := compileField(spec)
		if err != nil {
			return Kind{}, fmt.Errorf("field %q: %w", spec.Key, err)
		}
		kind.setField(field)
	}

	if len(card.Priority) > 0 {
		kind.Priority = append([]string(nil), card.Priority...)
	}
	if len(kind.Priority) == 0 {
		for _, f := range kind.Fields {
			kind.Priority = append(kind.Priority, f.Key)
		}
	}

	if card.Limit != nil {
		kind.Limit = *card.Limit
		if kind.Limit < 0 {
			kind.Limit = heading.NoLimit
		}
	}

	if card.TitleField != "" {
		kind.TitleKeys = append([]string{card.TitleField}, kind.TitleKeys...)
	}

	return kind, nil
}

// compileField turns a configured field into a descriptor.
func compileField(spec config.FieldSpec) (heading.FieldDescriptor, error) {
	if strings.TrimSpace(spec.Key) == "" {
		return heading.FieldDescriptor{}, fmt.Errorf("key is required")
	}

	label, err := format.Compile(spec.Label)
	if err != nil {
		return heading.FieldDescriptor{}, err
	}

	empty, err := format.EmptyRule(spec.Empty)
	if err != nil {
		return heading.FieldDescriptor{}, err
	}

	return heading.FieldDescriptor{
		Key:       spec.Key,
		IconClass: spec.Icon,
		IsDate:    spec.IsDate,
		Label:     label,
		Empty:     empty,
	}, nil
}

func (k *Kind) setField(field heading.FieldDescriptor) {
	for i := range k.Fields {
		if k.Fields[i].Key == field.Key {
			k.Fields[i] = field
			return
		}
	}
	k.Fields = append(k.Fields, field)
}

// clone copies the slices of a kind so a resolved card can change them.
func (k Kind) clone() Kind {
	k.TitleKeys = append([]string(nil), k.TitleKeys...)
	k.Fields = append([]heading.FieldDescriptor(nil), k.Fields...)
	k.Priority = append([]string(nil), k.Priority...)
	return k
}
