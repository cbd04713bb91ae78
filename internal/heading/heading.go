// =============================================================================
// Card View - Heading Map
// =============================================================================
//
// This package turns a record plus a list of field descriptors into the
// display lines shown on a card. It is used by every card kind in the
// catalog (events, contacts, products, services, travel, todos, notes, leads).
//
// PIPELINE:
//   record -> Build -> Map -> Extract -> []Entry -> renderer
//
//   1. Build reads each declared field from the record, drops empty values,
//      formats the rest and stores one Entry per field key.
//   2. An optional additional-map callback may add or override entries.
//   3. Extract walks a priority list of keys, keeps the entries present in
//      the map and stops at the limit.
//
// Nothing in this package returns an error. A missing field, an empty value
// or an absent callback simply leaves the key out of the output.
//
// =============================================================================

package heading

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Record is one domain entity as loaded from a source file or database.
type Record map[string]any

// LabelFunc turns a field value into the text of a display line.
type LabelFunc func(value any) string

// EmptyFunc reports whether a field value should be left off the card.
type EmptyFunc func(value any) bool

// DateConverter reformats a date value before it is labelled.
type DateConverter func(value any) any

// FieldDescriptor declares how one attribute of a record becomes a line.
type FieldDescriptor struct {
	// Key is the record attribute to read.
	Key string

	// IconClass is copied onto the produced entry.
	IconClass string

	// IsDate routes the value through the date converter first.
	IsDate bool

	// Label computes the sub-heading. The stringified value is used when nil.
	Label LabelFunc

	// Empty replaces the default emptiness rule when set.
	Empty EmptyFunc
}

// Entry is a single display line.
type Entry struct {
	SubHeading string `json:"subHeading" yaml:"subHeading"`
	IconClass  string `json:"iconClass,omitempty" yaml:"iconClass,omitempty"`
}

// =============================================================================
// HEADING MAP
// =============================================================================

// Map holds the entries produced for one record, keyed by field key.
// Keys are unique. Iteration follows insertion order so output is stable,
// but callers must not attach meaning to that order; Extract decides it.
type Map struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: orderedmap.New[string, Entry]()}
}

// MapOf builds a Map from key/entry pairs given in order.
func MapOf(pairs ...Pair) *Map {
	m := NewMap()
	for _, p := range pairs {
		m.Set(p.Key, p.Entry)
	}
	return m
}

// Pair is a key with its entry.
type Pair struct {
	Key   string
	Entry Entry
}

// Set stores an entry, replacing any previous entry for the key.
func (m *Map) Set(key string, e Entry) {
	m.init()
	m.entries.Set(key, e)
}

// init allocates the backing map, so a zero Map is usable.
func (m *Map) init() {
	if m.entries == nil {
		m.entries = orderedmap.New[string, Entry]()
	}
}

func (m *Map) empty() bool {
	return m == nil || m.entries == nil
}

// Get returns the entry stored for key.
func (m *Map) Get(key string) (Entry, bool) {
	if m.empty() {
		return Entry{}, false
	}
	return m.entries.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	if m.empty() {
		return
	}
	m.entries.Delete(key)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m.empty() {
		return 0
	}
	return m.entries.Len()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m.empty() {
		return nil
	}
	keys := make([]string, 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Pairs returns a copy of the content in insertion order.
func (m *Map) Pairs() []Pair {
	if m.empty() {
		return nil
	}
	pairs := make([]Pair, 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, Pair{Key: p.Key, Entry: p.Value})
	}
	return pairs
}

// Merge copies every entry of other into m. Entries of other win.
func (m *Map) Merge(other *Map) {
	if other.empty() {
		return
	}
	m.init()
	for p := other.entries.Oldest(); p != nil; p = p.Next() {
		m.entries.Set(p.Key, p.Value)
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m.empty() {
		return []byte("{}"), nil
	}
	return m.entries.MarshalJSON()
}
