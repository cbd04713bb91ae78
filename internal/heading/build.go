package heading

// =============================================================================
// STRATEGIES
// =============================================================================
// Card code receives the builder and extractor as values instead of mixing
// them into a base type. Any function with the right shape can stand in.

// AdditionalContext is handed to an AdditionalMapFunc.
type AdditionalContext struct {
	// Record is the record being rendered.
	Record Record

	// Instance is whatever the caller registered on the Builder
	// (typically the card kind doing the rendering).
	Instance any

	// Map is the map built from the field descriptors so far.
	Map *Map
}

// AdditionalMapFunc returns extra entries that are merged over the built map.
// Returning nil adds nothing.
type AdditionalMapFunc func(ctx AdditionalContext) *Map

// MapBuilder builds a heading map for a record.
type MapBuilder interface {
	Build(record Record, fields []FieldDescriptor, additional AdditionalMapFunc) *Map
}

// BuilderFunc adapts a plain function to the MapBuilder interface.
type BuilderFunc func(record Record, fields []FieldDescriptor, additional AdditionalMapFunc) *Map

// Build calls f.
func (f BuilderFunc) Build(record Record, fields []FieldDescriptor, additional AdditionalMapFunc) *Map {
	return f(record, fields, additional)
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder is the standard MapBuilder.
type Builder struct {
	// ConvertDate reformats values of IsDate fields. Nil leaves them as-is.
	ConvertDate DateConverter

	// Instance is passed through to additional-map callbacks.
	Instance any
}

// Build converts record into a heading map.
//
// PARAMETERS:
//   - record: The record to read. A nil record yields an empty map.
//   - fields: The field descriptors, read in order.
//   - additional: Optional callback whose entries override the built ones.
//
// RETURNS:
//   - A fresh Map owned by the caller.
func (b Builder) Build(record Record, fields []FieldDescriptor, additional AdditionalMapFunc) *Map {
	m := NewMap()

	for _, field := range fields {
		value := record[field.Key]

		empty := field.Empty
		if empty == nil {
			empty = IsEmpty
		}
		if empty(value) {
			continue
		}

		if field.IsDate && b.ConvertDate != nil {
			value = b.ConvertDate(value)
		}

		var sub string
		if field.Label != nil {
			sub = field.Label(value)
		} else {
			sub = Stringify(value)
		}

		m.Set(field.Key, Entry{SubHeading: sub, IconClass: field.IconClass})
	}

	if additional != nil {
		m.Merge(additional(AdditionalContext{Record: record, Instance: b.Instance, Map: m}))
	}

	return m
}

// Build runs the zero Builder: no date conversion, no instance.
func Build(record Record, fields []FieldDescriptor, additional AdditionalMapFunc) *Map {
	return Builder{}.Build(record, fields, additional)
}
