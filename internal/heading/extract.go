package heading

// NoLimit makes Extract return every prioritized key present in the map.
const NoLimit = -1

// LineExtractor orders and truncates a heading map.
type LineExtractor interface {
	Extract(m *Map, prioritized []string, limit int) []Entry
}

// ExtractorFunc adapts a plain function to the LineExtractor interface.
type ExtractorFunc func(m *Map, prioritized []string, limit int) []Entry

// Extract calls f.
func (f ExtractorFunc) Extract(m *Map, prioritized []string, limit int) []Entry {
	return f(m, prioritized, limit)
}

// Extractor is the standard LineExtractor.
type Extractor struct{}

// Extract calls the package-level Extract.
func (Extractor) Extract(m *Map, prioritized []string, limit int) []Entry {
	return Extract(m, prioritized, limit)
}

// Extract walks prioritized in order and collects the entries present in m,
// stopping once limit entries were collected. A negative limit means
// len(prioritized). Keys of m missing from prioritized are dropped.
func Extract(m *Map, prioritized []string, limit int) []Entry {
	if limit < 0 {
		limit = len(prioritized)
	}

	out := make([]Entry, 0, min(limit, len(prioritized)))
	if limit == 0 {
		return out
	}

	for _, key := range prioritized {
		e, ok := m.Get(key)
		if !ok {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}

	return out
}
