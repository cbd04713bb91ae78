package cards

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/heading"
)

// Card is a presented record: a title and the lines shown beneath it.
type Card struct {
	ID    string          `json:"id"`
	Kind  string          `json:"kind"`
	Title string          `json:"title"`
	Lines []heading.Entry `json:"lines"`
}

// Presenter turns records into cards. Its strategies are injected, so a
// caller can swap how heading maps are built or lines are picked.
type Presenter struct {
	Builder   heading.MapBuilder
	Extractor heading.LineExtractor
	Logger    *zap.Logger
}

// NewPresenter creates a presenter using the standard builder and extractor.
// convertDate may be nil, in which case date fields are shown as stored.
func NewPresenter(convertDate heading.DateConverter, logger *zap.Logger) *Presenter {
	return &Presenter{
		Builder:   heading.Builder{ConvertDate: convertDate},
		Extractor: heading.Extractor{},
		Logger:    logger,
	}
}

// Present builds the card for one record.
func (p *Presenter) Present(kind Kind, record heading.Record) Card {
	var additional heading.AdditionalMapFunc
	if kind.Additional != nil {
		derive := kind.Additional
		additional = func(ctx heading.AdditionalContext) *heading.Map {
			if ctx.Instance == nil {
				ctx.Instance = kind
			}
			return derive(ctx)
		}
	}

	m := p.Builder.Build(record, kind.Fields, additional)
	lines := p.Extractor.Extract(m, kind.Priority, kind.Limit)

	card := Card{
		ID:    recordID(record),
		Kind:  kind.Name,
		Title: title(kind, record),
		Lines: lines,
	}

	p.logger().Debug("card presented",
		zap.String("kind", kind.Name),
		zap.String("id", card.ID),
		zap.Int("candidates", m.Len()),
		zap.Int("lines", len(lines)))

	return card
}

// PresentAll builds one card per record, in record order.
func (p *Presenter) PresentAll(kind Kind, records []heading.Record) []Card {
	out := make([]Card, 0, len(records))
	for _, record := range records {
		out = append(out, p.Present(kind, record))
	}
	return out
}

func (p *Presenter) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// recordID returns the record's own id, or a fresh UUID.
func recordID(record heading.Record) string {
	if id := strings.TrimSpace(heading.Stringify(record["id"])); id != "" {
		return id
	}
	return uuid.NewString()
}

func title(kind Kind, record heading.Record) string {
	for _, key := range kind.TitleKeys {
		if s := text(record, key); s != "" {
			return s
		}
	}
	return "Untitled " + kind.Name
}
