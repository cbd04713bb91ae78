package cards

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/format"
	"github.com/ginjaninja78/cardview/internal/heading"
)

func presenter() *Presenter {
	conv := format.NewDateConverter(config.DefaultDateInputLayouts(), "")
	return NewPresenter(conv.Func(), zap.NewNop())
}

func kind(t *testing.T, name string) Kind {
	t.Helper()
	k, ok := DefaultCatalog().Lookup(name)
	require.True(t, ok, name)
	return k
}

func TestCatalog_Names(t *testing.T) {
	assert.Equal(t,
		[]string{"contact", "event", "lead", "note", "product", "service", "todo", "travel"},
		DefaultCatalog().Names())

	_, ok := DefaultCatalog().Lookup("EVENT")
	assert.True(t, ok)
	_, ok = DefaultCatalog().Lookup("meeting")
	assert.False(t, ok)
}

func TestPresent_Product(t *testing.T) {
	record := heading.Record{"id": 7, "description": "Conference talk", "qtysold": 0, "priceeach": 25}

	card := presenter().Present(kind(t, "product"), record)

	assert.Equal(t, "7", card.ID)
	assert.Equal(t, "product", card.Kind)
	assert.Equal(t, "Conference talk", card.Title)
	assert.Equal(t, []heading.Entry{
		{SubHeading: "Conference talk", IconClass: "fa-align-left"},
		{SubHeading: "$25.00", IconClass: "fa-tag"},
	}, card.Lines)
}

func TestPresent_ProductTotal(t *testing.T) {
	record := heading.Record{"name": "Ticket", "qtysold": 1200.0, "priceeach": 25}

	card := presenter().Present(kind(t, "product"), record)

	assert.Equal(t, []heading.Entry{
		{SubHeading: "$25.00", IconClass: "fa-tag"},
		{SubHeading: "1,200 sold", IconClass: "fa-shopping-cart"},
		{SubHeading: "$30,000.00 total", IconClass: "fa-calculator"},
	}, card.Lines)
}

func TestPresent_Event(t *testing.T) {
	record := heading.Record{
		"title":     "GopherCon",
		"startdate": "2024-03-01",
		"venue":     "Hall A",
		"city":      "Berlin",
		"speaker":   "Ada",
		"capacity":  120,
	}

	card := presenter().Present(kind(t, "event"), record)

	assert.Equal(t, "GopherCon", card.Title)
	assert.Equal(t, []heading.Entry{
		{SubHeading: "Starts Mar 1, 2024", IconClass: "fa-calendar"},
		{SubHeading: "Hall A, Berlin", IconClass: "fa-map-marker"},
		{SubHeading: "Ada", IconClass: "fa-user"},
	}, card.Lines)
}

func TestPresent_ContactFullName(t *testing.T) {
	record := heading.Record{"firstname": "Ada", "lastname": "Lovelace", "email": "ADA@Example.org", "company": ""}

	card := presenter().Present(kind(t, "contact"), record)

	assert.Equal(t, "Untitled contact", card.Title)
	assert.Equal(t, []heading.Entry{
		{SubHeading: "Ada Lovelace", IconClass: "fa-user"},
		{SubHeading: "ada@example.org", IconClass: "fa-envelope"},
	}, card.Lines)
}

func TestPresent_TodoStatus(t *testing.T) {
	open := presenter().Present(kind(t, "todo"), heading.Record{"title": "Book venue", "priority": "HIGH"})
	assert.Equal(t, []heading.Entry{
		{SubHeading: "Open", IconClass: "fa-square"},
		{SubHeading: "High", IconClass: "fa-flag"},
	}, open.Lines)

	done := presenter().Present(kind(t, "todo"), heading.Record{"title": "Send invites", "done": true})
	assert.Equal(t, "Done", done.Lines[0].SubHeading)
}

func TestPresent_TravelAndLead(t *testing.T) {
	trip := presenter().Present(kind(t, "travel"), heading.Record{"origin": "BER", "destination": "SFO", "reference": "ab12"})
	assert.Equal(t, []heading.Entry{
		{SubHeading: "BER → SFO", IconClass: "fa-route"},
		{SubHeading: "AB12", IconClass: "fa-ticket"},
	}, trip.Lines)

	lead := presenter().Present(kind(t, "lead"), heading.Record{"company": "Acme", "budget": 10000, "probability": 40})
	assert.Equal(t, "Acme", lead.Title)
	assert.Equal(t, []heading.Entry{
		{SubHeading: "$4,000.00 expected (40%)", IconClass: "fa-coins"},
		{SubHeading: "$10,000.00", IconClass: "fa-dollar-sign"},
	}, lead.Lines)
}

func TestPresent_ServiceAndNote(t *testing.T) {
	svc := presenter().Present(kind(t, "service"), heading.Record{"name": "Coaching", "duration": 45, "available": false})
	assert.Equal(t, []heading.Entry{
		{SubHeading: "45 min", IconClass: "fa-clock"},
		{SubHeading: "Fully booked", IconClass: "fa-times"},
	}, svc.Lines)

	note := presenter().Present(kind(t, "note"), heading.Record{"title": "Ideas", "body": "  line one\n\nline two ", "author": "Grace"})
	assert.Equal(t, []heading.Entry{
		{SubHeading: "line one line two", IconClass: "fa-sticky-note"},
		{SubHeading: "Grace", IconClass: "fa-user"},
	}, note.Lines)
}

func TestPresent_GeneratesIDAndPassesKind(t *testing.T) {
	var seen any
	k := Kind{
		Name:     "custom",
		Fields:   []heading.FieldDescriptor{{Key: "a"}},
		Priority: []string{"a"},
		Limit:    heading.NoLimit,
		Additional: func(ctx heading.AdditionalContext) *heading.Map {
			seen = ctx.Instance
			return nil
		},
	}

	card := presenter().Present(k, heading.Record{"a": "x"})

	_, err := uuid.Parse(card.ID)
	require.NoError(t, err)
	require.IsType(t, Kind{}, seen)
	assert.Equal(t, "custom", seen.(Kind).Name)
}

func TestPresent_InjectedStrategies(t *testing.T) {
	var builtWith []heading.FieldDescriptor
	var limitSeen int
	p := &Presenter{
		Builder: heading.BuilderFunc(func(r heading.Record, f []heading.FieldDescriptor, a heading.AdditionalMapFunc) *heading.Map {
			builtWith = f
			return heading.MapOf(heading.Pair{Key: "fixed", Entry: heading.Entry{SubHeading: "stub"}})
		}),
		Extractor: heading.ExtractorFunc(func(m *heading.Map, keys []string, limit int) []heading.Entry {
			limitSeen = limit
			return heading.Extract(m, []string{"fixed"}, limit)
		}),
	}

	k := kind(t, "note")
	card := p.Present(k, heading.Record{})

	require.Len(t, builtWith, len(k.Fields))
	assert.Equal(t, "body", builtWith[0].Key)
	assert.Equal(t, 2, limitSeen)
	assert.Equal(t, []heading.Entry{{SubHeading: "stub"}}, card.Lines)
}

func TestPresentAll(t *testing.T) {
	cards := presenter().PresentAll(kind(t, "note"), []heading.Record{{"title": "A"}, {"title": "B"}})
	require.Len(t, cards, 2)
	assert.Equal(t, "A", cards[0].Title)
	assert.Equal(t, "B", cards[1].Title)
}

func intPtr(n int) *int { return &n }

func TestResolve_OverridesBuiltin(t *testing.T) {
	card := &config.CardConfig{
		CardName:   "sessions",
		Kind:       "event",
		TitleField: "session",
		Fields: []config.FieldSpec{
			{Key: "speaker", Icon: "fa-microphone", Label: []config.LabelAction{{Type: "prepend_string", Value: "By "}}},
			{Key: "room", Icon: "fa-door-open"},
		},
		Priority: []string{"speaker", "room", "startdate"},
		Limit:    intPtr(-1),
	}

	k, err := DefaultCatalog().Resolve(card)
	require.NoError(t, err)

	assert.Equal(t, "sessions", k.Name)
	assert.Equal(t, heading.NoLimit, k.Limit)
	assert.Equal(t, []string{"session", "title", "name"}, k.TitleKeys)
	require.NotNil(t, k.Additional)

	speaker, ok := k.Field("speaker")
	require.True(t, ok)
	assert.Equal(t, "fa-microphone", speaker.IconClass)

	c := presenter().Present(k, heading.Record{"session": "Go at scale", "speaker": "Ada", "room": "B2", "startdate": "2024-03-01"})
	assert.Equal(t, "Go at scale", c.Title)
	assert.Equal(t, []heading.Entry{
		{SubHeading: "By Ada", IconClass: "fa-microphone"},
		{SubHeading: "B2", IconClass: "fa-door-open"},
		{SubHeading: "Starts Mar 1, 2024", IconClass: "fa-calendar"},
	}, c.Lines)

	// The catalog's own kind is untouched.
	original := kind(t, "event")
	sp, _ := original.Field("speaker")
	assert.Equal(t, "fa-user", sp.IconClass)
}

func TestResolve_CustomKind(t *testing.T) {
	card := &config.CardConfig{
		CardName: "badges",
		Fields: []config.FieldSpec{
			{Key: "holder"},
			{Key: "level", Empty: "zero_allowed"},
		},
	}

	k, err := DefaultCatalog().Resolve(card)
	require.NoError(t, err)
	assert.Equal(t, []string{"holder", "level"}, k.Priority)
	assert.Equal(t, heading.NoLimit, k.Limit)
	assert.Nil(t, k.Additional)

	c := presenter().Present(k, heading.Record{"holder": "Ada", "level": 0})
	assert.Equal(t, []heading.Entry{{SubHeading: "Ada"}, {SubHeading: "0"}}, c.Lines)
}

func TestResolve_LimitZeroShowsNothing(t *testing.T) {
	k, err := DefaultCatalog().Resolve(&config.CardConfig{Kind: "note", Limit: intPtr(0)})
	require.NoError(t, err)

	c := presenter().Present(k, heading.Record{"body": "text"})
	assert.Empty(t, c.Lines)
}

func TestResolve_Errors(t *testing.T) {
	cases := []*config.CardConfig{
		{Kind: "meeting"},
		{Fields: []config.FieldSpec{{Key: ""}}},
		{Fields: []config.FieldSpec{{Key: "a", Label: []config.LabelAction{{Type: "sparkle"}}}}},
		{Fields: []config.FieldSpec{{Key: "a", Empty: "sometimes"}}},
	}
	for _, card := range cases {
		_, err := DefaultCatalog().Resolve(card)
		assert.Error(t, err)
	}
}
