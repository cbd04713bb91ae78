package heading

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Key: "description"},
		{Key: "qtysold"},
		{Key: "priceeach", Label: func(v any) string { return fmt.Sprintf("$%v", v) }},
	}
}

func TestBuild_ProductExample(t *testing.T) {
	record := Record{"description": "Conference talk", "qtysold": 0, "priceeach": 25}

	m := Build(record, productFields(), nil)

	require.Equal(t, 2, m.Len())
	assert.False(t, m.Has("qtysold"))

	desc, ok := m.Get("description")
	require.True(t, ok)
	assert.Equal(t, Entry{SubHeading: "Conference talk"}, desc)

	price, ok := m.Get("priceeach")
	require.True(t, ok)
	assert.Equal(t, Entry{SubHeading: "$25"}, price)

	lines := Extract(m, []string{"description", "qtysold", "priceeach"}, 1)
	assert.Equal(t, []Entry{{SubHeading: "Conference talk"}}, lines)
}

func TestBuild_OmitsEmptyAndMissingFields(t *testing.T) {
	record := Record{
		"name":    "",
		"count":   0,
		"balance": -12.5,
		"when":    time.Time{},
		"tags":    []any{},
		"done":    false,
		"kept":    "yes",
	}
	fields := []FieldDescriptor{
		{Key: "name"}, {Key: "count"}, {Key: "balance"}, {Key: "when"},
		{Key: "tags"}, {Key: "done"}, {Key: "absent"}, {Key: "kept"},
	}

	m := Build(record, fields, nil)

	assert.Equal(t, []string{"kept"}, m.Keys())
}

func TestBuild_CustomEmptyOverridesDefault(t *testing.T) {
	never := func(any) bool { return false }
	always := func(any) bool { return true }
	record := Record{"qty": 0, "title": "Keynote"}

	m := Build(record, []FieldDescriptor{
		{Key: "qty", Empty: never},
		{Key: "title", Empty: always},
		{Key: "missing", Empty: never},
	}, nil)

	qty, ok := m.Get("qty")
	require.True(t, ok)
	assert.Equal(t, "0", qty.SubHeading)
	assert.False(t, m.Has("title"))

	missing, ok := m.Get("missing")
	require.True(t, ok)
	assert.Equal(t, "", missing.SubHeading)
}

func TestBuild_DateConversionAndIcon(t *testing.T) {
	var seen any
	b := Builder{ConvertDate: func(v any) any { return "converted:" + Stringify(v) }}
	record := Record{"startdate": "2024-03-01"}

	m := b.Build(record, []FieldDescriptor{{
		Key:       "startdate",
		IsDate:    true,
		IconClass: "fa-calendar",
		Label: func(v any) string {
			seen = v
			return "Starts " + Stringify(v)
		},
	}}, nil)

	e, ok := m.Get("startdate")
	require.True(t, ok)
	assert.Equal(t, "converted:2024-03-01", seen)
	assert.Equal(t, Entry{SubHeading: "Starts converted:2024-03-01", IconClass: "fa-calendar"}, e)
}

func TestBuild_DateFieldWithoutConverterKeepsValue(t *testing.T) {
	m := Build(Record{"due": "tomorrow"}, []FieldDescriptor{{Key: "due", IsDate: true}}, nil)

	e, _ := m.Get("due")
	assert.Equal(t, "tomorrow", e.SubHeading)
}

func TestBuild_AdditionalMapOverrides(t *testing.T) {
	record := Record{"foo": "from field", "bar": "kept"}
	var got AdditionalContext

	b := Builder{Instance: "card-kind"}
	m := b.Build(record, []FieldDescriptor{{Key: "foo"}, {Key: "bar"}}, func(ctx AdditionalContext) *Map {
		got = ctx
		return MapOf(
			Pair{Key: "foo", Entry: Entry{SubHeading: "X"}},
			Pair{Key: "extra", Entry: Entry{SubHeading: "added", IconClass: "fa-plus"}},
		)
	})

	foo, _ := m.Get("foo")
	assert.Equal(t, "X", foo.SubHeading)
	bar, _ := m.Get("bar")
	assert.Equal(t, "kept", bar.SubHeading)
	assert.True(t, m.Has("extra"))

	assert.Equal(t, "card-kind", got.Instance)
	assert.Equal(t, record, got.Record)
	assert.Same(t, m, got.Map)
}

func TestBuild_AdditionalMayReturnNil(t *testing.T) {
	m := Build(Record{"a": "b"}, []FieldDescriptor{{Key: "a"}}, func(AdditionalContext) *Map { return nil })
	assert.Equal(t, 1, m.Len())
}

func TestBuild_NilRecord(t *testing.T) {
	m := Build(nil, productFields(), nil)
	assert.Equal(t, 0, m.Len())
}

func TestExtract_PriorityOrderNotInsertionOrder(t *testing.T) {
	m := MapOf(
		Pair{Key: "a", Entry: Entry{SubHeading: "A"}},
		Pair{Key: "b", Entry: Entry{SubHeading: "B"}},
		Pair{Key: "c", Entry: Entry{SubHeading: "C"}},
		Pair{Key: "unlisted", Entry: Entry{SubHeading: "U"}},
	)

	lines := Extract(m, []string{"c", "missing", "a", "b"}, NoLimit)

	assert.Equal(t, []Entry{{SubHeading: "C"}, {SubHeading: "A"}, {SubHeading: "B"}}, lines)
}

func TestExtract_Limit(t *testing.T) {
	m := MapOf(
		Pair{Key: "a", Entry: Entry{SubHeading: "A"}},
		Pair{Key: "b", Entry: Entry{SubHeading: "B"}},
		Pair{Key: "c", Entry: Entry{SubHeading: "C"}},
	)
	keys := []string{"a", "b", "c"}

	cases := []struct {
		limit int
		want  int
	}{
		{NoLimit, 3},
		{0, 0},
		{1, 1},
		{2, 2},
		{10, 3},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("limit=%d", c.limit), func(t *testing.T) {
			all := []Entry{{SubHeading: "A"}, {SubHeading: "B"}, {SubHeading: "C"}}
			assert.Equal(t, all[:c.want], Extract(m, keys, c.limit))
		})
	}
}

func TestExtract_NilMapAndEmptyKeys(t *testing.T) {
	assert.Empty(t, Extract(nil, []string{"a"}, NoLimit))
	assert.Empty(t, Extract(NewMap(), nil, NoLimit))
}

func TestMap_ZeroValueUsable(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Empty(t, Extract(&Map{}, []string{"a"}, NoLimit))
	})

	var zero Map
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Keys())
	zero.Delete("a")
	data, err := zero.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var m Map
	m.Set("a", Entry{SubHeading: "first"})
	var merged Map
	merged.Merge(&m)
	merged.Merge(&Map{})

	e, ok := merged.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", e.SubHeading)
	assert.Equal(t, []Entry{{SubHeading: "first"}}, Extract(&merged, []string{"a"}, NoLimit))
}

func TestStrategyAdapters(t *testing.T) {
	var builder MapBuilder = BuilderFunc(Build)
	var extractor LineExtractor = ExtractorFunc(Extract)

	m := builder.Build(Record{"x": "y"}, []FieldDescriptor{{Key: "x"}}, nil)
	assert.Equal(t, []Entry{{SubHeading: "y"}}, extractor.Extract(m, []string{"x"}, NoLimit))
	assert.Equal(t, []Entry{{SubHeading: "y"}}, Extractor{}.Extract(m, []string{"x"}, NoLimit))
}

func TestMap_MarshalJSON(t *testing.T) {
	m := MapOf(
		Pair{Key: "z", Entry: Entry{SubHeading: "last"}},
		Pair{Key: "a", Entry: Entry{SubHeading: "first", IconClass: "fa-a"}},
	)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":{"subHeading":"last"},"a":{"subHeading":"first","iconClass":"fa-a"}}`, string(data))
}
