package cards

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/format"
	"github.com/ginjaninja78/cardview/internal/heading"
)

// BuiltinKinds returns the built-in card kinds.
func BuiltinKinds() []Kind {
	return []Kind{
		eventKind(),
		contactKind(),
		productKind(),
		serviceKind(),
		travelKind(),
		todoKind(),
		noteKind(),
		leadKind(),
	}
}

// label compiles a fixed action chain. Built-in chains are known to compile.
func label(actions ...config.LabelAction) heading.LabelFunc {
	fn, err := format.Compile(actions)
	if err != nil {
		panic(err)
	}
	return fn
}

func prefix(s string) heading.LabelFunc {
	return label(config.LabelAction{Type: "prepend_string", Value: s})
}

var currency = label(config.LabelAction{Type: "currency"})

// text returns the trimmed display text of a record attribute.
func text(record heading.Record, key string) string {
	return strings.TrimSpace(heading.Stringify(record[key]))
}

// joinPresent joins the non-empty attributes of a record.
func joinPresent(record heading.Record, sep string, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if s := text(record, key); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// =============================================================================
// EVENT
// =============================================================================

func eventKind() Kind {
	return Kind{
		Name:      "event",
		TitleKeys: []string{"title", "name"},
		Fields: []heading.FieldDescriptor{
			{Key: "startdate", IsDate: true, IconClass: "fa-calendar", Label: prefix("Starts ")},
			{Key: "enddate", IsDate: true, IconClass: "fa-calendar-check", Label: prefix("Ends ")},
			{Key: "speaker", IconClass: "fa-user"},
			{Key: "capacity", IconClass: "fa-users", Label: label(config.LabelAction{Type: "pluralize", Value: "seat"})},
		},
		Priority:   []string{"startdate", "location", "speaker", "capacity", "enddate"},
		Limit:      3,
		Additional: eventLocation,
	}
}

// eventLocation joins venue and city into a single location line.
func eventLocation(ctx heading.AdditionalContext) *heading.Map {
	location := text(ctx.Record, "location")
	if location == "" {
		location = joinPresent(ctx.Record, ", ", "venue", "city")
	}
	if location == "" {
		return nil
	}
	return heading.MapOf(heading.Pair{
		Key:   "location",
		Entry: heading.Entry{SubHeading: location, IconClass: "fa-map-marker"},
	})
}

// =============================================================================
// CONTACT
// =============================================================================

func contactKind() Kind {
	return Kind{
		Name:      "contact",
		TitleKeys: []string{"name", "fullname", "company"},
		Fields: []heading.FieldDescriptor{
			{Key: "jobtitle", IconClass: "fa-briefcase"},
			{Key: "company", IconClass: "fa-building"},
			{Key: "email", IconClass: "fa-envelope", Label: label(config.LabelAction{Type: "lowercase"})},
			{Key: "phone", IconClass: "fa-phone"},
		},
		Priority:   []string{"fullname", "jobtitle", "company", "email", "phone"},
		Limit:      3,
		Additional: contactFullName,
	}
}

func contactFullName(ctx heading.AdditionalContext) *heading.Map {
	name := joinPresent(ctx.Record, " ", "firstname", "lastname")
	if name == "" {
		return nil
	}
	return heading.MapOf(heading.Pair{
		Key:   "fullname",
		Entry: heading.Entry{SubHeading: name, IconClass: "fa-user"},
	})
}

// =============================================================================
// PRODUCT
// =============================================================================

func productKind() Kind {
	return Kind{
		Name:      "product",
		TitleKeys: []string{"name", "product", "description"},
		Fields: []heading.FieldDescriptor{
			{Key: "description", IconClass: "fa-align-left"},
			{Key: "priceeach", IconClass: "fa-tag", Label: currency},
			{Key: "qtysold", IconClass: "fa-shopping-cart", Label: label(config.LabelAction{Type: "comma"}, config.LabelAction{Type: "append_string", Value: " sold"})},
		},
		Priority:   []string{"description", "priceeach", "qtysold", "total"},
		Limit:      3,
		Additional: productTotal,
	}
}

// productTotal adds the revenue line when both price and quantity are known.
func productTotal(ctx heading.AdditionalContext) *heading.Map {
	price, okPrice := heading.Float(ctx.Record["priceeach"])
	qty, okQty := heading.Float(ctx.Record["qtysold"])
	if !okPrice || !okQty || price <= 0 || qty <= 0 {
		return nil
	}
	return heading.MapOf(heading.Pair{
		Key:   "total",
		Entry: heading.Entry{SubHeading: currency(price*qty) + " total", IconClass: "fa-calculator"},
	})
}

// =============================================================================
// SERVICE
// =============================================================================

func serviceKind() Kind {
	return Kind{
		Name:      "service",
		TitleKeys: []string{"name", "title"},
		Fields: []heading.FieldDescriptor{
			{Key: "category", IconClass: "fa-folder"},
			{Key: "duration", IconClass: "fa-clock", Label: label(config.LabelAction{Type: "append_string", Value: " min"})},
			{Key: "price", IconClass: "fa-tag", Label: currency},
			{Key: "provider", IconClass: "fa-user"},
		},
		Priority:   []string{"category", "duration", "price", "availability", "provider"},
		Limit:      4,
		Additional: serviceAvailability,
	}
}

// serviceAvailability shows booking state when the record carries one.
func serviceAvailability(ctx heading.AdditionalContext) *heading.Map {
	v, ok := ctx.Record["available"]
	if !ok || v == nil {
		return nil
	}
	entry := heading.Entry{SubHeading: "Fully booked", IconClass: "fa-times"}
	if !heading.IsEmpty(v) {
		entry = heading.Entry{SubHeading: "Available", IconClass: "fa-check"}
	}
	return heading.MapOf(heading.Pair{Key: "availability", Entry: entry})
}

// =============================================================================
// TRAVEL
// =============================================================================

func travelKind() Kind {
	return Kind{
		Name:      "travel",
		TitleKeys: []string{"title", "traveler", "reference"},
		Fields: []heading.FieldDescriptor{
			{Key: "departuredate", IsDate: true, IconClass: "fa-plane-departure", Label: prefix("Departs ")},
			{Key: "returndate", IsDate: true, IconClass: "fa-plane-arrival", Label: prefix("Returns ")},
			{Key: "carrier", IconClass: "fa-plane"},
			{Key: "reference", IconClass: "fa-ticket", Label: label(config.LabelAction{Type: "uppercase"})},
		},
		Priority:   []string{"route", "departuredate", "returndate", "carrier", "reference"},
		Limit:      3,
		Additional: travelRoute,
	}
}

func travelRoute(ctx heading.AdditionalContext) *heading.Map {
	origin, destination := text(ctx.Record, "origin"), text(ctx.Record, "destination")
	if origin == "" || destination == "" {
		return nil
	}
	return heading.MapOf(heading.Pair{
		Key:   "route",
		Entry: heading.Entry{SubHeading: origin + " → " + destination, IconClass: "fa-route"},
	})
}

// =============================================================================
// TODO
// =============================================================================

func todoKind() Kind {
	return Kind{
		Name:      "todo",
		TitleKeys: []string{"title", "task"},
		Fields: []heading.FieldDescriptor{
			{Key: "duedate", IsDate: true, IconClass: "fa-calendar", Label: prefix("Due ")},
			{Key: "priority", IconClass: "fa-flag", Label: label(config.LabelAction{Type: "title_case"})},
			{Key: "assignee", IconClass: "fa-user"},
		},
		Priority:   []string{"status", "duedate", "priority", "assignee"},
		Limit:      3,
		Additional: todoStatus,
	}
}

// todoStatus always adds a status line; a missing done flag means open.
func todoStatus(ctx heading.AdditionalContext) *heading.Map {
	entry := heading.Entry{SubHeading: "Open", IconClass: "fa-square"}
	if !heading.IsEmpty(ctx.Record["done"]) {
		entry = heading.Entry{SubHeading: "Done", IconClass: "fa-check-square"}
	}
	return heading.MapOf(heading.Pair{Key: "status", Entry: entry})
}

// =============================================================================
// NOTE
// =============================================================================

func noteKind() Kind {
	return Kind{
		Name:      "note",
		TitleKeys: []string{"title", "subject"},
		Fields: []heading.FieldDescriptor{
			{Key: "body", IconClass: "fa-sticky-note", Label: label(
				config.LabelAction{Type: "normalize_whitespace"},
				config.LabelAction{Type: "truncate", Value: "80"},
			)},
			{Key: "tags", IconClass: "fa-tags"},
			{Key: "author", IconClass: "fa-user"},
			{Key: "updated", IsDate: true, IconClass: "fa-clock", Label: prefix("Updated ")},
		},
		Priority: []string{"body", "tags", "author", "updated"},
		Limit:    2,
	}
}

// =============================================================================
// LEAD
// =============================================================================

func leadKind() Kind {
	return Kind{
		Name:      "lead",
		TitleKeys: []string{"company", "name", "contact"},
		Fields: []heading.FieldDescriptor{
			{Key: "contact", IconClass: "fa-user"},
			{Key: "stage", IconClass: "fa-filter", Label: label(config.LabelAction{Type: "title_case"})},
			{Key: "budget", IconClass: "fa-dollar-sign", Label: currency},
			{Key: "source", IconClass: "fa-bullhorn"},
		},
		Priority:   []string{"contact", "stage", "compensation", "budget", "source"},
		Limit:      3,
		Additional: leadCompensation,
	}
}

// leadCompensation weighs the budget by the win probability (0-100).
func leadCompensation(ctx heading.AdditionalContext) *heading.Map {
	budget, okBudget := heading.Float(ctx.Record["budget"])
	probability, okProb := heading.Float(ctx.Record["probability"])
	if !okBudget || !okProb || budget <= 0 || probability <= 0 {
		return nil
	}
	if probability > 100 {
		probability = 100
	}
	expected := budget * probability / 100
	return heading.MapOf(heading.Pair{
		Key: "compensation",
		Entry: heading.Entry{
			SubHeading: currency(expected) + " expected (" + humanize.Ftoa(probability) + "%)",
			IconClass:  "fa-coins",
		},
	})
}
