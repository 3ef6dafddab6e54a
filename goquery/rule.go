package goquery

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

// Value reads a raw string from a matched selection.
// The boolean is false when the selection lacks the expected content.
type Value func(sel *goquery.Selection) (string, bool)

// Text reads the trimmed text of the first matched node.
func Text() Value {
	return func(sel *goquery.Selection) (string, bool) {
		return strings.TrimSpace(sel.First().Text()), true
	}
}

// Attr reads an attribute of the first matched node. A missing attribute
// reads as "", matching AttrOf with an empty default.
func Attr(name string) Value {
	return func(sel *goquery.Selection) (string, bool) {
		return AttrOf(sel, name, ""), true
	}
}

// InnerHTML reads the serialized children of the first matched node.
func InnerHTML() Value {
	return func(sel *goquery.Selection) (string, bool) {
		return TextOf(sel), true
	}
}

// Digits captures the first run of digits, "0" if there is none.
func Digits(raw string) any {
	return zhextract.MatchInt(raw)
}

// Map adapts a string function, such as an id extractor, to a Transform.
func Map(fn func(string) string) func(string) any {
	return func(raw string) any {
		return fn(raw)
	}
}

// Rule extracts one field (or, with Apply, a group of derived fields)
// from the first non-empty match among Selectors.
type Rule struct {
	// Field is the record key written by the rule.
	Field string

	// Label is the human readable name used in diagnostics.
	Label string

	// Selectors are tried in order; the first non-empty result wins.
	// No selectors means the rule reads the scope node itself.
	Selectors []string

	// Value reads the raw string. Defaults to Text.
	Value Value

	// Transform converts the raw string into the stored value.
	// Nil stores the raw string.
	Transform func(raw string) any

	// Apply replaces Value and Transform for rules that set several
	// fields from one fragment.
	Apply func(sel *goquery.Selection, b *Builder)

	// Fragment evaluates the rule against the entity's re-parsed payload
	// instead of the node.
	Fragment bool
}

func (r Rule) apply(root *goquery.Selection, b *Builder) {
	sel := root
	if len(r.Selectors) > 0 {
		sel = FirstMatch(root, r.Selectors...)
	}
	if sel.Length() == 0 {
		b.Missing(r.Field, r.Label)
		return
	}

	if r.Apply != nil {
		r.Apply(sel, b)
		return
	}

	value := r.Value
	if value == nil {
		value = Text()
	}
	raw, ok := value(sel)
	if !ok {
		b.Missing(r.Field, r.Label)
		return
	}
	if r.Transform != nil {
		b.Set(r.Field, r.Transform(raw))
		return
	}
	b.Set(r.Field, raw)
}

// Builder accumulates the fields of one node. A new Builder is used for
// every node so no field outlives the node it came from.
type Builder struct {
	kind   zhextract.EntityKind
	fields zhextract.Record
	now    time.Time
	logger *slog.Logger
}

func newBuilder(kind zhextract.EntityKind, now time.Time, logger *slog.Logger) *Builder {
	return &Builder{
		kind:   kind,
		fields: make(zhextract.Record),
		now:    now,
		logger: logger,
	}
}

// Set stores a field value.
func (b *Builder) Set(field string, value any) {
	b.fields[field] = value
}

// Lookup returns a field set by an earlier rule.
func (b *Builder) Lookup(field string) (any, bool) {
	v, ok := b.fields[field]
	return v, ok
}

// Now returns the reference time for relative dates.
func (b *Builder) Now() time.Time {
	return b.now
}

// Missing records that a field's fragment was not found.
func (b *Builder) Missing(field, label string) {
	b.logger.Debug("field not found",
		"kind", string(b.kind),
		"field", field,
		"label", label,
	)
}

// Record returns a copy of the accumulated fields.
func (b *Builder) Record() zhextract.Record {
	return b.fields.Clone()
}
