package goquery

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Entity is the ordered extraction table for one entity kind.
type Entity struct {
	Kind zhextract.EntityKind

	// Scope narrows the node before any rule runs. Empty means the node itself.
	Scope string

	// Skip excludes nodes that contain a match entirely.
	Skip string

	// Fragment selects an element whose text is a raw HTML payload.
	// The payload is parsed as its own tree for rules marked Fragment.
	Fragment string

	// Fallback short-circuits extraction with a fixed record when it
	// returns true.
	Fallback func(scope *goquery.Selection) (zhextract.Record, bool)

	// Rules run in order; later rules may read fields set by earlier ones.
	Rules []Rule

	// Embed lists sub-entities read from the same node and composed into
	// the record. Fields of this entity win on collision.
	Embed []*Entity
}

// extractor evaluates entities against nodes.
type extractor struct {
	now    time.Time
	logger *slog.Logger
}

// extract produces the record for node. The boolean is false when the node
// is skipped.
func (x *extractor) extract(e *Entity, node *goquery.Selection) (zhextract.Record, bool) {
	if e.Skip != "" && node.Find(e.Skip).Length() > 0 {
		x.logger.Debug("node skipped", "kind", string(e.Kind), "marker", e.Skip)
		return nil, false
	}

	scope := node
	if e.Scope != "" {
		scope = node.Find(e.Scope).First()
	}

	if e.Fallback != nil {
		if rec, ok := e.Fallback(scope); ok {
			return rec, true
		}
	}

	var fragment *goquery.Selection
	if e.Fragment != "" {
		fragment = x.parseFragment(scope.Find(e.Fragment).First())
	}

	b := newBuilder(e.Kind, x.now, x.logger)
	for _, r := range e.Rules {
		root := scope
		if r.Fragment {
			if fragment == nil {
				b.Missing(r.Field, r.Label)
				continue
			}
			root = fragment
		}
		r.apply(root, b)
	}

	rec := b.Record()
	for _, sub := range e.Embed {
		if subRec, ok := x.extract(sub, node); ok {
			rec = zhextract.Compose(rec, subRec)
		}
	}
	return rec, true
}

// parseFragment parses the text of sel as the content of a body element,
// so leading style, link or meta elements stay in the content instead of
// moving to a head. Returns nil when sel is empty.
func (x *extractor) parseFragment(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() == 0 {
		return nil
	}
	bodyContext := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(sel.Text()), bodyContext)
	if err != nil {
		x.logger.Debug("fragment parse failed", "err", err)
		return nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(body)
	return goquery.NewDocumentFromNode(doc).Selection
}
