// Package goquery implements record extraction from Zhihu markup using
// CSS selectors evaluated by github.com/PuerkitoBio/goquery.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
)

// TextOf returns the serialized markup of all children of the first node
// in sel, preserving nested tags. Returns "" for an empty selection.
func TextOf(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	html, err := sel.First().Html()
	if err != nil {
		return ""
	}
	return html
}

// AttrOf returns the named attribute of the first node in sel, or def when
// the selection is empty or the attribute is missing.
func AttrOf(sel *goquery.Selection, name, def string) string {
	if sel == nil || sel.Length() == 0 {
		return def
	}
	if v, ok := sel.Attr(name); ok {
		return v
	}
	return def
}

// FirstMatch evaluates selectors against sel in order and returns the first
// non-empty result set. The result is empty when no selector matches.
func FirstMatch(sel *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, s := range selectors {
		if found := sel.Find(s); found.Length() > 0 {
			return found
		}
	}
	return sel.Slice(0, 0)
}
