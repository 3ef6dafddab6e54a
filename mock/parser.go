package mock

import (
	"iter"
	"slices"

	"github.com/fwojciec/zhextract"
)

var _ zhextract.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of zhextract.PageParser.
type PageParser struct {
	ParseFn func(markup string, variant zhextract.PageVariant) (zhextract.Page, error)
}

func (p *PageParser) Parse(markup string, variant zhextract.PageVariant) (zhextract.Page, error) {
	return p.ParseFn(markup, variant)
}

var _ zhextract.Page = (*Page)(nil)

// Page is a fixed zhextract.Page backed by slices.
type Page struct {
	AnswerRecords   []zhextract.Record
	QuestionRecords []zhextract.Record
	ExtraRecord     zhextract.Record
}

func (p *Page) Answers() iter.Seq[zhextract.Record] {
	return slices.Values(p.AnswerRecords)
}

func (p *Page) Questions() iter.Seq[zhextract.Record] {
	return slices.Values(p.QuestionRecords)
}

func (p *Page) Extra() (zhextract.Record, bool) {
	return p.ExtraRecord, p.ExtraRecord != nil
}
