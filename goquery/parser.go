package goquery

import (
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

var _ zhextract.PageParser = (*Parser)(nil)

// Layout tells the parser where the repeated items of a page variant live
// and which entities read them.
type Layout struct {
	// AnswerSelector locates answer item nodes.
	AnswerSelector string

	// QuestionSelector locates question item nodes. Empty means the whole
	// document describes a single question.
	QuestionSelector string

	AnswerKind   zhextract.EntityKind
	QuestionKind zhextract.EntityKind

	// ExtraKind is the page-level entity, if any.
	ExtraKind zhextract.EntityKind
}

const (
	defaultAnswerSelector   = ".zm-item-answer"
	defaultQuestionSelector = "div.zm-item"
	topicItemSelector       = "div.content"
)

var layouts = map[zhextract.PageVariant]Layout{
	zhextract.VariantAnswerList: {
		AnswerSelector:   defaultAnswerSelector,
		QuestionSelector: defaultQuestionSelector,
	},
	zhextract.VariantAuthorActivity: {
		AnswerSelector:   defaultAnswerSelector,
		QuestionSelector: defaultQuestionSelector,
	},
	zhextract.VariantTopic: {
		AnswerSelector:   topicItemSelector,
		QuestionSelector: topicItemSelector,
	},
	zhextract.VariantCollection: {
		AnswerSelector:   defaultQuestionSelector,
		QuestionSelector: defaultQuestionSelector,
	},
	zhextract.VariantQuestion: {
		AnswerSelector: defaultAnswerSelector,
	},
}

// LayoutFor returns the layout of a page variant.
func LayoutFor(variant zhextract.PageVariant) (Layout, error) {
	v, err := zhextract.ParsePageVariant(string(variant))
	if err != nil {
		return Layout{}, err
	}
	layout := layouts[v]
	kinds := v.Kinds()
	layout.AnswerKind = kinds.Answer
	layout.QuestionKind = kinds.Question
	layout.ExtraKind = kinds.Extra
	return layout, nil
}

var entities = map[zhextract.EntityKind]*Entity{
	zhextract.KindAuthor:          authorEntity,
	zhextract.KindAnswer:          answerEntity,
	zhextract.KindSimpleAnswer:    simpleAnswerEntity,
	zhextract.KindQuestionSummary: questionSummaryEntity,
	zhextract.KindQuestionDetail:  questionDetailEntity,
	zhextract.KindAuthorProfile:   authorProfileEntity,
	zhextract.KindTopic:           topicEntity,
	zhextract.KindCollection:      collectionEntity,
}

// EntityFor returns the extraction table of an entity kind.
func EntityFor(kind zhextract.EntityKind) (*Entity, error) {
	e, ok := entities[kind]
	if !ok {
		return nil, zhextract.Errorf(zhextract.EINVALID, "unknown entity kind %q", kind)
	}
	return e, nil
}

// Parser extracts records from page markup.
type Parser struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger receiving field diagnostics.
// Diagnostics are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithClock sets the source of the reference time for relative dates.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the document tree for markup and returns its records
// according to the layout of variant.
func (p *Parser) Parse(markup string, variant zhextract.PageVariant) (zhextract.Page, error) {
	layout, err := LayoutFor(variant)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, zhextract.Errorf(zhextract.EINVALID, "failed to parse HTML: %v", err)
	}

	return &Page{
		doc:    doc,
		layout: layout,
		x:      &extractor{now: p.now(), logger: p.logger},
	}, nil
}

// Extract reads a single record of the given kind from markup, treating the
// whole document as the node. The boolean is false when the node is skipped.
func (p *Parser) Extract(markup string, kind zhextract.EntityKind) (zhextract.Record, bool, error) {
	e, err := EntityFor(kind)
	if err != nil {
		return nil, false, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, false, zhextract.Errorf(zhextract.EINVALID, "failed to parse HTML: %v", err)
	}

	x := &extractor{now: p.now(), logger: p.logger}
	rec, ok := x.extract(e, doc.Selection)
	return rec, ok, nil
}

var _ zhextract.Page = (*Page)(nil)

// Page is a parsed page. It owns its document tree and never mutates it.
type Page struct {
	doc    *goquery.Document
	layout Layout
	x      *extractor
}

// Answers yields answer records in document order, skipping deleted or
// locked answers.
func (p *Page) Answers() iter.Seq[zhextract.Record] {
	return p.items(p.layout.AnswerSelector, entities[p.layout.AnswerKind])
}

// Questions yields question records in document order. Pages without a
// question selector yield a single record read from the whole document.
func (p *Page) Questions() iter.Seq[zhextract.Record] {
	e := entities[p.layout.QuestionKind]
	if p.layout.QuestionSelector == "" {
		return func(yield func(zhextract.Record) bool) {
			if rec, ok := p.x.extract(e, p.doc.Selection); ok {
				yield(rec)
			}
		}
	}
	return p.items(p.layout.QuestionSelector, e)
}

// Extra returns the page-level record.
func (p *Page) Extra() (zhextract.Record, bool) {
	if p.layout.ExtraKind == "" {
		return nil, false
	}
	return p.x.extract(entities[p.layout.ExtraKind], p.doc.Selection)
}

func (p *Page) items(selector string, e *Entity) iter.Seq[zhextract.Record] {
	return func(yield func(zhextract.Record) bool) {
		p.doc.Find(selector).EachWithBreak(func(_ int, node *goquery.Selection) bool {
			rec, ok := p.x.extract(e, node)
			if !ok {
				return true
			}
			return yield(rec)
		})
	}
}
