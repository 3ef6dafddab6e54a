package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/zhextract"
)

// Ensure LoggingPageParser implements zhextract.PageParser.
var _ zhextract.PageParser = (*LoggingPageParser)(nil)

// LoggingPageParser wraps a PageParser and logs a summary of each parsed
// page. Counting walks the sequences once, so every page is extracted
// twice when logging is enabled.
type LoggingPageParser struct {
	next   zhextract.PageParser
	logger *slog.Logger
}

// NewLoggingPageParser creates a new LoggingPageParser.
func NewLoggingPageParser(next zhextract.PageParser, logger *slog.Logger) *LoggingPageParser {
	return &LoggingPageParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the record counts.
func (p *LoggingPageParser) Parse(markup string, variant zhextract.PageVariant) (page zhextract.Page, err error) {
	begin := time.Now()
	page, err = p.next.Parse(markup, variant)
	if err != nil {
		p.logger.Info("parse",
			"variant", string(variant),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	var answers, questions int
	for range page.Answers() {
		answers++
	}
	for range page.Questions() {
		questions++
	}
	_, extra := page.Extra()

	p.logger.Info("parse",
		"variant", string(variant),
		"answers", answers,
		"questions", questions,
		"extra", extra,
		"duration", time.Since(begin),
	)
	return page, nil
}
