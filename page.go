package zhextract

import (
	"context"
	"iter"
)

// Page holds the records extracted from one page's markup.
// The sequences are lazy and may be iterated any number of times;
// each pass re-derives the records from the same parsed tree.
type Page interface {
	// Answers yields answer records in document order.
	// Deleted or locked answers are skipped.
	Answers() iter.Seq[Record]

	// Questions yields question records in document order.
	Questions() iter.Seq[Record]

	// Extra returns the page-level record (profile, topic, collection).
	// The boolean is false for variants that define none.
	Extra() (Record, bool)
}

// PageParser turns raw page markup into records.
type PageParser interface {
	// Parse builds the document tree for markup using the layout of variant.
	// Missing fragments never cause errors; only unreadable input does.
	Parse(markup string, variant PageVariant) (Page, error)
}

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	// Fetch returns the markup at url decoded as UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as answer content, into Markdown.
	Convert(html string) (string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
