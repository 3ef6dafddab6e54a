// Package crawl harvests records from paginated pages. It coordinates
// fetching, parsing, deduplication and storage.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/fwojciec/zhextract/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for a single harvest.
const (
	expectedRecords   = 10000
	falsePositiveRate = 0.001
)

// Deduper remembers record keys. Seen adds key and reports whether it was
// already present.
type Deduper interface {
	Seen(key string) bool
}

// Harvester fetches the pages of a source, extracts their records and
// stores them as entries.
type Harvester struct {
	Fetcher     zhextract.Fetcher
	Parser      zhextract.PageParser
	Entries     zhextract.EntryWriter
	RateLimiter zhextract.DomainLimiter
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration

	// NewDeduper returns the key filter for one harvest.
	// Defaults to a Bloom filter.
	NewDeduper func() Deduper
}

// Result holds the outcome of a harvest.
type Result struct {
	Pages      int
	Answers    int
	Questions  int
	Extras     int
	Duplicates int
	Failed     int
	Bytes      int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of fetching and parsing one page.
type pageResult struct {
	position int
	url      string
	bytes    int
	page     zhextract.Page
	err      error
}

// PageURLs returns the URLs of the first n pages of a listing. Page 1 is
// the listing URL itself; later pages set the page query parameter.
func PageURLs(listing string, n int) ([]string, error) {
	base, err := url.Parse(listing)
	if err != nil {
		return nil, zhextract.Errorf(zhextract.EINVALID, "invalid source URL: %v", err)
	}
	n = max(n, 1)
	urls := make([]string, 0, n)
	urls = append(urls, listing)
	for i := 2; i <= n; i++ {
		u := *base
		q := u.Query()
		q.Set("page", strconv.Itoa(i))
		u.RawQuery = q.Encode()
		urls = append(urls, u.String())
	}
	return urls, nil
}

// Harvest fetches every page of source concurrently, then stores the
// records page by page in document order. Records whose key was already
// stored during this harvest are skipped; the page-level record is kept
// from the first page that has one.
func (h *Harvester) Harvest(ctx context.Context, source *zhextract.Source, progress ProgressFunc) (*Result, error) {
	variant, err := zhextract.ParsePageVariant(string(source.Variant))
	if err != nil {
		return nil, err
	}
	urls, err := PageURLs(source.URL, source.Pages)
	if err != nil {
		return nil, err
	}

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(urls))
	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- h.processPage(gctx, i, u, variant)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	var res Result
	for r := range resultCh {
		n := int(completed.Add(1))
		results[r.position] = r

		event := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.url}
		if r.err != nil {
			res.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &store{
		h:       h,
		source:  source,
		variant: variant,
		seen:    h.deduper(),
		res:     &res,
	}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		res.Pages++
		res.Bytes += r.bytes
		if err := s.page(ctx, r); err != nil {
			return nil, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &res, nil
}

func (h *Harvester) deduper() Deduper {
	if h.NewDeduper != nil {
		return h.NewDeduper()
	}
	return bloom.NewFilter(expectedRecords, falsePositiveRate)
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// processPage fetches and parses a single page.
func (h *Harvester) processPage(ctx context.Context, position int, pageURL string, variant zhextract.PageVariant) pageResult {
	result := pageResult{position: position, url: pageURL}

	if h.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := h.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logRetry := func(format string, args ...any) {
		h.logger().Warn(fmt.Sprintf(format, args...))
	}
	markup, err := FetchWithRetry(ctx, pageURL, h.Fetcher.Fetch, logRetry, delays)
	if err != nil {
		result.err = err
		return result
	}

	page, err := h.Parser.Parse(markup, variant)
	if err != nil {
		result.err = fmt.Errorf("parse %s: %w", pageURL, err)
		return result
	}

	result.bytes = len(markup)
	result.page = page
	return result
}

// store writes the records of parsed pages in order.
type store struct {
	h        *Harvester
	source   *zhextract.Source
	variant  zhextract.PageVariant
	seen     Deduper
	res      *Result
	position int
	hasExtra bool
}

func (s *store) page(ctx context.Context, r pageResult) error {
	kinds := s.variant.Kinds()

	if extra, ok := r.page.Extra(); ok && !s.hasExtra {
		s.hasExtra = true
		if err := s.save(ctx, r.url, kinds.Extra, extra); err != nil {
			return err
		}
		s.res.Extras++
	}

	for rec := range r.page.Questions() {
		stored, err := s.saveOnce(ctx, r.url, kinds.Question, rec)
		if err != nil {
			return err
		}
		if stored {
			s.res.Questions++
		}
	}

	for rec := range r.page.Answers() {
		stored, err := s.saveOnce(ctx, r.url, kinds.Answer, rec)
		if err != nil {
			return err
		}
		if stored {
			s.res.Answers++
		}
	}
	return nil
}

// saveOnce stores rec unless a record of the same kind and key was stored
// before. Records without a key are always stored.
func (s *store) saveOnce(ctx context.Context, pageURL string, kind zhextract.EntityKind, rec zhextract.Record) (bool, error) {
	if key := zhextract.EntryKey(kind, rec); key != "" {
		if s.seen.Seen(string(kind) + "/" + key) {
			s.res.Duplicates++
			return false, nil
		}
	}
	if err := s.save(ctx, pageURL, kind, rec); err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) save(ctx context.Context, pageURL string, kind zhextract.EntityKind, rec zhextract.Record) error {
	entry := &zhextract.Entry{
		SourceID: s.source.ID,
		PageURL:  pageURL,
		Kind:     kind,
		Fields:   rec,
		Position: s.position,
	}
	s.position++
	if err := s.h.Entries.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("store %s record: %w", kind, err)
	}
	return nil
}
