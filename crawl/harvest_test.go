package crawl_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/fwojciec/zhextract/crawl"
	"github.com/fwojciec/zhextract/goquery"
	"github.com/fwojciec/zhextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns listing URL for a single page", func(t *testing.T) {
		t.Parallel()

		urls, err := crawl.PageURLs("https://www.zhihu.com/collection/42", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://www.zhihu.com/collection/42"}, urls)
	})

	t.Run("adds page parameter from page two", func(t *testing.T) {
		t.Parallel()

		urls, err := crawl.PageURLs("https://www.zhihu.com/topic/1/top-answers?sort=votes", 3)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.zhihu.com/topic/1/top-answers?sort=votes",
			"https://www.zhihu.com/topic/1/top-answers?page=2&sort=votes",
			"https://www.zhihu.com/topic/1/top-answers?page=3&sort=votes",
		}, urls)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.PageURLs("http://[::1", 2)

		assert.Equal(t, zhextract.EINVALID, zhextract.ErrorCode(err))
	})
}

// entrySink collects created entries.
type entrySink struct {
	mu      sync.Mutex
	entries []*zhextract.Entry
}

func (s *entrySink) writer() *mock.EntryWriter {
	return &mock.EntryWriter{
		CreateEntryFn: func(_ context.Context, entry *zhextract.Entry) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.entries = append(s.entries, entry)
			return nil
		},
	}
}

func (s *entrySink) keys(kind zhextract.EntityKind) []string {
	var keys []string
	for _, e := range s.entries {
		if e.Kind == kind {
			keys = append(keys, zhextract.EntryKey(e.Kind, e.Fields))
		}
	}
	return keys
}

// pageParser serves a fixed page per markup string.
func pageParser(pages map[string]*mock.Page) *mock.PageParser {
	return &mock.PageParser{
		ParseFn: func(markup string, _ zhextract.PageVariant) (zhextract.Page, error) {
			p, ok := pages[markup]
			if !ok {
				return nil, errors.New("unexpected markup")
			}
			return p, nil
		},
	}
}

// echoFetcher returns the URL as the page markup.
func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return url, nil
		},
	}
}

func answer(id string) zhextract.Record {
	return zhextract.Record{zhextract.FieldAnswerID: id}
}

func question(id string) zhextract.Record {
	return zhextract.Record{zhextract.FieldQuestionID: id}
}

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	t.Run("stores records of every page in order", func(t *testing.T) {
		t.Parallel()

		src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/topic/1", Variant: zhextract.VariantTopic, Pages: 2}
		sink := &entrySink{}
		h := &crawl.Harvester{
			Fetcher: echoFetcher(),
			Parser: pageParser(map[string]*mock.Page{
				"https://www.zhihu.com/topic/1": {
					AnswerRecords:   []zhextract.Record{answer("00000001"), answer("00000002")},
					QuestionRecords: []zhextract.Record{question("10000001")},
					ExtraRecord:     zhextract.Record{zhextract.FieldTopicID: "1"},
				},
				"https://www.zhihu.com/topic/1?page=2": {
					AnswerRecords: []zhextract.Record{answer("00000003")},
					ExtraRecord:   zhextract.Record{zhextract.FieldTopicID: "1"},
				},
			}),
			Entries:     sink.writer(),
			Concurrency: 2,
			RetryDelays: []time.Duration{0},
		}

		result, err := h.Harvest(context.Background(), src, nil)

		require.NoError(t, err)
		assert.Equal(t, &crawl.Result{Pages: 2, Answers: 3, Questions: 1, Extras: 1, Bytes: len(src.URL)*2 + len("?page=2")}, result)
		assert.Equal(t, []string{"00000001", "00000002", "00000003"}, sink.keys(zhextract.KindSimpleAnswer))
		assert.Equal(t, []string{"10000001"}, sink.keys(zhextract.KindQuestionSummary))
		assert.Equal(t, []string{"1"}, sink.keys(zhextract.KindTopic))
		for i, e := range sink.entries {
			assert.Equal(t, i, e.Position)
			assert.Equal(t, "src-1", e.SourceID)
		}
		assert.Equal(t, "https://www.zhihu.com/topic/1?page=2", sink.entries[len(sink.entries)-1].PageURL)
	})

	t.Run("skips answers repeated across pages", func(t *testing.T) {
		t.Parallel()

		src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/people/a/answers", Pages: 2}
		sink := &entrySink{}
		h := &crawl.Harvester{
			Fetcher: echoFetcher(),
			Parser: pageParser(map[string]*mock.Page{
				"https://www.zhihu.com/people/a/answers": {
					AnswerRecords: []zhextract.Record{answer("00000001"), answer("00000002")},
				},
				"https://www.zhihu.com/people/a/answers?page=2": {
					AnswerRecords: []zhextract.Record{answer("00000002"), answer("00000003"), {zhextract.FieldContent: "no id"}},
				},
			}),
			Entries:     sink.writer(),
			RetryDelays: []time.Duration{0},
		}

		result, err := h.Harvest(context.Background(), src, nil)

		require.NoError(t, err)
		assert.Equal(t, 4, result.Answers)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, []string{"00000001", "00000002", "00000003", ""}, sink.keys(zhextract.KindSimpleAnswer))
	})

	t.Run("counts failed pages and keeps the rest", func(t *testing.T) {
		t.Parallel()

		src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/collection/42", Variant: zhextract.VariantCollection, Pages: 2}
		sink := &entrySink{}
		var events []crawl.ProgressEvent
		h := &crawl.Harvester{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if strings.Contains(url, "page=2") {
						return "", zhextract.Errorf(zhextract.ENOTFOUND, "HTTP 404 for %s", url)
					}
					return url, nil
				},
			},
			Parser: pageParser(map[string]*mock.Page{
				"https://www.zhihu.com/collection/42": {AnswerRecords: []zhextract.Record{answer("00000001")}},
			}),
			Entries:     sink.writer(),
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := h.Harvest(context.Background(), src, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Answers)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		var failed int
		for _, e := range events {
			if e.Type == crawl.ProgressFailed {
				failed++
				assert.Equal(t, zhextract.ENOTFOUND, zhextract.ErrorCode(e.Error))
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("waits on rate limiter per host", func(t *testing.T) {
		t.Parallel()

		src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/question/12345678", Variant: zhextract.VariantQuestion}
		var mu sync.Mutex
		var domains []string
		h := &crawl.Harvester{
			Fetcher: echoFetcher(),
			Parser: pageParser(map[string]*mock.Page{
				src.URL: {QuestionRecords: []zhextract.Record{question("12345678")}},
			}),
			Entries: (&entrySink{}).writer(),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		result, err := h.Harvest(context.Background(), src, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Questions)
		assert.Equal(t, []string{"www.zhihu.com"}, domains)
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/people/a/answers"}
		h := &crawl.Harvester{
			Fetcher: echoFetcher(),
			Parser: pageParser(map[string]*mock.Page{
				src.URL: {AnswerRecords: []zhextract.Record{answer("00000001")}},
			}),
			Entries: &mock.EntryWriter{
				CreateEntryFn: func(_ context.Context, _ *zhextract.Entry) error {
					return errors.New("disk full")
				},
			},
			RetryDelays: []time.Duration{0},
		}

		_, err := h.Harvest(context.Background(), src, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("rejects unknown variant before fetching", func(t *testing.T) {
		t.Parallel()

		h := &crawl.Harvester{Fetcher: &mock.Fetcher{}}

		_, err := h.Harvest(context.Background(), &zhextract.Source{URL: "https://www.zhihu.com", Variant: "timeline"}, nil)

		assert.Equal(t, zhextract.EINVALID, zhextract.ErrorCode(err))
	})
}

func TestHarvester_Harvest_WithParser(t *testing.T) {
	t.Parallel()

	markup := `<html><body>
	<div class="zm-item">
		<h2><a class="question_link" href="/question/10000001">问题</a></h2>
		<div class="zm-item-answer">
			<div class="zm-item-vote-info" data-votecount="7"></div>
			<textarea class="content">&lt;p&gt;回答&lt;/p&gt;&lt;span class="answer-date-link-wrap"&gt;&lt;a class="answer-date-link" href="/question/10000001/answer/20000001"&gt;2018-08-08&lt;/a&gt;&lt;/span&gt;</textarea>
		</div>
	</div>
	</body></html>`

	src := &zhextract.Source{ID: "src-1", URL: "https://www.zhihu.com/explore", Pages: 2}
	sink := &entrySink{}
	h := &crawl.Harvester{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return markup, nil
			},
		},
		Parser:      goquery.NewParser(),
		Entries:     sink.writer(),
		RetryDelays: []time.Duration{0},
	}

	result, err := h.Harvest(context.Background(), src, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Answers)
	assert.Equal(t, 1, result.Questions)
	assert.Equal(t, 2, result.Duplicates)
	require.Len(t, sink.entries, 2)
	assert.Equal(t, "7", sink.entries[1].Fields[zhextract.FieldAgree])
	assert.Equal(t, "http://www.zhihu.com/question/10000001/answer/20000001", sink.entries[1].Fields[zhextract.FieldHref])
}
