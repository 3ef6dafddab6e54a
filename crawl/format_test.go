package crawl_test

import (
	"testing"

	"github.com/fwojciec/zhextract/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://zhihu.com", crawl.TruncateURL("https://zhihu.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://www.zhihu.com/people/zhang-san/answers/by_votes"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../answers/by_votes", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://www.zhihu.com"
		assert.Equal(t, url, crawl.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://www.zhihu.com", 0))
	})

	t.Run("returns empty string when maxLen is negative", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://www.zhihu.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		// When maxLen < 4, we can't fit "..." prefix, so return URL prefix
		assert.Equal(t, "htt", crawl.TruncateURL("https://www.zhihu.com", 3))
		assert.Equal(t, "ht", crawl.TruncateURL("https://www.zhihu.com", 2))
		assert.Equal(t, "h", crawl.TruncateURL("https://www.zhihu.com", 1))
	})

	t.Run("handles short URL with small maxLen", func(t *testing.T) {
		t.Parallel()
		// URL shorter than maxLen should return unchanged
		assert.Equal(t, "ab", crawl.TruncateURL("ab", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	t.Run("omits zero optional counts", func(t *testing.T) {
		t.Parallel()
		r := &crawl.Result{Pages: 2, Answers: 40, Questions: 20, Bytes: 2048}
		assert.Equal(t, "40 answers, 20 questions from 2 pages (2.0 KB)", crawl.FormatResult(r))
	})

	t.Run("includes extras, duplicates and failures", func(t *testing.T) {
		t.Parallel()
		r := &crawl.Result{Pages: 3, Answers: 5, Questions: 1, Extras: 1, Duplicates: 2, Failed: 1, Bytes: 100}
		assert.Equal(t, "5 answers, 1 questions, 1 page records, 2 duplicates skipped from 3 pages (100 B), 1 failed", crawl.FormatResult(r))
	})
}
