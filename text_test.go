package zhextract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/stretchr/testify/assert"
)

func TestMatchFirst(t *testing.T) {
	t.Parallel()

	t.Run("returns first match", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "12", zhextract.MatchFirst(`\d+`, "12 条评论 34", "0"))
	})

	t.Run("returns default without match", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "none", zhextract.MatchFirst(`\d+`, "添加评论", "none"))
	})

	t.Run("returns default for invalid pattern", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x", zhextract.MatchFirst(`(`, "anything", "x"))
	})
}

func TestMatchInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "27", zhextract.MatchInt("27 条评论"))
	assert.Equal(t, "0", zhextract.MatchInt("添加评论"))
}

func TestExtractID(t *testing.T) {
	t.Parallel()

	const link = "http://www.zhihu.com/question/12345678/answer/87654321"

	t.Run("extracts question and answer ids from one link", func(t *testing.T) {
		t.Parallel()

		q := zhextract.ExtractID(link, "question", zhextract.QuestionIDPattern)
		a := zhextract.ExtractID(link, "answer", zhextract.AnswerIDPattern)

		assert.Equal(t, "12345678", q)
		assert.Equal(t, "87654321", a)
		assert.Equal(t, link, zhextract.CanonicalAnswerURL(q, a))
	})

	t.Run("returns empty string when segment is absent", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, zhextract.ExtractID("/people/someone", "question", zhextract.QuestionIDPattern))
	})

	t.Run("requires eight digit question ids", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, zhextract.QuestionID("/question/1234"))
	})

	t.Run("extracts variable length ids", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "19550517", zhextract.TopicID("http://www.zhihu.com/topic/19550517"))
		assert.Equal(t, "42", zhextract.CollectionID("zhihu://collection/42"))
	})

	t.Run("stops author ids at slash or quote", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "zhang-san", zhextract.AuthorID("/people/zhang-san/answers"))
		assert.Equal(t, "li", zhextract.AuthorID(`/people/li"`))
	})
}

func TestResolveRelativeDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("resolves yesterday", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2020-02-29", zhextract.ResolveRelativeDate("昨天 10:00", now))
	})

	t.Run("resolves today", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2020-03-01", zhextract.ResolveRelativeDate("编辑于 今天 09:12", now))
	})

	t.Run("extracts iso date", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2020-01-02", zhextract.ResolveRelativeDate("2020-01-02 10:00", now))
	})

	t.Run("returns text unchanged otherwise", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "10:00", zhextract.ResolveRelativeDate("10:00", now))
	})
}
