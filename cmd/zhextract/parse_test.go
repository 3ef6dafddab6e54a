package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/zhextract"
	main "github.com/fwojciec/zhextract/cmd/zhextract"
	"github.com/fwojciec/zhextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, markup string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(file, []byte(markup), 0644))
	return file
}

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints extra then questions then answers", func(t *testing.T) {
		t.Parallel()

		var gotMarkup string
		var gotVariant zhextract.PageVariant
		parser := &mock.PageParser{
			ParseFn: func(markup string, variant zhextract.PageVariant) (zhextract.Page, error) {
				gotMarkup = markup
				gotVariant = variant
				return &mock.Page{
					ExtraRecord:     zhextract.Record{zhextract.FieldTopicID: "19550517"},
					QuestionRecords: []zhextract.Record{{zhextract.FieldQuestionID: "10000001"}},
					AnswerRecords:   []zhextract.Record{{zhextract.FieldAnswerID: "20000001"}},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Parser: parser,
		}

		cmd := &main.ParseCmd{File: writePage(t, "<html></html>"), Variant: "topic"}

		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, "<html></html>", gotMarkup)
		assert.Equal(t, zhextract.VariantTopic, gotVariant)

		lines := bytes.Split(bytes.TrimSpace(stdout.Bytes()), []byte("\n"))
		require.Len(t, lines, 3)
		assert.JSONEq(t, `{"kind":"topic","fields":{"topic_id":"19550517"}}`, string(lines[0]))
		assert.JSONEq(t, `{"kind":"question_summary","fields":{"question_id":"10000001"}}`, string(lines[1]))
		assert.JSONEq(t, `{"kind":"simple_answer","fields":{"answer_id":"20000001"}}`, string(lines[2]))
	})

	t.Run("returns parser error", func(t *testing.T) {
		t.Parallel()

		parser := &mock.PageParser{
			ParseFn: func(string, zhextract.PageVariant) (zhextract.Page, error) {
				return nil, errors.New("unreadable")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Parser: parser,
		}

		cmd := &main.ParseCmd{File: writePage(t, "x"), Variant: "answers"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("rejects unknown variant", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.ParseCmd{File: "unused.html", Variant: "feed"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, zhextract.EINVALID, zhextract.ErrorCode(err))
	})
}
