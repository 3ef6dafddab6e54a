// Package fs exports stored answers as Markdown files.
package fs

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/zhextract"
	"gopkg.in/yaml.v3"
)

// EntryPath returns the relative file path of an answer entry:
// question/{question_id}/{answer_id}.md.
func EntryPath(entry *zhextract.Entry) (string, error) {
	if entry.Kind != zhextract.KindAnswer && entry.Kind != zhextract.KindSimpleAnswer {
		return "", zhextract.Errorf(zhextract.EINVALID, "cannot export %s entry", entry.Kind)
	}
	qid := entry.Fields.Get(zhextract.FieldQuestionID)
	aid := entry.Fields.Get(zhextract.FieldAnswerID)
	for _, id := range []string{qid, aid} {
		if id == "" {
			return "", zhextract.Errorf(zhextract.EINVALID, "answer entry lacks question or answer id")
		}
		if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
			return "", zhextract.Errorf(zhextract.EINVALID, "path traversal in id %q", id)
		}
	}
	return filepath.Join("question", qid, aid+".md"), nil
}

// frontMatter is the YAML header of an exported answer.
type frontMatter struct {
	Source     string `yaml:"source,omitempty"`
	QuestionID string `yaml:"question_id"`
	AnswerID   string `yaml:"answer_id"`
	Author     string `yaml:"author,omitempty"`
	AuthorID   string `yaml:"author_id,omitempty"`
	Agree      string `yaml:"agree,omitempty"`
	Comment    string `yaml:"comment,omitempty"`
	Committed  string `yaml:"committed,omitempty"`
	Edited     string `yaml:"edited,omitempty"`
	NoReprint  bool   `yaml:"no_reprint,omitempty"`
	Fetched    string `yaml:"fetched"`
}

// FormatAnswer renders an answer entry as Markdown with YAML front matter.
// body is the answer content already converted to Markdown.
func FormatAnswer(entry *zhextract.Entry, body string) (string, error) {
	f := entry.Fields
	fm := frontMatter{
		Source:     f.Get(zhextract.FieldHref),
		QuestionID: f.Get(zhextract.FieldQuestionID),
		AnswerID:   f.Get(zhextract.FieldAnswerID),
		Author:     f.Get(zhextract.FieldAuthorName),
		AuthorID:   f.Get(zhextract.FieldAuthorID),
		Agree:      f.Get(zhextract.FieldAgree),
		Comment:    f.Get(zhextract.FieldComment),
		Committed:  f.Get(zhextract.FieldCommitDate),
		Edited:     f.Get(zhextract.FieldEditDate),
		NoReprint:  f.Get(zhextract.FieldNoRecordFlag) == "1",
		Fetched:    entry.FetchedAt.Format(zhextract.DateLayout),
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}
