package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/zhextract"
)

// Ensure Exporter implements zhextract.Exporter at compile time.
var _ zhextract.Exporter = (*Exporter)(nil)

// Exporter writes answer entries as Markdown files with atomic update
// semantics. Files are saved to a temporary directory, then moved into
// place on Commit.
type Exporter struct {
	baseDir   string
	name      string
	converter zhextract.Converter
}

// NewExporter creates a new Exporter.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExporter(baseDir, name string, converter zhextract.Converter) *Exporter {
	return &Exporter{
		baseDir:   baseDir,
		name:      name,
		converter: converter,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save converts the answer content and writes the file to the temporary
// directory. Answers without content are written with an empty body.
func (e *Exporter) Save(ctx context.Context, entry *zhextract.Entry) error {
	relPath, err := EntryPath(entry)
	if err != nil {
		return err
	}

	var body string
	if html := entry.Fields.Get(zhextract.FieldContent); html != "" {
		if body, err = e.converter.Convert(html); err != nil {
			return err
		}
	}

	content, err := FormatAnswer(entry, body)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the saved files.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the saved files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
