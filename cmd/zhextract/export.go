package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/zhextract"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	source, err := findSource(deps, c.Name)
	if err != nil {
		return err
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, zhextract.EntryFilter{
		SourceID: &source.ID,
		SortBy:   zhextract.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	exporter := deps.NewExporter(c.Dir, source.Name)

	var saved, skipped int
	for _, e := range entries {
		if e.Kind != zhextract.KindAnswer && e.Kind != zhextract.KindSimpleAnswer {
			continue
		}
		if !e.Fields.Has(zhextract.FieldQuestionID) || !e.Fields.Has(zhextract.FieldAnswerID) {
			skipped++
			continue
		}
		if err := exporter.Save(deps.Ctx, e); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: export %s: %s\n", e.Key, zhextract.ErrorMessage(err))
			return err
		}
		saved++
	}

	if saved == 0 {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error: source %q has no answers to export\n", c.Name)
		return zhextract.Errorf(zhextract.ENOTFOUND, "source %q has no answers", c.Name)
	}

	if err := exporter.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d answers to %s\n", saved, filepath.Join(c.Dir, source.Name))
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  %d answers without ids skipped\n", skipped)
	}
	return nil
}
