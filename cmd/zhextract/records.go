package main

import (
	"fmt"

	"github.com/fwojciec/zhextract"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	source, err := findSource(deps, c.Name)
	if err != nil {
		return err
	}

	filter := zhextract.EntryFilter{
		SourceID: &source.ID,
		SortBy:   zhextract.SortByPosition,
	}
	if c.Kind != "" {
		kind := zhextract.EntityKind(c.Kind)
		filter.Kind = &kind
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(deps.Stderr, "error: source %q has no records. To harvest again, run 'zhextract add %s <url> --force'.\n", c.Name, c.Name)
		return zhextract.Errorf(zhextract.ENOTFOUND, "source %q has no records", c.Name)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, zhextract.FormatEntries(entries))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Records for %s (%d total):\n\n", c.Name, len(entries))
	for i, e := range entries {
		label := e.Fields.Get(zhextract.FieldTitle)
		if label == "" {
			label = e.Fields.Get(zhextract.FieldHref)
		}
		if label == "" {
			label = e.Key
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%s] %s\n", i+1, e.Kind, label)
	}

	return nil
}
