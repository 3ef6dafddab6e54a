package main

import (
	"fmt"

	"github.com/fwojciec/zhextract"
	"github.com/fwojciec/zhextract/crawl"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	variant, err := zhextract.ParsePageVariant(c.Variant)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	// Force mode: delete existing source first
	if c.Force {
		existing, err := deps.Sources.FindSources(deps.Ctx, zhextract.SourceFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Sources.DeleteSource(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
				return err
			}
		}
	}

	source := &zhextract.Source{
		Name:    c.Name,
		URL:     c.URL,
		Variant: variant,
		Pages:   max(c.Pages, 1),
	}

	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added source %q (%s)\n", c.Name, source.ID)

	if deps.Harvester == nil {
		return nil
	}

	if c.Concurrency > 0 {
		deps.Harvester.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Fetching %d pages\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 80), event.Error)
		}
	}

	result, err := deps.Harvester.Harvest(deps.Ctx, source, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %s\n", crawl.FormatResult(result))

	return nil
}
