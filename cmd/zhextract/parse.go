package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/zhextract"
)

// parsedRecord is one line of parse output.
type parsedRecord struct {
	Kind   zhextract.EntityKind `json:"kind"`
	Fields zhextract.Record     `json:"fields"`
}

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	variant, err := zhextract.ParsePageVariant(c.Variant)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	markup, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page, err := deps.Parser.Parse(string(markup), variant)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)

	kinds := variant.Kinds()
	if rec, ok := page.Extra(); ok {
		if err := enc.Encode(parsedRecord{Kind: kinds.Extra, Fields: rec}); err != nil {
			return err
		}
	}
	for rec := range page.Questions() {
		if err := enc.Encode(parsedRecord{Kind: kinds.Question, Fields: rec}); err != nil {
			return err
		}
	}
	for rec := range page.Answers() {
		if err := enc.Encode(parsedRecord{Kind: kinds.Answer, Fields: rec}); err != nil {
			return err
		}
	}

	return nil
}
