package mock

import (
	"context"

	"github.com/fwojciec/zhextract"
)

var _ zhextract.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of zhextract.Exporter.
type Exporter struct {
	SaveFn   func(ctx context.Context, entry *zhextract.Entry) error
	CommitFn func() error
	AbortFn  func() error
}

func (e *Exporter) Save(ctx context.Context, entry *zhextract.Entry) error {
	return e.SaveFn(ctx, entry)
}

func (e *Exporter) Commit() error {
	return e.CommitFn()
}

func (e *Exporter) Abort() error {
	return e.AbortFn()
}
