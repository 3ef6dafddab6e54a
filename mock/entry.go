package mock

import (
	"context"

	"github.com/fwojciec/zhextract"
)

var _ zhextract.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of zhextract.EntryService.
type EntryService struct {
	CreateEntryFn           func(ctx context.Context, entry *zhextract.Entry) error
	FindEntryByIDFn         func(ctx context.Context, id string) (*zhextract.Entry, error)
	FindEntriesFn           func(ctx context.Context, filter zhextract.EntryFilter) ([]*zhextract.Entry, error)
	DeleteEntriesBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *EntryService) CreateEntry(ctx context.Context, entry *zhextract.Entry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*zhextract.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *EntryService) FindEntries(ctx context.Context, filter zhextract.EntryFilter) ([]*zhextract.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) DeleteEntriesBySource(ctx context.Context, sourceID string) error {
	return s.DeleteEntriesBySourceFn(ctx, sourceID)
}

var _ zhextract.EntryWriter = (*EntryWriter)(nil)

// EntryWriter is a mock implementation of zhextract.EntryWriter.
type EntryWriter struct {
	CreateEntryFn func(ctx context.Context, entry *zhextract.Entry) error
}

func (w *EntryWriter) CreateEntry(ctx context.Context, entry *zhextract.Entry) error {
	return w.CreateEntryFn(ctx, entry)
}
