package zhextract

import (
	"context"
	"time"
)

// Entry is a stored record harvested from a source page.
type Entry struct {
	ID          string     `json:"id"`
	SourceID    string     `json:"sourceId"`
	PageURL     string     `json:"pageUrl"`
	Kind        EntityKind `json:"kind"`
	Key         string     `json:"key"`
	Fields      Record     `json:"fields"`
	ContentHash string     `json:"contentHash"`
	Position    int        `json:"position"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.SourceID == "" {
		return Errorf(EINVALID, "entry source ID required")
	}
	if e.Kind == "" {
		return Errorf(EINVALID, "entry kind required")
	}
	return nil
}

// EntryKey returns the natural key of a record of the given kind:
// the answer id for answers, the question id for questions and so on.
// Returns "" when the record lacks the identifying field.
func EntryKey(kind EntityKind, r Record) string {
	switch kind {
	case KindAnswer, KindSimpleAnswer:
		return r.Get(FieldAnswerID)
	case KindQuestionSummary, KindQuestionDetail:
		return r.Get(FieldQuestionID)
	case KindAuthor, KindAuthorProfile:
		return r.Get(FieldAuthorID)
	case KindTopic:
		return r.Get(FieldTopicID)
	case KindCollection:
		return r.Get(FieldCollectionID)
	}
	return ""
}

// EntryWriter writes entries to storage.
type EntryWriter interface {
	CreateEntry(ctx context.Context, entry *Entry) error
}

// EntryService represents a service for managing entries.
type EntryService interface {
	// CreateEntry creates a new entry.
	CreateEntry(ctx context.Context, entry *Entry) error

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*Entry, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntriesBySource removes all entries for a source.
	DeleteEntriesBySource(ctx context.Context, sourceID string) error
}

// SortOrder represents the sort order for entry queries.
type SortOrder string

// SortOrder constants for EntryFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByPosition  SortOrder = "position"
)

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	ID       *string     `json:"id"`
	SourceID *string     `json:"sourceId"`
	Kind     *EntityKind `json:"kind"`
	Key      *string     `json:"key"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// Exporter persists answer entries outside the database with atomic
// semantics. Save writes to a temporary location; Commit makes changes
// permanent; Abort discards pending changes.
type Exporter interface {
	Save(ctx context.Context, entry *Entry) error
	Commit() error
	Abort() error
}
