package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ zhextract.EntryService = (*EntryService)(nil)

// EntryService implements zhextract.EntryService using SQLite.
// Record fields are stored as a JSON object.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

const entryColumns = "id, source_id, page_url, kind, entry_key, fields, content_hash, position, fetched_at"

// CreateEntry creates a new entry. The key is derived from the fields when
// not set and the content hash is always recomputed.
func (s *EntryService) CreateEntry(ctx context.Context, entry *zhextract.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	fields, err := encodeFields(entry.Fields)
	if err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.FetchedAt = time.Now().UTC()
	entry.ContentHash = hashContent(fields)
	if entry.Key == "" {
		entry.Key = zhextract.EntryKey(entry.Kind, entry.Fields)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SourceID, entry.PageURL, string(entry.Kind), entry.Key, string(fields),
		entry.ContentHash, entry.Position, entry.FetchedAt.Format(time.RFC3339))

	return err
}

// FindEntryByID retrieves an entry by ID.
func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*zhextract.Entry, error) {
	entry, err := scanEntry(s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, zhextract.Errorf(zhextract.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntries retrieves entries matching the filter.
func (s *EntryService) FindEntries(ctx context.Context, filter zhextract.EntryFilter) ([]*zhextract.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + entryColumns + " FROM entries WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.Key != nil {
		query.WriteString(" AND entry_key = ?")
		args = append(args, *filter.Key)
	}

	switch filter.SortBy {
	case zhextract.SortByPosition:
		query.WriteString(" ORDER BY position ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*zhextract.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteEntriesBySource removes all entries for a source.
func (s *EntryService) DeleteEntriesBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE source_id = ?", sourceID)
	return err
}

func scanEntry(row scanner) (*zhextract.Entry, error) {
	var entry zhextract.Entry
	var kind, fields, fetchedAt string

	if err := row.Scan(&entry.ID, &entry.SourceID, &entry.PageURL, &kind, &entry.Key,
		&fields, &entry.ContentHash, &entry.Position, &fetchedAt); err != nil {
		return nil, err
	}
	entry.Kind = zhextract.EntityKind(kind)

	var err error
	if entry.Fields, err = decodeFields(fields); err != nil {
		return nil, err
	}
	if entry.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &entry, nil
}
