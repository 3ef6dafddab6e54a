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
var _ zhextract.SourceService = (*SourceService)(nil)

// SourceService implements zhextract.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

const sourceColumns = "id, name, url, variant, pages, created_at, updated_at"

// CreateSource creates a new source. An empty variant is stored as the
// default answer list variant.
func (s *SourceService) CreateSource(ctx context.Context, source *zhextract.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	variant, err := zhextract.ParsePageVariant(string(source.Variant))
	if err != nil {
		return err
	}
	source.Variant = variant

	if existing, err := s.findByName(ctx, source.Name); err != nil {
		return err
	} else if existing != nil {
		return zhextract.Errorf(zhextract.ECONFLICT, "source %q already exists", source.Name)
	}

	source.ID = uuid.New().String()
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (`+sourceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, source.ID, source.Name, source.URL, string(source.Variant), source.Pages,
		source.CreatedAt.Format(time.RFC3339), source.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*zhextract.Source, error) {
	source, err := scanSource(s.db.QueryRowContext(ctx, `
		SELECT `+sourceColumns+`
		FROM sources
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, zhextract.Errorf(zhextract.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

func (s *SourceService) findByName(ctx context.Context, name string) (*zhextract.Source, error) {
	sources, err := s.FindSources(ctx, zhextract.SourceFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, nil
	}
	return sources[0], nil
}

// FindSources retrieves sources matching the filter.
func (s *SourceService) FindSources(ctx context.Context, filter zhextract.SourceFilter) ([]*zhextract.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sourceColumns + " FROM sources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*zhextract.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, upd zhextract.SourceUpdate) (*zhextract.Source, error) {
	source, err := s.FindSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		source.Name = *upd.Name
	}
	if upd.URL != nil {
		source.URL = *upd.URL
	}
	if upd.Variant != nil {
		source.Variant = *upd.Variant
	}
	if upd.Pages != nil {
		source.Pages = *upd.Pages
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}
	source.Variant, _ = zhextract.ParsePageVariant(string(source.Variant))

	source.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET name = ?, url = ?, variant = ?, pages = ?, updated_at = ?
		WHERE id = ?
	`, source.Name, source.URL, string(source.Variant), source.Pages,
		source.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source. Its entries are removed by
// the foreign key cascade.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return zhextract.Errorf(zhextract.ENOTFOUND, "source not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*zhextract.Source, error) {
	var source zhextract.Source
	var variant, createdAt, updatedAt string

	if err := row.Scan(&source.ID, &source.Name, &source.URL, &variant, &source.Pages,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	source.Variant = zhextract.PageVariant(variant)

	var err error
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &source, nil
}
