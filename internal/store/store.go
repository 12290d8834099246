// Package store is the SQLite persistence layer behind the reference remote
// store server. Items are stored in a single flat table keyed by the
// client-assigned id.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/agentstation/utc"
	_ "modernc.org/sqlite"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id           TEXT PRIMARY KEY,
	type         TEXT NOT NULL,
	countryCode  TEXT NOT NULL,
	country      TEXT NOT NULL,
	denomination TEXT NOT NULL,
	year         INTEGER,
	condition    TEXT,
	value        REAL,
	notes        TEXT,
	catalogLink  TEXT,
	photoFront   TEXT,
	photoBack    TEXT,
	dateAdded    TEXT,
	dateModified TEXT
);
`

const itemColumns = `id, type, countryCode, country, denomination, year, condition,
	value, notes, catalogLink, photoFront, photoBack, dateAdded, dateModified`

// Store is a SQLite-backed item store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids table-lock errors under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.WrapIO("migrate", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all items ordered by id.
func (s *Store) List(ctx context.Context) ([]*collection.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, errors.WrapIO("query", "items", err)
	}
	defer rows.Close()

	items := make([]*collection.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns one item by id.
func (s *Store) Get(ctx context.Context, id string) (*collection.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("item", id)
	}
	return item, err
}

// Insert stores a new item. The id must already be assigned.
func (s *Store) Insert(ctx context.Context, item *collection.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemArgs(item)...)
	if err != nil {
		return errors.WrapIO("insert", "item "+item.ID, err)
	}
	return nil
}

// Update replaces an item's fields by id. A missing id is a not-found error.
func (s *Store) Update(ctx context.Context, item *collection.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET type=?, countryCode=?, country=?, denomination=?,
			year=?, condition=?, value=?, notes=?, catalogLink=?,
			photoFront=?, photoBack=?, dateAdded=?, dateModified=?
		WHERE id=?`,
		item.Category, item.CountryCode, item.CountryName, item.Denomination,
		item.Year, item.Condition, item.EstimatedValue, item.Notes, item.CatalogLink,
		item.PhotoFront, item.PhotoBack, formatTime(item.DateAdded), formatTime(item.DateModified),
		item.ID)
	if err != nil {
		return errors.WrapIO("update", "item "+item.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFoundError("item", item.ID)
	}
	return nil
}

// Delete removes an item by id. A missing id is a not-found error.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return errors.WrapIO("delete", "item "+id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFoundError("item", id)
	}
	return nil
}

func itemArgs(item *collection.Item) []any {
	return []any{
		item.ID, item.Category, item.CountryCode, item.CountryName,
		item.Denomination, item.Year, item.Condition, item.EstimatedValue,
		item.Notes, item.CatalogLink, item.PhotoFront, item.PhotoBack,
		formatTime(item.DateAdded), formatTime(item.DateModified),
	}
}

func formatTime(t utc.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Time.Format(time.RFC3339Nano)
}

func parseTime(s string) (utc.Time, error) {
	if s == "" {
		return utc.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return utc.Time{}, err
	}
	return utc.Time{Time: t.UTC()}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*collection.Item, error) {
	var (
		item                    collection.Item
		category, condition     string
		value                   sql.NullFloat64
		dateAdded, dateModified string
	)
	err := row.Scan(&item.ID, &category, &item.CountryCode, &item.CountryName,
		&item.Denomination, &item.Year, &condition, &value, &item.Notes,
		&item.CatalogLink, &item.PhotoFront, &item.PhotoBack,
		&dateAdded, &dateModified)
	if err != nil {
		return nil, err
	}

	item.Category = collection.Category(category)
	item.Condition = collection.Grade(condition)
	if value.Valid {
		item.EstimatedValue = &value.Float64
	}
	if t, err := parseTime(dateAdded); err == nil {
		item.DateAdded = t
	}
	if t, err := parseTime(dateModified); err == nil {
		item.DateModified = t
	}
	return &item, nil
}
