// Package sqlite implements ports.DefinitionStore on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/statusmap/pkg/domain"

	_ "modernc.org/sqlite" // Pure Go driver
)

const schema = `
CREATE TABLE IF NOT EXISTS definitions (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	transitions TEXT NOT NULL,
	updated_at  INTEGER NOT NULL
)`

// Store implements ports.DefinitionStore using SQLite.
type Store struct {
	db *sql.DB
}

type Option func(*options)

type options struct {
	busyTimeout  time.Duration
	maxOpenConns int
}

// WithBusyTimeout sets how long writers wait on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		o.busyTimeout = d
	}
}

// WithMaxOpenConns bounds the connection pool.
func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		o.maxOpenConns = n
	}
}

// Open opens (creating if needed) the database at path in WAL mode and
// ensures the schema exists.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := options{
		busyTimeout:  5 * time.Second,
		maxOpenConns: 4,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Pragmas go in the DSN so they apply to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		path, o.busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	db.SetMaxOpenConns(o.maxOpenConns)
	db.SetMaxIdleConns(o.maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Save upserts the definition.
func (s *Store) Save(ctx context.Context, def domain.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	rules, err := json.Marshal(def.Transitions)
	if err != nil {
		return fmt.Errorf("failed to marshal transitions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO definitions (name, description, transitions, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	description = excluded.description,
	transitions = excluded.transitions,
	updated_at  = excluded.updated_at`,
		def.Name, def.Description, string(rules), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite: save %q: %w", def.Name, err)
	}
	return nil
}

// Load retrieves the definition with the given name.
func (s *Store) Load(ctx context.Context, name string) (domain.Definition, error) {
	var (
		def   = domain.Definition{Name: name}
		rules string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT description, transitions FROM definitions WHERE name = ?`, name,
	).Scan(&def.Description, &rules)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Definition{}, domain.ErrDefinitionNotFound
		}
		return domain.Definition{}, fmt.Errorf("sqlite: load %q: %w", name, err)
	}

	if err := json.Unmarshal([]byte(rules), &def.Transitions); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to unmarshal transitions of %q: %w", name, err)
	}
	return def, nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM definitions WHERE name = ?`, name); err != nil {
		return fmt.Errorf("sqlite: delete %q: %w", name, err)
	}
	return nil
}

// List returns stored names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM definitions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: list: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
