// Package store persists moments in SQLite, indexed by their lexical key so
// that a key-ordered scan returns moments in chronological order.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/univtime/pkg/migrate"
	"github.com/chrissnell/univtime/pkg/moment"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("moment not found")

// Record is a stored moment with its bookkeeping columns.
type Record struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Calendar    string    `json:"calendar"`
	Description string    `json:"description,omitempty"`
	Accuracy    string    `json:"accuracy"`
	CreatedAt   time.Time `json:"created_at"`
}

// Moment decodes the record's key.
func (r Record) Moment() (moment.Moment, error) {
	return moment.ParseKey(r.Key)
}

// Store wraps a WAL-mode SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// New opens (or creates) the database at path and applies the schema.
func New(path string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Infow("moment store ready", "path", path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

//go:embed migrations/*.sql
var migrationFS embed.FS

func (s *Store) migrate() error {
	provider := migrate.NewFSProvider(migrationFS, "migrations", "schema_migrations")
	return migrate.NewMigrator(s.db, provider, s.logger).MigrateUp()
}

// Put stores m under a fresh ID. cal records the calendar the moment was
// entered in.
func (s *Store) Put(ctx context.Context, m moment.Moment, cal moment.Calendar, description string) (*Record, error) {
	r := &Record{
		ID:          uuid.NewString(),
		Key:         m.Key(),
		Calendar:    cal.String(),
		Description: description,
		Accuracy:    m.Precision().String(),
		CreatedAt:   time.Now().UTC(),
	}
	err := retryOnContention(func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO moments (id, key, calendar, description, accuracy, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Key, r.Calendar, r.Description, r.Accuracy, r.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert moment: %w", err)
	}
	s.logger.Debugw("stored moment", "id", r.ID, "key", r.Key)
	return r, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, key, calendar, description, accuracy, created_at FROM moments WHERE id = ?`, id,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r, err
}

// Range returns records whose keys fall in [fromKey, toKey], ordered by key.
// An empty bound is open. A limit of zero or less means no limit.
func (s *Store) Range(ctx context.Context, fromKey, toKey string, limit int) ([]Record, error) {
	query := `SELECT id, key, calendar, description, accuracy, created_at FROM moments WHERE 1=1`
	var args []any
	if fromKey != "" {
		query += ` AND key >= ?`
		args = append(args, fromKey)
	}
	if toKey != "" {
		query += ` AND key <= ?`
		args = append(args, toKey)
	}
	query += ` ORDER BY key, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query moments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// Delete removes a record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	var affected int64
	err := retryOnContention(func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM moments WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete moment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	s.logger.Debugw("deleted moment", "id", id)
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM moments`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var r Record
	var created string
	if err := sc.Scan(&r.ID, &r.Key, &r.Calendar, &r.Description, &r.Accuracy, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	return &r, nil
}
