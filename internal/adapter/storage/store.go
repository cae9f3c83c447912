package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

// Store owns the SQLite connection and implements the repository ports. The
// desk runs a single session against a single logical connection, so the pool
// is capped at one open connection; this is not designed for multiple
// concurrent writers sharing one process.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the database at path with foreign keys enforced.
// Use ":memory:" for an in-memory store in tests.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", categorize(err))
	}

	return &Store{
		db:  db,
		log: log.With().Str("component", "storage").Logger(),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ExecStatement runs one mutating statement and returns the number of rows
// affected. An empty or whitespace-only statement is a no-op success.
func (s *Store) ExecStatement(ctx context.Context, stmt string, args ...any) (int64, error) {
	if strings.TrimSpace(stmt) == "" {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, categorize(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, categorize(err)
	}
	return rows, nil
}

// QueryRows runs a read query and streams each result row through fn as
// rendered strings, NULL mapped to "". The full result set is never buffered.
func (s *Store) QueryRows(ctx context.Context, stmt string, args []any, fn func(columns []string, values []string) error) error {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return categorize(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return categorize(err)
	}

	raw := make([]sql.NullString, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	values := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return categorize(err)
		}
		for i, v := range raw {
			if v.Valid {
				values[i] = v.String
			} else {
				values[i] = ""
			}
		}
		if err := fn(columns, values); err != nil {
			return err
		}
	}
	return categorize(rows.Err())
}

// ApplyScript reads an entire SQL script file and executes it as one batch.
// Atomicity is the script's responsibility: wrap the statements in a
// transaction inside the file if all-or-nothing behavior is required.
func (s *Store) ApplyScript(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrScript, err)
	}
	if strings.TrimSpace(string(script)) == "" {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, string(script)); err != nil {
		return categorize(err)
	}
	return nil
}

// categorize maps driver errors to the domain taxonomy so callers never
// branch on backend-specific codes.
func categorize(err error) error {
	if err == nil {
		return nil
	}

	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case sqlite3.ErrConstraint:
			if serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
				return fmt.Errorf("%w: %v", domain.ErrReferenceNotFound, err)
			}
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		case sqlite3.ErrError:
			return fmt.Errorf("%w: %v", domain.ErrSyntax, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB:
			return fmt.Errorf("%w: %v", domain.ErrConnClosed, err)
		}
		return err
	}

	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", domain.ErrConnClosed, err)
	}
	return err
}
