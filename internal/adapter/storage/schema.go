package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// defaultSchema is the built-in DDL, used when no external schema script is
// configured. The users table is created last so a partially applied script
// never passes the presence check.
const defaultSchema = `
CREATE TABLE brokers (
	surname    TEXT PRIMARY KEY,
	address    TEXT NOT NULL,
	birth_year INTEGER NOT NULL
);

CREATE TABLE suppliers (
	name TEXT PRIMARY KEY
);

CREATE TABLE buyers (
	name TEXT PRIMARY KEY
);

CREATE TABLE goods (
	name          TEXT NOT NULL,
	supplier_name TEXT NOT NULL REFERENCES suppliers(name),
	type_of_good  TEXT NOT NULL,
	price         NUMERIC NOT NULL CHECK (price > 0),
	quantity      INTEGER NOT NULL CHECK (quantity >= 0),
	expiry_date   TEXT,
	PRIMARY KEY (name, supplier_name)
);

CREATE TABLE deals (
	deal_id        TEXT PRIMARY KEY,
	deal_date      TEXT NOT NULL,
	good_name      TEXT NOT NULL,
	supplier_name  TEXT NOT NULL,
	type_of_good   TEXT NOT NULL,
	sell_quantity  INTEGER NOT NULL CHECK (sell_quantity > 0),
	broker_surname TEXT NOT NULL REFERENCES brokers(surname),
	buyer_name     TEXT NOT NULL REFERENCES buyers(name),
	created_at     TEXT NOT NULL DEFAULT (datetime('now')),
	FOREIGN KEY (good_name, supplier_name) REFERENCES goods(name, supplier_name)
);

CREATE INDEX idx_deals_date ON deals(deal_date);
CREATE INDEX idx_deals_broker ON deals(broker_surname);

CREATE TABLE broker_stats (
	broker_surname   TEXT NOT NULL UNIQUE REFERENCES brokers(surname),
	total_sold_units INTEGER NOT NULL,
	total_deal_sum   NUMERIC NOT NULL,
	last_updated     TEXT NOT NULL
);

CREATE TABLE users (
	username       TEXT PRIMARY KEY,
	password_hash  TEXT NOT NULL,
	role           TEXT NOT NULL CHECK (role IN ('admin', 'broker')),
	broker_surname TEXT REFERENCES brokers(surname)
);
`

// EnsureSchema applies the schema once, on first run. Presence of the users
// sentinel table means the schema is already in place and nothing happens.
// When schemaPath is empty the built-in DDL is used. Seeding runs only right
// after schema creation; a seed failure is logged as a warning, not fatal.
func (s *Store) EnsureSchema(ctx context.Context, schemaPath, seedPath string) error {
	exists, err := s.tableExists(ctx, "users")
	if err != nil {
		return err
	}
	if exists {
		s.log.Debug().Msg("schema already present, skipping initialization")
		return nil
	}

	if schemaPath != "" {
		s.log.Info().Str("path", schemaPath).Msg("applying schema script")
		if err := s.ApplyScript(ctx, schemaPath); err != nil {
			return err
		}
	} else {
		s.log.Info().Msg("applying built-in schema")
		if _, err := s.db.ExecContext(ctx, defaultSchema); err != nil {
			return categorize(err)
		}
	}

	exists, err = s.tableExists(ctx, "users")
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("schema applied but users table still missing")
	}

	if seedPath != "" {
		if err := s.ApplyScript(ctx, seedPath); err != nil {
			s.log.Warn().Err(err).Str("path", seedPath).Msg("seeding failed, schema created without seed data")
		} else {
			s.log.Info().Str("path", seedPath).Msg("seed data applied")
		}
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context, name string) (bool, error) {
	var found string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, categorize(err)
	}
	return true, nil
}
