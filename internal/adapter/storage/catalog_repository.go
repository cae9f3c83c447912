package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

func (s *Store) AddBroker(ctx context.Context, broker domain.Broker) error {
	_, err := s.ExecStatement(ctx,
		`INSERT INTO brokers (surname, address, birth_year) VALUES (?, ?, ?)`,
		broker.Surname, broker.Address, broker.BirthYear)
	return err
}

func (s *Store) AddSupplier(ctx context.Context, name string) error {
	_, err := s.ExecStatement(ctx, `INSERT INTO suppliers (name) VALUES (?)`, name)
	return err
}

func (s *Store) AddBuyer(ctx context.Context, name string) error {
	_, err := s.ExecStatement(ctx, `INSERT INTO buyers (name) VALUES (?)`, name)
	return err
}

func (s *Store) AddGood(ctx context.Context, good domain.Good) error {
	expiry := sql.NullString{String: good.ExpiryDate, Valid: good.ExpiryDate != ""}
	_, err := s.ExecStatement(ctx, `
		INSERT INTO goods (name, supplier_name, type_of_good, price, quantity, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		good.Name, good.SupplierName, good.TypeOfGood, good.Price.String(), good.Quantity, expiry)
	return err
}

// GetGood retrieves a good by its composite key, nil when absent.
func (s *Store) GetGood(ctx context.Context, name, supplier string) (*domain.Good, error) {
	var good domain.Good
	var expiry sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT name, supplier_name, type_of_good, price, quantity, expiry_date
		FROM goods WHERE name = ? AND supplier_name = ?`, name, supplier,
	).Scan(&good.Name, &good.SupplierName, &good.TypeOfGood, &good.Price, &good.Quantity, &expiry)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, categorize(err)
	}

	good.ExpiryDate = expiry.String
	return &good, nil
}

func (s *Store) UpdateGoodPrice(ctx context.Context, name, supplier string, price decimal.Decimal) error {
	rows, err := s.ExecStatement(ctx,
		`UPDATE goods SET price = ? WHERE name = ? AND supplier_name = ?`,
		price.String(), name, supplier)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: good %q from %q", domain.ErrNotFound, name, supplier)
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, user domain.User) error {
	surname := sql.NullString{String: user.BrokerSurname, Valid: user.BrokerSurname != ""}
	_, err := s.ExecStatement(ctx, `
		INSERT INTO users (username, password_hash, role, broker_surname)
		VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, string(user.Role), surname)
	return err
}

// HasAnyUser reports whether at least one account exists. Used at startup to
// decide whether the first admin account needs to be bootstrapped.
func (s *Store) HasAnyUser(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, categorize(err)
	}
	return count > 0, nil
}

// GetUser retrieves an account row by username, nil when absent.
func (s *Store) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	var role string
	var surname sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, role, broker_surname
		FROM users WHERE username = ?`, username,
	).Scan(&user.Username, &user.PasswordHash, &role, &surname)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, categorize(err)
	}

	user.Role = domain.Role(role)
	user.BrokerSurname = surname.String
	return &user, nil
}
