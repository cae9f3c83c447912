package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.EnsureSchema(context.Background(), "", ""))
	return s
}

// seedCatalog inserts the references every deal needs: a supplier, a buyer, a
// broker and one good.
func seedCatalog(t *testing.T, s *Store, goodQty int) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.AddSupplier(ctx, "SupplierX"))
	require.NoError(t, s.AddBuyer(ctx, "BuyerCo"))
	require.NoError(t, s.AddBroker(ctx, domain.Broker{Surname: "Ivanov", Address: "12 Market St", BirthYear: 1978}))
	require.NoError(t, s.AddGood(ctx, domain.Good{
		Name:         "Rose Oil",
		SupplierName: "SupplierX",
		TypeOfGood:   "essential oil",
		Price:        decimal.NewFromInt(5),
		Quantity:     goodQty,
	}))
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestExecStatement_EmptyIsNoOp(t *testing.T) {
	s := newTestStore(t)

	for _, stmt := range []string{"", "   ", "\n\t"} {
		rows, err := s.ExecStatement(context.Background(), stmt)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	}
}

func TestExecStatement_ReportsRowsAffected(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s, 10)

	rows, err := s.ExecStatement(context.Background(), `UPDATE goods SET quantity = 3`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestExecStatement_SyntaxError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ExecStatement(context.Background(), `SELEC nonsense FROM nowhere`)
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestExecStatement_ClosedStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.ExecStatement(context.Background(), `DELETE FROM deals`)
	assert.ErrorIs(t, err, domain.ErrConnClosed)
}

func TestExecStatement_ConstraintViolation(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s, 10)

	// CHECK (quantity >= 0)
	_, err := s.ExecStatement(context.Background(), `UPDATE goods SET quantity = -1`)
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestQueryRows_StreamsInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddSupplier(ctx, "Alpha"))
	require.NoError(t, s.AddSupplier(ctx, "Beta"))

	var got [][]string
	err := s.QueryRows(ctx, `SELECT name FROM suppliers ORDER BY name`, nil,
		func(columns []string, values []string) error {
			require.Equal(t, []string{"name"}, columns)
			got = append(got, append([]string(nil), values...))
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alpha"}, {"Beta"}}, got)
}

func TestQueryRows_NullBecomesEmptyString(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s, 10) // Rose Oil has no expiry date

	var expiry string
	err := s.QueryRows(context.Background(),
		`SELECT expiry_date FROM goods WHERE name = ?`, []any{"Rose Oil"},
		func(_ []string, values []string) error {
			expiry = values[0]
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, "", expiry)
}

func TestQueryRows_CallbackErrorStopsIteration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddSupplier(ctx, "Alpha"))
	require.NoError(t, s.AddSupplier(ctx, "Beta"))

	calls := 0
	err := s.QueryRows(ctx, `SELECT name FROM suppliers`, nil,
		func(_ []string, _ []string) error {
			calls++
			return assert.AnError
		})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestApplyScript_MissingFile(t *testing.T) {
	s := newTestStore(t)

	err := s.ApplyScript(context.Background(), filepath.Join(t.TempDir(), "no_such.sql"))
	assert.ErrorIs(t, err, domain.ErrScript)
}
