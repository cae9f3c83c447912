package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_SkipsWhenPresent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddSupplier(ctx, "Aromatique"))

	// A second run must not reapply the schema or disturb existing data.
	require.NoError(t, s.EnsureSchema(ctx, "", ""))
	assert.Equal(t, 1, countRows(t, s, "suppliers"))
}

func TestEnsureSchema_FromScriptFile(t *testing.T) {
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	schemaPath := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(schemaPath, []byte(defaultSchema), 0o644))

	require.NoError(t, s.EnsureSchema(context.Background(), schemaPath, ""))

	exists, err := s.tableExists(context.Background(), "deals")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureSchema_AppliesSeed(t *testing.T) {
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	seedPath := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(seedPath,
		[]byte(`INSERT INTO suppliers (name) VALUES ('Aromatique');`), 0o644))

	require.NoError(t, s.EnsureSchema(context.Background(), "", seedPath))
	assert.Equal(t, 1, countRows(t, s, "suppliers"))
}

func TestEnsureSchema_SeedFailureIsNotFatal(t *testing.T) {
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	missingSeed := filepath.Join(t.TempDir(), "no_such_seed.sql")
	require.NoError(t, s.EnsureSchema(context.Background(), "", missingSeed))

	// Schema creation is the success condition.
	exists, err := s.tableExists(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureSchema_SeedSkippedOnSecondRun(t *testing.T) {
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	seedPath := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(seedPath,
		[]byte(`INSERT INTO suppliers (name) VALUES ('Aromatique');`), 0o644))

	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx, "", seedPath))
	require.NoError(t, s.EnsureSchema(ctx, "", seedPath))

	// Seeding runs only right after schema creation, never again.
	assert.Equal(t, 1, countRows(t, s, "suppliers"))
}
