package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap/pkg/adapters/sqlite"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/ports"
	"github.com/aretw0/statusmap/pkg/ports/tests"
)

var _ ports.DefinitionStore = (*sqlite.Store)(nil)

func open(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "maps.db"))
	tests.DefinitionStoreContractTest(t, store)
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "maps.db")

	first, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, domain.Definition{
		Name:        "shipping",
		Description: "Parcel lifecycle",
		Transitions: domain.Transitions{
			{From: "pending", To: []string{"shipped"}},
			{From: "shipped", To: []string{"delivered", "lost"}},
		},
	}))
	require.NoError(t, first.Close())

	second := open(t, path)
	def, err := second.Load(ctx, "shipping")
	require.NoError(t, err)
	assert.Equal(t, "Parcel lifecycle", def.Description)
	assert.Equal(t, []string{"delivered", "lost"}, def.Transitions[1].To)
}

func TestSQLiteStore_EmptyList(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "maps.db"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
