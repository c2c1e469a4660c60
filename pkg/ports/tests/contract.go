package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/ports"
)

// DefinitionStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionStore.
// The store must be empty when passed in.
func DefinitionStoreContractTest(t *testing.T, store ports.DefinitionStore) {
	t.Helper()
	ctx := context.Background()

	orders := domain.Definition{
		Name:        "orders",
		Description: "Order lifecycle",
		Transitions: domain.Transitions{
			{From: "pending", To: []string{"processing"}},
			{From: "processing", To: []string{"approved", "rejected"}},
			{From: "approved", To: []string{"processed"}},
		},
	}
	tickets := domain.Definition{
		Name: "tickets",
		Transitions: domain.Transitions{
			{From: "open", To: []string{"closed"}},
			{From: "closed", To: []string{"open"}},
		},
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, orders))

		got, err := store.Load(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, orders.Name, got.Name)
		assert.Equal(t, orders.Description, got.Description)
		assert.Equal(t, orders.Transitions, got.Transitions, "rule order must survive storage")
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		updated := orders
		updated.Transitions = domain.Transitions{{From: "pending", To: []string{"cancelled"}}}
		require.NoError(t, store.Save(ctx, updated))

		got, err := store.Load(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, updated.Transitions, got.Transitions)
	})

	t.Run("List_Sorted", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, tickets))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"orders", "tickets"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "orders"))

		_, err := store.Load(ctx, "orders")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"tickets"}, names)

		assert.NoError(t, store.Delete(ctx, "orders"), "deleting twice is not an error")
	})

	t.Run("Save_RequiresName", func(t *testing.T) {
		err := store.Save(ctx, domain.Definition{Transitions: tickets.Transitions})
		assert.Error(t, err)
	})
}
