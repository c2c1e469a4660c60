package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
)

func TestBuilder_OrderFlow(t *testing.T) {
	b := New().Named("orders").Describe("Order lifecycle")

	b.Status("pending").To("processing").
		Status("processing").To("approved", "rejected").
		Status("approved").To("processed")
	b.Terminal("rejected").Terminal("processed")

	m, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "orders", m.Name())
	assert.Equal(t, "Order lifecycle", m.Description())
	assert.Equal(t, []string{"pending", "processing", "approved", "rejected", "processed"}, m.Statuses())
	assert.ErrorIs(t, m.Validate("approved", "pending"), domain.ErrPastTransition)
	assert.NoError(t, m.Validate("processing", "rejected"))
}

func TestBuilder_ReopenStatus(t *testing.T) {
	b := New()
	b.Status("open").To("closed")
	b.Status("open").To("on_hold").Loop()

	rules := b.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"closed", "on_hold", "open"}, rules[0].To)

	m, err := b.Build(statusmap.WithoutCache())
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "closed", "on_hold"}, m.Statuses())
	assert.Equal(t, []string{"closed", "on_hold"}, m.Terminals())
}

func TestBuilder_Chain(t *testing.T) {
	m, err := New().
		Chain("pending", "shipped", "delivered").
		Build()
	require.NoError(t, err)

	assert.ErrorIs(t, m.Validate("pending", "delivered"), domain.ErrFutureTransition)
	assert.Equal(t, []string{"delivered"}, m.Terminals())
}

func TestBuilder_Empty(t *testing.T) {
	_, err := New().Named("empty").Build()
	assert.ErrorIs(t, err, domain.ErrEmptyTransitions)
	assert.Contains(t, err.Error(), `"empty"`)
}

func TestBuilder_DoneReturnsParent(t *testing.T) {
	b := New()
	assert.Same(t, b, b.Status("a").Done())
}
