package file_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap/internal/testutils"
	"github.com/aretw0/statusmap/pkg/adapters/file"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/ports"
)

var (
	_ ports.DefinitionLoader = (*file.Loader)(nil)
	_ ports.Watchable        = (*file.Loader)(nil)
)

func TestParse_FullForm(t *testing.T) {
	def, err := file.Parse([]byte(`
name: orders
description: Order lifecycle
transitions:
  pending: [processing]
  processing:
    - approved
    - rejected
  approved: processed
  rejected: ~
`))
	require.NoError(t, err)

	assert.Equal(t, "orders", def.Name)
	assert.Equal(t, "Order lifecycle", def.Description)
	assert.Equal(t, domain.Transitions{
		{From: "pending", To: []string{"processing"}},
		{From: "processing", To: []string{"approved", "rejected"}},
		{From: "approved", To: []string{"processed"}},
		{From: "rejected"},
	}, def.Transitions)
}

func TestParse_ShortFormKeepsOrder(t *testing.T) {
	def, err := file.Parse([]byte(`
zeta: [alpha]
alpha: []
mid:
`))
	require.NoError(t, err)

	assert.Empty(t, def.Name)
	require.Len(t, def.Transitions, 3)
	assert.Equal(t, "zeta", def.Transitions[0].From)
	assert.Equal(t, "alpha", def.Transitions[1].From)
	assert.Empty(t, def.Transitions[1].To)
	assert.Nil(t, def.Transitions[2].To)
}

func TestParse_JSON(t *testing.T) {
	def, err := file.Parse([]byte(`{"name": "shipping", "transitions": {"pending": ["shipped"], "shipped": null}}`))
	require.NoError(t, err)
	assert.Equal(t, "shipping", def.Name)
	assert.Equal(t, []string{"shipped"}, def.Transitions[0].To)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{name: "empty document", input: "", empty: true},
		{name: "empty mapping", input: "{}", empty: true},
		{name: "sequence root", input: "- a\n- b\n"},
		{name: "nested mapping successors", input: "a:\n  b: c\n"},
		{name: "transitions not a mapping", input: "transitions: [a]\n"},
		{name: "malformed", input: "a: [b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, domain.ErrEmptyTransitions)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "tickets.yaml", "open: closed\nclosed: open\n")

	def, err := file.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tickets", def.Name, "name defaults to the file stem")
	assert.Len(t, def.Transitions, 2)

	_, err = file.New(dir + "/missing.yaml").Load(context.Background())
	assert.Error(t, err)
}
