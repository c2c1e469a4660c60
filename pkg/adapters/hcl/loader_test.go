package hcl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap/internal/testutils"
	"github.com/aretw0/statusmap/pkg/adapters/hcl"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/ports"
)

var _ ports.DefinitionLoader = (*hcl.Loader)(nil)

const orders = `
name        = "orders"
description = "Order lifecycle"

status "pending" {
  next = ["processing"]
}

status "processing" {
  next = ["approved", "rejected"]
}

status "approved" {
  next = ["processed"]
}

status "rejected" {}
`

func TestParse(t *testing.T) {
	def, err := hcl.Parse([]byte(orders), "orders.hcl")
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

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: `status "a" {`, want: "failed to parse"},
		{name: "unknown attribute", src: "status \"a\" {\n  after = [\"b\"]\n}\n", want: "failed to decode"},
		{name: "missing label", src: "status {\n}\n", want: "failed to decode"},
		{name: "duplicate", src: "status \"a\" {}\nstatus \"a\" {}\n", want: "more than once"},
		{name: "no statuses", src: `name = "x"`, want: domain.ErrEmptyTransitions.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hcl.Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "tickets.hcl", "status \"open\" {\n  next = [\"closed\"]\n}\n")

	def, err := hcl.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tickets", def.Name)
	assert.Equal(t, []string{"closed"}, def.Transitions[0].To)
}
