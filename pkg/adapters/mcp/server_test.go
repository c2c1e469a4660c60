package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/testutils"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/registry"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New()
	m, err := statusmap.New(testutils.OrderTransitions(), statusmap.WithName("orders"))
	require.NoError(t, err)
	require.NoError(t, reg.Register(m))
	return NewServer(reg)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleClassify(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleClassify(ctx, mcp.CallToolRequest{}, ClassifyArgs{Map: "orders", From: "pending", To: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.Future.String(), res.Outcome)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "future")

	res, err = s.handleClassify(ctx, mcp.CallToolRequest{}, ClassifyArgs{Map: "orders", From: "approved", To: "processed"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)

	_, err = s.handleClassify(ctx, mcp.CallToolRequest{}, ClassifyArgs{Map: "missing"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestHandleSequence(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSequence(ctx, mcp.CallToolRequest{}, SequenceArgs{Map: "orders", Statuses: []string{"pending", "processing", "rejected"}})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, -1, res.Index)

	res, err = s.handleSequence(ctx, mcp.CallToolRequest{}, SequenceArgs{Map: "orders", Statuses: []string{"pending", "rejected", "processing"}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 1, res.Index)
}

func TestHandleListMaps(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleListMaps(context.Background(), mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, res.Maps)
}

func TestHandleDescribeStatus(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleDescribeStatus(ctx, mcp.CallToolRequest{}, StatusArgs{Map: "orders", Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, []string{"processed"}, res.Next)
	assert.Equal(t, []string{"pending", "processing"}, res.Previous)
	assert.False(t, res.Terminal)

	_, err = s.handleDescribeStatus(ctx, mcp.CallToolRequest{}, StatusArgs{Map: "orders", Status: "ghost"})
	assert.ErrorContains(t, err, "ghost")
}

func TestHandleGetGraph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleGetGraph(ctx, callRequest(map[string]any{"map": "orders"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "graph TD")

	res, err = s.handleGetGraph(ctx, callRequest(map[string]any{"map": "orders", "format": "dot"}))
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "digraph")

	res, err = s.handleGetGraph(ctx, callRequest(map[string]any{"map": "orders", "format": "svg"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGetGraph(ctx, callRequest(map[string]any{"map": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
