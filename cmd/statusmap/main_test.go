package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersYAML = `name: orders
transitions:
  pending: [processing]
  processing: [approved, rejected]
  approved: [processed]
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "orders.yaml")
	require.NoError(t, os.WriteFile(file, []byte(ordersYAML), 0o644))

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "statusmap version")

	out, err = run(t, "validate", "--file", file, "pending", "processing")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	_, err = run(t, "validate", "--file", file, "approved", "pending")
	assert.ErrorIs(t, err, errRejected)

	_, err = run(t, "sequence", "--file", file, "pending", "processing", "approved")
	assert.NoError(t, err)

	_, err = run(t, "inspect", "--file", file, "ghost")
	assert.ErrorContains(t, err, "not declared")

	target := filepath.Join(dir, "orders.mmd")
	_, err = run(t, "graph", "--file", file, "--output", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graph TD")
}

func TestWriteAtomic_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dot")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeAtomic(path, "digraph {}"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "digraph {}", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
