package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathPattern(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		args        []string
		wantPath    string
		wantPattern string
	}{
		{
			name:        "path and pattern",
			args:        []string{dir, "*.go"},
			wantPath:    dir,
			wantPattern: "*.go",
		},
		{
			name:        "single arg naming a directory",
			args:        []string{dir},
			wantPath:    dir,
			wantPattern: "*",
		},
		{
			name:        "single arg that is not a directory",
			args:        []string{"*.md"},
			wantPath:    ".",
			wantPattern: "*.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, pattern := resolvePathPattern(tt.args)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}
}

func TestResolvePathPattern_FileIsNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	path, pattern := resolvePathPattern([]string{file})
	assert.Equal(t, ".", path)
	assert.Equal(t, file, pattern)
}

func TestNewRootCommand_Structure(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "history")
	assert.Contains(t, names, "config")

	maxFiles := root.Flags().Lookup("max-files")
	require.NotNil(t, maxFiles)
	assert.Equal(t, "500000", maxFiles.DefValue)

	timeout := root.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "600", timeout.DefValue)

	for _, name := range []string{"regex", "path", "files-only", "dirs-only", "max-depth", "show-permission-errors"} {
		assert.NotNil(t, root.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
