package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/seek/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	t.Setenv("SEEK_HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "--config", target, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, target)

	cfg, err := config.LoadConfig(target)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	t.Setenv("SEEK_HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(target, []byte("max_files: 1\n"), 0644))

	_, err := execute(t, "--config", target, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "--config", target, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(target)
	require.NoError(t, err)
	assert.Equal(t, 500000, cfg.MaxFiles)
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SEEK_HOME", home)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, "config.yaml"))

	out, err = execute(t, "--config", "/tmp/custom.yaml", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/custom.yaml")
}
