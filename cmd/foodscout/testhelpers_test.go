package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// runCLI executes the root command in a scratch working directory and returns stdout and the exit code.
func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	t.Chdir(t.TempDir())
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var stdout bytes.Buffer
	code := execute(context.Background(), args, &stdout)
	return stdout.String(), code
}

func decodeJSON[T any](t *testing.T, output string) T {
	t.Helper()
	var got T
	require.NoError(t, json.Unmarshal([]byte(output), &got), output)
	return got
}
