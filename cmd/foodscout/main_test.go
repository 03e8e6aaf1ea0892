package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/foodscout/internal/query"
	"github.com/at-ishikawa/foodscout/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "foodscout", cmd.Use)
	for _, name := range []string{"lookup", "search", "list", "stats", "migrate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "json", formatFlag.DefValue)
}

func TestNewMigrateCommand(t *testing.T) {
	cmd := newMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.Equal(t, "Migration commands", cmd.Short)
	assert.True(t, cmd.HasSubCommands())
}

func TestFormat_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Format
		wantErr bool
	}{
		{name: "json", value: "json", want: FormatJSON},
		{name: "table", value: "table", want: FormatTable},
		{name: "unknown", value: "yaml", want: FormatJSON, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := FormatJSON
			err := format.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, format)
			assert.Equal(t, "Format", format.Type())
		})
	}
}

// setupUnreadableStore creates an offline config whose food database file is not valid JSON.
func setupUnreadableStore(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	storePath := testutil.StorePath(tmpDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(storePath), 0755))
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0644))
	return cfgPath
}

func setupInvalidConfigFile(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("usda:\n  page_size: 0\n"), 0644))
	return cfgPath
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMessage string
	}{
		{
			name:        "unknown command",
			args:        []string{"cook"},
			wantMessage: `unknown command "cook" for "foodscout"`,
		},
		{
			name:        "missing query",
			args:        []string{"lookup"},
			wantMessage: "requires at least 1 arg(s), only received 0",
		},
		{
			name:        "invalid format",
			args:        []string{"stats", "--format", "yaml"},
			wantMessage: `invalid argument "yaml" for "--format" flag: invalid format: yaml`,
		},
		{
			name:        "broken config",
			args:        []string{"stats", "--config", setupBrokenConfigFile(t)},
			wantMessage: msgConfig,
		},
		{
			name:        "invalid config value",
			args:        []string{"list", "--config", setupInvalidConfigFile(t)},
			wantMessage: msgConfig,
		},
		{
			name:        "unreadable food database",
			args:        []string{"stats", "--config", setupUnreadableStore(t)},
			wantMessage: msgStoreLoad,
		},
		{
			name:        "empty query",
			args:        []string{"lookup", "--config", testutil.SetupTestConfig(t, t.TempDir()), ","},
			wantMessage: "No food items found in query.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, code := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)

			got := decodeJSON[errorResponse](t, output)
			assert.Equal(t, errorResponse{Status: "error", Message: tt.wantMessage}, got)
			assert.NotContains(t, got.Message, "() >")
			assert.NotContains(t, got.Message, " > ")
		})
	}
}

func TestPublicMessage(t *testing.T) {
	storeErr := fmt.Errorf("store.Load() > %w", errors.New("mkdir /proc/nope: no such file or directory"))
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "classified failure hides the chain",
			err:  fail(msgStoreLoad, storeErr),
			want: msgStoreLoad,
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("service.Lookup() > %w", query.ErrEmptyQuery),
			want: "No food items found in query.",
		},
		{
			name: "cancellation wins over the failure class",
			err:  fail(msgStoreSave, fmt.Errorf("service.Lookup() > %w", context.Canceled)),
			want: msgInterrupted,
		},
		{
			name: "unclassified error is shown as is",
			err:  errors.New(`unknown command "cook" for "foodscout"`),
			want: `unknown command "cook" for "foodscout"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicMessage(tt.err))
		})
	}

	assert.ErrorIs(t, fail(msgStoreLoad, storeErr), storeErr)
	assert.Equal(t, storeErr.Error(), fail(msgStoreLoad, storeErr).Error())
}

func TestLoadDotEnv(t *testing.T) {
	const name = "FOODSCOUT_DOTENV_TEST"
	t.Cleanup(func() { _ = os.Unsetenv(name) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(name+"=from-dotenv\n"), 0644))

	loadDotEnv(path)
	assert.Equal(t, "from-dotenv", os.Getenv(name))

	// A missing file is ignored.
	loadDotEnv(filepath.Join(t.TempDir(), ".env"))
}
