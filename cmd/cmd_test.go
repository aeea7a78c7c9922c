package cmd

import (
	"bytes"
	"testing"

	"github.com/huangsam/uatpulse/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"dashboard", "countdown", "series", "calendar", "report", "check", "watch", "serve", "mcp", "version", "cache", "history"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub := map[string]bool{}
	for _, c := range historyCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"status", "clear", "export", "migrate", "runs"} {
		assert.True(t, sub[want], "missing history subcommand %s", want)
	}
}

func TestPersistentFlagDefaults(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	tests := []struct {
		name string
		want string
	}{
		{"feed", "./uat.json"},
		{"timezone", "Europe/Berlin"},
		{"output", "text"},
		{"cache-backend", "sqlite"},
		{"history-backend", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flags.Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.DefValue)
		})
	}
	assert.Equal(t, "p", flags.Lookup("platform").Shorthand)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "uatpulse CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}

func TestHistoryBackendFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	t.Run("defaults to sqlite", func(t *testing.T) {
		viper.Set("history-backend", "")
		viper.Set("history-db-connect", "")
		backend, connStr, err := historyBackendFromConfig()
		require.NoError(t, err)
		assert.Equal(t, schema.SQLiteBackend, backend)
		assert.Empty(t, connStr)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		viper.Set("history-backend", "oracle")
		_, _, err := historyBackendFromConfig()
		assert.Error(t, err)
	})

	t.Run("requires postgres connection", func(t *testing.T) {
		viper.Set("history-backend", "postgresql")
		viper.Set("history-db-connect", "")
		_, _, err := historyBackendFromConfig()
		assert.Error(t, err)
	})

	viper.Set("history-backend", "")
	viper.Set("history-db-connect", "")
}
