package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PACKAGESMITH_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	Load()

	s := Current()
	assert.Equal(t, "auto", s.Color)
	assert.Equal(t, "warn", s.LogLevel)
	assert.False(t, s.AssumeYes)
	assert.Equal(t, "parent", s.CommandWorkDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PACKAGESMITH_LOG_LEVEL", "debug")
	t.Setenv("PACKAGESMITH_ASSUME_YES", "true")
	Load()

	s := Current()
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.AssumeYes)
}

func TestSet_WritesFile(t *testing.T) {
	dir := isolate(t)
	Load()

	require.NoError(t, Set(KeyCommandWorkDir, "resolved"))
	assert.Equal(t, "resolved", Get(KeyCommandWorkDir))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "command_workdir: resolved")

	viper.Reset()
	Load()
	assert.Equal(t, "resolved", Current().CommandWorkDir)
}

func TestSet_Rejects(t *testing.T) {
	isolate(t)
	Load()

	assert.Error(t, Set("colour", "never"))
	assert.Error(t, Set(KeyColor, "sometimes"))
	assert.NoError(t, Check(KeyShell, "/bin/bash"))
}
