package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for toolchains before Go 1.24: it switches the working
// directory for the test and restores the original on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte("SERVER_PORT=9191\nEXTRACTOR_MARKER=hitachi\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), content, 0o600))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "hitachi", cfg.Extractor.Marker)
}

func TestLoadEnvironmentBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9191\n"), 0o600))
	chdir(t, dir)
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env present

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, "transactions", cfg.Extractor.ResponsePolicy)
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXTRACTOR_RESPONSE_POLICY", "everything")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXTRACTOR_RESPONSE_POLICY")
}
