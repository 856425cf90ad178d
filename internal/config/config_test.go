package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "./archives", cfg.ArchiveDir)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, "archive_dir: /data/exports\nport: 9090\ncors:\n  allowed_origins: [\"http://localhost:5173\"]\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/exports", cfg.ArchiveDir)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("env overrides win over the file", func(t *testing.T) {
		t.Setenv("BSX_ARCHIVE_DIR", "/mnt/bsx")
		t.Setenv("API_PORT", "7000")

		path := writeConfig(t, "archive_dir: /data/exports\nport: 9090\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/mnt/bsx", cfg.ArchiveDir)
		assert.Equal(t, 7000, cfg.Port)
	})

	t.Run("out-of-range port fails validation", func(t *testing.T) {
		path := writeConfig(t, "port: 123456\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("blank archive_dir fails validation", func(t *testing.T) {
		path := writeConfig(t, "archive_dir: \"\"\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
