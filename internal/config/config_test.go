package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range env {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "https://image.pollinations.ai/prompt/", cfg.ImageBaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, "plan.db", filepath.Base(cfg.StorePath))
	assert.Equal(t, "espeak", cfg.SpeechCommand)
	assert.Error(t, cfg.RequireProviderKey())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("FITPLAN_SERVER", "http://api.test/")
	t.Setenv("STORE_BACKEND", "GitHub")
	t.Setenv("GITHUB_REPO", "alex/plans")
	t.Setenv("UP_TOK", "tok")
	t.Setenv("PDF_FONT", "/fonts/DejaVuSans.ttf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	assert.NoError(t, cfg.RequireProviderKey())
	assert.Equal(t, "http://api.test", cfg.ServerURL)
	assert.Equal(t, StoreGitHub, cfg.StoreBackend)
	assert.Equal(t, "tok", cfg.GitHubToken)
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.PDFFont)
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LOG_LEVEL")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "redis")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("github without repo", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "github")
		_, err := Load()
		assert.Error(t, err)
	})
}
