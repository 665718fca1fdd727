package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.FollowSymlinks)
	assert.Equal(t, "extension", cfg.Detect)
	assert.Equal(t, FormatPlain, cfg.Format)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
roots:
  - /srv/docs
  - relative/papers
detect: magic
follow_symlinks: false
max_depth: 2
exclude: [".git", "tmp*"]
parallel: true
workers: 3
format: json
`)
	t.Chdir(t.TempDir())

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/docs", filepath.Join(dir, "relative", "papers")}, cfg.Roots)
	assert.Equal(t, "magic", cfg.Detect)
	assert.False(t, cfg.FollowSymlinks)
	assert.Equal(t, 2, cfg.MaxDepth)
	assert.Equal(t, []string{".git", "tmp*"}, cfg.Exclude)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, FormatJSON, cfg.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadExplicitMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadImplicitMissingUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadImplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, FileName), "roots: [docs]\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, cfg.Roots)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "roots: [unclosed\n")
	t.Chdir(t.TempDir())

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PDFSCOUT_ROOTS", "/a"+string(os.PathListSeparator)+"/b")
	t.Setenv("PDFSCOUT_DETECT", "strict")
	t.Setenv("PDFSCOUT_FOLLOW_SYMLINKS", "false")
	t.Setenv("PDFSCOUT_MAX_DEPTH", "4")
	t.Setenv("PDFSCOUT_EXCLUDE", ".git, vendor ,")
	t.Setenv("PDFSCOUT_WORKERS", "not-a-number")
	t.Setenv("PDFSCOUT_FORMAT", "null")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, cfg.Roots)
	assert.Equal(t, "strict", cfg.Detect)
	assert.False(t, cfg.FollowSymlinks)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, []string{".git", "vendor"}, cfg.Exclude)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, FormatNull, cfg.Format)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".env"), "PDFSCOUT_FORMAT=json\n")
	// Register for cleanup; godotenv never overrides a set variable
	t.Setenv("PDFSCOUT_FORMAT", "")
	os.Unsetenv("PDFSCOUT_FORMAT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad detect", func(c *Config) { c.Detect = "guess" }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"["} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
