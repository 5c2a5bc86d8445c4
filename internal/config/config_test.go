package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirT is t.Chdir for toolchains predating Go 1.24.
func chdirT(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdirT(t, t.TempDir()) // no config.yaml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 60, cfg.Anthropic.TimeoutSecs)
	assert.Equal(t, "https://api.perplexity.ai", cfg.Perplexity.BaseURL)
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)
	assert.Equal(t, 15, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 512, cfg.Fetch.MaxBodyKB)
	assert.Equal(t, "job_links.txt", cfg.Input.File)
	assert.Empty(t, cfg.Output.File, "empty output means timestamped default")
	assert.Equal(t, []string{"Bangalore", "Remote", "Hybrid"}, cfg.Match.PreferredLocations)
	assert.Equal(t, "2-5 years", cfg.Match.PreferredExperience)
	assert.Equal(t, "company_list.txt", cfg.Careers.InputFile)
	assert.Equal(t, "career_pages.txt", cfg.Careers.OutputFile)
	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	chdirT(t, dir)

	yaml := `
anthropic:
  model: claude-sonnet-4-5-20250929
input:
  file: my_links.txt
pipeline:
  concurrency: 4
match:
  preferred_skills:
    - Go
    - Kubernetes
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "my_links.txt", cfg.Input.File)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, []string{"Go", "Kubernetes"}, cfg.Match.PreferredSkills)
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model, "untouched keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirT(t, t.TempDir())
	t.Setenv("JOBSCOUT_ANTHROPIC_KEY", "sk-test")
	t.Setenv("JOBSCOUT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdirT(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("anthropic: [broken"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "shouting", Format: "console"}))
}
