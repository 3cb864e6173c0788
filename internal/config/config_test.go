package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "words.csv", cfg.Files.Words)
	assert.Equal(t, "progress.json", cfg.Files.Progress)
	assert.Equal(t, "ai_notes", cfg.Files.Notes)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "tail", cfg.Boss.Style)
	assert.False(t, cfg.Boss.QuitEnabled)
	assert.Equal(t, "auto", cfg.AI.Search)
	assert.Equal(t, 6, cfg.AI.Sentences)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "words.csv", cfg.Files.Words)
}

func TestLoadConfigFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
files:
  words: /tmp/my-words.csv
theme:
  name: ocean
boss:
  style: ls
  quit_enabled: true
ai:
  sentences: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my-words.csv", cfg.Files.Words)
	assert.Equal(t, "progress.json", cfg.Files.Progress) // untouched default
	assert.Equal(t, "ocean", cfg.Theme.Name)
	assert.Equal(t, "ls", cfg.Boss.Style)
	assert.True(t, cfg.Boss.QuitEnabled)
	assert.Equal(t, 3, cfg.AI.Sentences)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
}

func TestLoadConfigFileRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad boss style":  "boss:\n  style: cowsay\n",
		"bad search mode": "ai:\n  search: bing\n",
		"bad web results": "ai:\n  max_web_results: 99\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadConfigFile(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := New()
	cfg.Theme.Name = "sunset"
	cfg.Watch.Enabled = true
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sunset", loaded.Theme.Name)
	assert.True(t, loaded.Watch.Enabled)
}
