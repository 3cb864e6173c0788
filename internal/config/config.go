package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Zero values are filled in from
// defaultConfig, so a partial config file is fine.
type Config struct {
	Files struct {
		Words    string `yaml:"words"`    // word list CSV
		Progress string `yaml:"progress"` // progress JSON
		Notes    string `yaml:"notes"`    // directory for AI note markdown files
		Log      string `yaml:"log"`      // log file used while the TUI is running
	} `yaml:"files"`
	Theme struct {
		Name string `yaml:"name"` // active theme name
	} `yaml:"theme"`
	Boss struct {
		Style       string `yaml:"style"`        // "tail" or "ls"
		QuitEnabled bool   `yaml:"quit_enabled"` // allow q to exit the program from the disguise screen
	} `yaml:"boss"`
	Spelling struct {
		StayOnWrong bool `yaml:"stay_on_wrong"` // keep the current word after a wrong answer
		HintOn      bool `yaml:"hint_on"`       // show the phonetic hint by default
	} `yaml:"spelling"`
	AI struct {
		Model          string `yaml:"model"`           // OpenAI-compatible model name
		Search         string `yaml:"search"`          // "auto", "tavily" or "off"
		Sentences      int    `yaml:"sentences"`       // example sentences per note
		TimeoutSeconds int    `yaml:"timeout_seconds"` // per-word generation timeout
		MaxWebResults  int    `yaml:"max_web_results"` // Tavily result cap (1-15)
	} `yaml:"ai"`
	Watch struct {
		Enabled bool `yaml:"enabled"` // reload the word list when the CSV changes
	} `yaml:"watch"`
}

// LoadConfig loads configuration from the default location
// (~/.config/vocab/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(home, ".config", "vocab", "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. A missing
// file is not an error; defaults are returned.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if loaded.Files.Words != "" {
		cfg.Files.Words = loaded.Files.Words
	}
	if loaded.Files.Progress != "" {
		cfg.Files.Progress = loaded.Files.Progress
	}
	if loaded.Files.Notes != "" {
		cfg.Files.Notes = loaded.Files.Notes
	}
	if loaded.Files.Log != "" {
		cfg.Files.Log = loaded.Files.Log
	}
	if loaded.Theme.Name != "" {
		cfg.Theme.Name = loaded.Theme.Name
	}
	if loaded.Boss.Style != "" {
		cfg.Boss.Style = loaded.Boss.Style
	}
	cfg.Boss.QuitEnabled = loaded.Boss.QuitEnabled
	cfg.Spelling.StayOnWrong = loaded.Spelling.StayOnWrong
	cfg.Spelling.HintOn = loaded.Spelling.HintOn
	if loaded.AI.Model != "" {
		cfg.AI.Model = loaded.AI.Model
	}
	if loaded.AI.Search != "" {
		cfg.AI.Search = loaded.AI.Search
	}
	if loaded.AI.Sentences > 0 {
		cfg.AI.Sentences = loaded.AI.Sentences
	}
	if loaded.AI.TimeoutSeconds > 0 {
		cfg.AI.TimeoutSeconds = loaded.AI.TimeoutSeconds
	}
	if loaded.AI.MaxWebResults > 0 {
		cfg.AI.MaxWebResults = loaded.AI.MaxWebResults
	}
	cfg.Watch.Enabled = loaded.Watch.Enabled

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Files.Words = "words.csv"
	cfg.Files.Progress = "progress.json"
	cfg.Files.Notes = "ai_notes"
	cfg.Files.Log = "vocab.log"
	cfg.Theme.Name = "default"
	cfg.Boss.Style = "tail"
	cfg.Boss.QuitEnabled = false
	cfg.Spelling.StayOnWrong = false
	cfg.Spelling.HintOn = true
	cfg.AI.Model = "gpt-4o-mini"
	cfg.AI.Search = "auto"
	cfg.AI.Sentences = 6
	cfg.AI.TimeoutSeconds = 60
	cfg.AI.MaxWebResults = 6
	cfg.Watch.Enabled = false
	return cfg
}

// New returns a configuration with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig writes the configuration to path, creating parent directories
// as needed.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if c.Boss.Style != "tail" && c.Boss.Style != "ls" {
		return fmt.Errorf("invalid boss style: %s", c.Boss.Style)
	}
	switch c.AI.Search {
	case "auto", "tavily", "off":
	default:
		return fmt.Errorf("invalid ai search mode: %s", c.AI.Search)
	}
	if c.AI.Sentences < 1 {
		return fmt.Errorf("ai sentences must be >= 1")
	}
	if c.AI.TimeoutSeconds < 1 {
		return fmt.Errorf("ai timeout must be >= 1 second")
	}
	if c.AI.MaxWebResults < 1 || c.AI.MaxWebResults > 15 {
		return fmt.Errorf("ai max_web_results must be between 1 and 15")
	}
	if c.Files.Words == "" {
		return fmt.Errorf("words file path is required")
	}
	if c.Files.Progress == "" {
		return fmt.Errorf("progress file path is required")
	}
	return nil
}
