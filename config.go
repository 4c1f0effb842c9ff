package rollback

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the one tunable this package exposes: the per-pawn history
// window size. Shape and load/save behavior follow
// ehrlich-b-wingthing's internal/config/wing.go: a YAML-tagged struct with
// sane defaults when no file exists yet, rather than erroring.
type Config struct {
	HistoryCapacity int `yaml:"history_capacity"`
}

// DefaultConfig returns a Config with HistoryCapacity set to
// DefaultHistoryCapacity.
func DefaultConfig() *Config {
	return &Config{HistoryCapacity: DefaultHistoryCapacity}
}

// LoadConfig reads a YAML config file at path. If the file does not exist,
// it returns DefaultConfig() rather than an error — the host is expected to
// call Save to persist the defaults if it wants a file to exist on disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("rollback: read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("rollback: parse config: %w", err)
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("rollback: marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("rollback: mkdir config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rollback: write config: %w", err)
	}
	return nil
}

// NewHistoryFor translates cfg into the capacity parameter
// NewSequenceBuffer/NewCommandReceiver expect. It is the single call site
// where configuration touches the receiver's construction; nothing on the
// per-tick hot path reads configuration directly.
func NewHistoryFor(cfg *Config) int {
	if cfg == nil || cfg.HistoryCapacity <= 0 {
		return DefaultHistoryCapacity
	}
	return cfg.HistoryCapacity
}
