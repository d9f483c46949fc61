// Package config handles loading and saving bdh configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/bdh/config.yaml
//   - State:  ~/.local/state/bdh/ (preference caches)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig points the hub at the MES server. Leaving BaseURL empty
// runs the hub fully offline on local data and local preferences.
type ServerConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	CSRFToken string `yaml:"csrf_token,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	View       string `yaml:"view,omitempty"`        // preference namespace, default "bitdesign-hub"
	ExportDir  string `yaml:"export_dir,omitempty"`  // where CSV/SVG exports land, default cwd
	WatchFiles *bool  `yaml:"watch_files,omitempty"` // reload on data source changes (default on)
}

// Config is the top-level configuration for bdh.
type Config struct {
	Server  ServerConfig `yaml:"server,omitempty"`
	ShopDir string       `yaml:"shop_dir,omitempty"` // overrides BDH_SHOP_DIR / .bithub
	UI      UIConfig     `yaml:"ui,omitempty"`
}

// DefaultView is the preference namespace of the hub table.
const DefaultView = "bitdesign-hub"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{View: DefaultView},
	}
}

// View returns the configured preference namespace, defaulted.
func (c Config) View() string {
	if c.UI.View == "" {
		return DefaultView
	}
	return c.UI.View
}

// WatchEnabled reports whether data-source watching is on (default yes).
func (c Config) WatchEnabled() bool {
	return c.UI.WatchFiles == nil || *c.UI.WatchFiles
}

// ConfigDir returns the XDG config directory for bdh.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bdh")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bdh")
}

// StateDir returns the XDG state directory for bdh, where preference
// caches live.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "bdh")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "bdh")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ShopDir = expandHome(cfg.ShopDir)
	cfg.UI.ExportDir = expandHome(cfg.UI.ExportDir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
