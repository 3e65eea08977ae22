package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// DefaultBaseURL is used when nothing else names a backend
const DefaultBaseURL = "http://localhost:8080"

// Environment overrides
const (
	EnvAPIURL = "DAYBOOK_API_URL"
	EnvHost   = "DAYBOOK_HOST"
)

// Config represents the full daybook configuration
type Config struct {
	API     APIConfig     `json:"api" toml:"api"`
	Session SessionConfig `json:"session" toml:"session"`
	Export  ExportConfig  `json:"export" toml:"export"`
	Log     LogConfig     `json:"log" toml:"log"`
	UI      UIConfig      `json:"ui" toml:"ui"`
	Network NetworkConfig `json:"network" toml:"network"`
}

// APIConfig says where the task backend lives
type APIConfig struct {
	// BaseURL wins over everything else when set
	BaseURL string `json:"baseUrl,omitempty" toml:"base-url"`
	// Host is looked up in Hosts to derive the base URL
	Host      string            `json:"host,omitempty" toml:"host"`
	Hosts     map[string]string `json:"hosts,omitempty" toml:"hosts"`
	TimeoutMs int               `json:"timeoutMs" toml:"timeout-ms"`
}

// SessionConfig contains token persistence settings
type SessionConfig struct {
	TokenPath string `json:"tokenPath" toml:"token-path"`
}

// ExportConfig contains CSV export settings
type ExportConfig struct {
	Dir string `json:"dir" toml:"dir"`
}

// LogConfig contains log file settings
type LogConfig struct {
	// Path of the log file, "-" discards logs
	Path  string `json:"path" toml:"path"`
	Level string `json:"level" toml:"level"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	ToastSeconds      int    `json:"toastSeconds" toml:"toast-seconds"`
	ErrorToastSeconds int    `json:"errorToastSeconds" toml:"error-toast-seconds"`
	StartDate         string `json:"startDate,omitempty" toml:"start-date"`
}

// NetworkConfig contains backend health polling settings
type NetworkConfig struct {
	CheckInterval int `json:"checkInterval" toml:"check-interval"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		API: APIConfig{
			Hosts: map[string]string{
				"localhost": DefaultBaseURL,
				"127.0.0.1": DefaultBaseURL,
			},
			TimeoutMs: 10000,
		},
		Session: SessionConfig{
			TokenPath: filepath.Join(dir, "session.json"),
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "daybook.log"),
			Level: "info",
		},
		UI: UIConfig{
			ToastSeconds:      3,
			ErrorToastSeconds: 8,
		},
		Network: NetworkConfig{
			CheckInterval: 30,
		},
	}
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "daybook")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".daybook")
}

// UserConfigPath returns the location of the user-level daybook.toml
func UserConfigPath() string {
	return filepath.Join(configDir(), "daybook.toml")
}

// LoadConfig loads configuration with priority:
// 1. .daybook.json in dir (JSONC, with version migration support)
// 2. daybook.toml in the user config dir
// 3. Defaults
//
// Environment overrides are applied on top of whichever source won.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := loadFirst(filepath.Join(dir, ".daybook.json"), UserConfigPath())
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// LoadFile loads configuration from an explicit path. The format follows
// the extension: .toml is TOML, anything else JSONC.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parseByExt(path, data)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

func loadFirst(jsonPath, tomlPath string) (*Config, error) {
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg, err := ParseJSONC(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(jsonPath), err)
		}
		return MergeWithDefaults(cfg), nil
	}

	if data, err := os.ReadFile(tomlPath); err == nil {
		cfg, err := ParseTOML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", tomlPath, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	return DefaultConfig(), nil
}

func parseByExt(path string, data []byte) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = ParseTOML(data)
	} else {
		cfg, err = ParseJSONC(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return MergeWithDefaults(cfg), nil
}

// ParseJSONC standardizes JSON with comments and trailing commas, then
// parses it with version migration.
func ParseJSONC(data []byte) (*Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	return ParseVersionedConfig(standardized)
}

// ParseTOML parses the user-level TOML config
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv applies environment overrides. getenv is os.Getenv outside tests.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvHost)); v != "" {
		cfg.API.Host = v
	}
}

// ResolveBaseURL derives the backend URL: an explicit BaseURL first, then
// the Hosts mapping for Host, then port 8080 on Host, then DefaultBaseURL.
func ResolveBaseURL(api APIConfig) string {
	if u := strings.TrimSpace(api.BaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}

	host := strings.ToLower(strings.TrimSpace(api.Host))
	if host == "" {
		return DefaultBaseURL
	}
	if u, ok := api.Hosts[host]; ok && u != "" {
		return strings.TrimRight(u, "/")
	}
	return "http://" + host + ":8080"
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.Hosts == nil {
		cfg.API.Hosts = defaults.API.Hosts
	}
	if cfg.API.TimeoutMs == 0 {
		cfg.API.TimeoutMs = defaults.API.TimeoutMs
	}

	if cfg.Session.TokenPath == "" {
		cfg.Session.TokenPath = defaults.Session.TokenPath
	}

	if cfg.Export.Dir == "" {
		cfg.Export.Dir = defaults.Export.Dir
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	if cfg.UI.ToastSeconds == 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}
	if cfg.UI.ErrorToastSeconds == 0 {
		cfg.UI.ErrorToastSeconds = defaults.UI.ErrorToastSeconds
	}

	if cfg.Network.CheckInterval == 0 {
		cfg.Network.CheckInterval = defaults.Network.CheckInterval
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

// String renders the effective configuration as indented JSON
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}
