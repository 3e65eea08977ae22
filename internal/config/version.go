package config

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 2

// VersionedConfig wraps a Config with a version field for migrations
type VersionedConfig struct {
	Version int     `json:"version"`
	Config  *Config `json:"config,omitempty"`
}

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: add version field, no structural changes
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			data["version"] = 1
			return data, nil
		},
	},
	// 1 -> 2: top-level apiUrl/timeoutMs move under "api"
	{
		FromVersion: 1,
		ToVersion:   2,
		Migrate: func(data map[string]any) (map[string]any, error) {
			api, _ := data["api"].(map[string]any)
			if api == nil {
				api = make(map[string]any)
			}
			if old, ok := data["apiUrl"]; ok {
				if _, set := api["baseUrl"]; !set {
					api["baseUrl"] = old
				}
				delete(data, "apiUrl")
			}
			if old, ok := data["timeoutMs"]; ok {
				if _, set := api["timeoutMs"]; !set {
					api["timeoutMs"] = old
				}
				delete(data, "timeoutMs")
			}
			if len(api) > 0 {
				data["api"] = api
			}
			data["version"] = 2
			return data, nil
		},
	},
}

// ParseVersionedConfig parses config data with version migration support
func ParseVersionedConfig(data []byte) (*Config, error) {
	// First, parse as raw JSON to get version
	var rawConfig map[string]any
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	// Nested {"version": N, "config": {...}} form
	var versioned VersionedConfig
	if err := json.Unmarshal(migratedData, &versioned); err != nil {
		return nil, fmt.Errorf("failed to parse versioned config: %w", err)
	}
	if versioned.Config != nil {
		return versioned.Config, nil
	}

	// Otherwise the flat form
	var cfg Config
	if err := json.Unmarshal(migratedData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flat config: %w", err)
	}

	return &cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config as a flat object with a
// version field
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(cfgData, &result); err != nil {
		return nil, err
	}
	result["version"] = CurrentVersion

	return json.MarshalIndent(result, "", "  ")
}
