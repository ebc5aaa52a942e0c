package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/gofrs/flock"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Config holds the CLI configuration. AccountID and UserID are the only fields
// with a consistency rule: both must be non-empty for the CLI to count as
// logged in (see IsConfigured).
type Config struct {
	Region        string `json:"region"`
	AccountID     string `json:"account_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	DefaultFolder string `json:"default_folder,omitempty"`
	DefaultOutput string `json:"default_output,omitempty"`
}

// Load reads config from the XDG path, returning defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from an explicit path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty region means "not set" and is resolved in cli.BeforeApply
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to the XDG config path
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to an explicit path. The write is guarded by a lock
// file so two racing invocations don't interleave partial writes.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire config lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire config lock: timeout")
	}
	defer lock.Unlock()

	// JSON is valid JSON5, so plain json is fine for writing
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// IsConfigured reports whether the CLI has a usable identity: both the mail
// account id and the helper user id must be set.
func (c *Config) IsConfigured() bool {
	return c.AccountID != "" && c.UserID != ""
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == key || jsonTag == key+",omitempty" {
			return fmt.Sprintf("%v", v.Field(i).Interface()), nil
		}
	}

	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set sets a config value by key name and saves
func (c *Config) Set(key, value string) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == key || jsonTag == key+",omitempty" {
			v.Field(i).SetString(value)
			return c.Save()
		}
	}

	return fmt.Errorf("unknown config key: %s", key)
}

// Unset sets a config value to its zero value and saves
func (c *Config) Unset(key string) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == key || jsonTag == key+",omitempty" {
			v.Field(i).SetString("")
			return c.Save()
		}
	}

	return fmt.Errorf("unknown config key: %s", key)
}

// Clear resets every field to its default. Used by auth logout.
func (c *Config) Clear() {
	*c = Config{}
}

// GetRegionConfig returns the RegionConfig for the configured region
func (c *Config) GetRegionConfig() (RegionConfig, error) {
	return GetRegion(c.Region)
}
