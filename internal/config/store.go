// Package config handles the persisted defaults and resolution of the
// token and target used for a notification.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName namespaces the config directory under XDG_CONFIG_HOME.
	AppName = "dnotify"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// StoredConfig represents the defaults stored in ~/.config/dnotify/config.yml.
type StoredConfig struct {
	Channel string `yaml:"channel,omitempty"`
	Token   string `yaml:"token,omitempty"`
}

// Store loads and saves the persisted defaults.
type Store interface {
	// Load returns the stored record, or nil if nothing was ever saved.
	Load() (*StoredConfig, error)
	// Save replaces the stored record.
	Save(cfg *StoredConfig) error
	// Exists reports whether a record has been saved.
	Exists() bool
}

// DefaultPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/dnotify/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, ConfigFile)
}

// FileStore is a Store backed by a yaml file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for path. An empty path selects DefaultPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *FileStore) Exists() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the config file.
// Returns nil (not an error) if the file doesn't exist.
func (s *FileStore) Load() (*StoredConfig, error) {
	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg StoredConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes cfg to the config file, replacing whatever was there.
// The file holds a bot token so it is only readable by the owner.
func (s *FileStore) Save(cfg *StoredConfig) error {
	if s.path == "" {
		return errors.New("cannot determine config location: home directory unknown")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
