package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the working
// directory.
const DefaultConfigFile = ".visibility.yaml"

// Dir returns the XDG configuration directory for the application.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// UserConfigFile returns the per-user configuration path.
func UserConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadFile loads and validates a page description. Fields missing from the
// file take their defaults. If the file does not exist, it returns
// ErrConfigNotFound.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindFile searches for the configuration file in the following order:
//  1. If path is specified, use it directly
//  2. Look for .visibility.yaml in the current directory
//  3. Look for config.yaml in the XDG configuration directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if candidate := UserConfigFile(); fileExists(candidate) {
		return candidate
	}
	return ""
}

// Load finds and loads the configuration. An explicit path that does not
// exist is an error; otherwise a missing file yields Default.
func Load(path string) (*File, string, error) {
	found := FindFile(path)
	if found == "" {
		if path != "" {
			return nil, "", fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return Default(), "", nil
	}
	f, err := LoadFile(found)
	if err != nil {
		return nil, found, fmt.Errorf("%s: %w", found, err)
	}
	return f, found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
