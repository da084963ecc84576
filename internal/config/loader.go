package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configNames are tried in order inside each search directory.
var configNames = []string{"breakout.yaml", "breakout.yml", "breakout.toml"}

// Load loads the game configuration.
// Search order: customPath -> ~/.breakout/breakout.{yaml,toml} -> ./configs/breakout.{yaml,toml} -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides what it names.
// Only a broken customPath is an error; other candidates are skipped if unreadable.
func Load(customPath string) (BreakoutConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, dir := range searchDirs() {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if cfg, err := LoadFile(path); err == nil {
				return cfg, nil
			}
		}
	}

	var cfg BreakoutConfig
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads a single config file. The format is chosen by extension:
// .toml is TOML, anything else is YAML.
func LoadFile(path string) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode serializes a configuration as YAML.
func Encode(cfg BreakoutConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a YAML configuration produced by Encode.
func Decode(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// searchDirs returns the directories checked when no custom path is given.
func searchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".breakout"))
	}
	return append(dirs, "configs")
}
