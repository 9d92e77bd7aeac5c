// Package config holds the workspace-level TOML configuration, and the
// key-bindings/theme types the UI round-trips through the facade, mirroring
// the teacher's settings.go struct-tag style (github.com/pelletier/go-toml/v2).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProxyConfig is the workspace's optional HTTP(S) proxy configuration (§6).
type ProxyConfig struct {
	HTTPProxy  string `toml:"http_proxy,omitempty"`
	HTTPSProxy string `toml:"https_proxy,omitempty"`
}

// DisplayConfig holds the display toggles named in §6.
type DisplayConfig struct {
	SyntaxHighlighting bool `toml:"syntax_highlighting"`
	ImagePreviews      bool `toml:"image_previews"`
	DisableCORS        bool `toml:"disable_cors"`
}

// Config is the root workspace-level TOML document (§6 "Config
// (workspace-level)").
type Config struct {
	Proxy                   ProxyConfig   `toml:"proxy"`
	Display                 DisplayConfig `toml:"display"`
	DefaultCollectionFormat string        `toml:"default_collection_format"`
}

// Default mirrors the defaults a fresh workspace is bootstrapped with.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			SyntaxHighlighting: true,
			ImagePreviews:      true,
			DisableCORS:        false,
		},
		DefaultCollectionFormat: "json",
	}
}

// Load reads and decodes a workspace config.toml, returning defaults if the
// file does not exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to path using the same write-to-temp-then-rename
// discipline as collection/environment persistence (§4.1).
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".atac-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file into place: %w", err)
	}
	return nil
}
