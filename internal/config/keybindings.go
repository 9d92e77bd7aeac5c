package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// KeyBindings is a TOML document the UI consumes to map actions to keys.
// The core only round-trips it (§6: "consumed by the UI, not the core").
type KeyBindings struct {
	Global  map[string]string `toml:"global,omitempty"`
	Request map[string]string `toml:"request,omitempty"`
	Collection map[string]string `toml:"collection,omitempty"`
}

// LoadKeyBindings decodes a key-bindings TOML file, honoring ATAC_KEY_BINDINGS
// at the caller's discretion (the CLI's global flag parsing resolves the
// path; this just decodes).
func LoadKeyBindings(path string) (KeyBindings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return KeyBindings{}, nil
	}
	if err != nil {
		return KeyBindings{}, err
	}
	var kb KeyBindings
	if err := toml.Unmarshal(data, &kb); err != nil {
		return KeyBindings{}, err
	}
	return kb, nil
}

// Theme is a TOML document describing UI colors; the core only round-trips
// it the same way as KeyBindings.
type Theme struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors,omitempty"`
}

func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Theme{}, nil
	}
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}
