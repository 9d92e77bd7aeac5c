package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Proxy.HTTPProxy = "http://proxy.local:8080"
	cfg.Display.DisableCORS = true
	cfg.DefaultCollectionFormat = "yaml"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := writeAtomic(path, []byte("not = [valid toml")); err != nil {
		t.Fatalf("writeAtomic: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a decode error for corrupt TOML")
	}
}

func TestLoadKeyBindingsMissingFileReturnsZeroValue(t *testing.T) {
	kb, err := LoadKeyBindings(filepath.Join(t.TempDir(), "keybindings.toml"))
	if err != nil {
		t.Fatalf("LoadKeyBindings: %v", err)
	}
	if kb.Global != nil || kb.Request != nil || kb.Collection != nil {
		t.Fatalf("expected zero-value KeyBindings, got %+v", kb)
	}
}

func TestLoadKeyBindingsDecodesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	doc := "[global]\nquit = \"q\"\n\n[request]\nsend = \"enter\"\n"
	if err := writeAtomic(path, []byte(doc)); err != nil {
		t.Fatalf("writeAtomic: %v", err)
	}
	kb, err := LoadKeyBindings(path)
	if err != nil {
		t.Fatalf("LoadKeyBindings: %v", err)
	}
	if kb.Global["quit"] != "q" {
		t.Fatalf("got %+v", kb.Global)
	}
	if kb.Request["send"] != "enter" {
		t.Fatalf("got %+v", kb.Request)
	}
}

func TestLoadThemeMissingFileReturnsZeroValue(t *testing.T) {
	th, err := LoadTheme(filepath.Join(t.TempDir(), "theme.toml"))
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Name != "" || th.Colors != nil {
		t.Fatalf("expected zero-value Theme, got %+v", th)
	}
}

func TestLoadThemeDecodesColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	doc := "name = \"dark\"\n\n[colors]\nbackground = \"#000000\"\n"
	if err := writeAtomic(path, []byte(doc)); err != nil {
		t.Fatalf("writeAtomic: %v", err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Name != "dark" {
		t.Fatalf("got name %q", th.Name)
	}
	if th.Colors["background"] != "#000000" {
		t.Fatalf("got %+v", th.Colors)
	}
}
