package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "settings.json"))

	if s.Enabled(FlagScraping) {
		t.Error("Expected scraping to default to disabled")
	}
}

func TestTogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := Load(path)
	enabled, err := s.Toggle(FlagScraping)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !enabled {
		t.Error("Expected toggle to enable the flag")
	}

	// A fresh load must see the persisted value.
	s2 := Load(path)
	if !s2.Enabled(FlagScraping) {
		t.Error("Expected persisted flag to be enabled after reload")
	}
}

func TestToggleUnknown(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "settings.json"))

	if _, err := s.Toggle("does_not_exist"); err == nil {
		t.Error("Expected error toggling an unknown setting")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatalf("Failed to write malformed file: %v", err)
	}

	s := Load(path)
	if s.Enabled(FlagScraping) {
		t.Error("Expected defaults after malformed file")
	}
}
