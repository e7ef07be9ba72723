// Package settings holds runtime feature flags persisted as a JSON file.
// Flags are read at startup and rewritten whenever one is toggled
// interactively.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/logcolors"
)

// Flag names.
const (
	FlagScraping = "scraping_enabled"
)

var defaults = map[string]bool{
	FlagScraping: false,
}

// Settings is the toggleable flag set backed by one JSON file.
type Settings struct {
	path string

	mu    sync.RWMutex
	flags map[string]bool
}

// Load reads the settings file, falling back to defaults when it is missing
// or malformed.
func Load(path string) *Settings {
	s := &Settings{path: path, flags: map[string]bool{}}
	for k, v := range defaults {
		s.flags[k] = v
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("%s Failed to read %s: %v", logcolors.LogSettings, path, err)
		}
		return s
	}

	var onDisk map[string]bool
	if err := json.Unmarshal(data, &onDisk); err != nil {
		log.Warnf("%s Error decoding %s, using defaults: %v", logcolors.LogSettings, path, err)
		return s
	}
	for k, v := range onDisk {
		s.flags[k] = v
	}
	return s
}

// Enabled reports whether the named flag is on. Unknown flags are off.
func (s *Settings) Enabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[name]
}

// Toggle flips a known flag, persists the new state, and returns the new
// value. Unknown flags are an error surfaced to the caller as a reply.
func (s *Settings) Toggle(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := defaults[name]; !known {
		return false, fmt.Errorf("unknown setting %q", name)
	}

	s.flags[name] = !s.flags[name]
	if err := s.persist(); err != nil {
		log.Errorf("%s Failed to persist settings: %v", logcolors.LogSettings, err)
	}
	return s.flags[name], nil
}

// Names returns the known flag names, sorted.
func (s *Settings) Names() []string {
	names := make([]string, 0, len(defaults))
	for k := range defaults {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Settings) persist() error {
	data, err := json.MarshalIndent(s.flags, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
