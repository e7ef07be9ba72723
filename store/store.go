// Package store persists per-user saved-item collections, one JSON document
// per resource kind. The on-disk shape is a top-level object keyed by owner
// ID whose values are arrays of {"<kind>": name, "<kind>_url": id} records.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/logcolors"
	"catalog-bot-go/resolver"
)

// SavedItem is one bookmarked resource. Name is the display name at save
// time; ID is the canonical catalog identifier. Items are never mutated.
type SavedItem struct {
	Name string
	ID   string
}

// Collection maps owner IDs to their ordered saved items. Insertion order is
// display order.
type Collection map[string][]SavedItem

// Store is the saved collection for a single resource kind.
type Store struct {
	kind resolver.Kind
	path string

	// Serializes load-modify-write cycles so two concurrent saves for the
	// same kind cannot drop each other's append.
	mu sync.Mutex
}

// New returns a store for the given kind rooted at dir. The backing file is
// created lazily on first save.
func New(dir string, kind resolver.Kind) *Store {
	return &Store{
		kind: kind,
		path: filepath.Join(dir, "saved"+kind.Plural()+".json"),
	}
}

// Kind returns the resource kind this store holds.
func (s *Store) Kind() resolver.Kind { return s.kind }

// Load reads the full collection from disk. A missing or malformed file is
// treated as an empty store; malformed content is logged, not fatal.
func (s *Store) Load() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Collection {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("%s Failed to read %s: %v", logcolors.LogStore, s.path, err)
		}
		return Collection{}
	}

	var raw map[string][]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warnf("%s Error decoding %s, check if the file is correctly formatted: %v", logcolors.LogStore, s.path, err)
		return Collection{}
	}

	nameKey := s.kind.Lower()
	urlKey := nameKey + "_url"

	coll := Collection{}
	for owner, entries := range raw {
		items := make([]SavedItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, SavedItem{Name: e[nameKey], ID: e[urlKey]})
		}
		coll[owner] = items
	}
	return coll
}

// Save overwrites the backing file with the given collection.
func (s *Store) Save(coll Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(coll)
}

func (s *Store) save(coll Collection) error {
	nameKey := s.kind.Lower()
	urlKey := nameKey + "_url"

	raw := make(map[string][]map[string]string, len(coll))
	for owner, items := range coll {
		entries := make([]map[string]string, 0, len(items))
		for _, it := range items {
			entries = append(entries, map[string]string{
				nameKey: it.Name,
				urlKey:  it.ID,
			})
		}
		raw[owner] = entries
	}

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Append adds an item to the owner's bucket unless an item with the same ID
// is already present. It returns a human-readable status and whether the item
// already existed, so callers can disable further save actions. I/O failures
// are logged and reported as a generic status, never as an error.
func (s *Store) Append(owner string, item SavedItem) (status string, already bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.load()
	for _, existing := range coll[owner] {
		if existing.ID == item.ID {
			return fmt.Sprintf("You have already saved the %s `%s`", s.kind.Lower(), item.Name), true
		}
	}

	coll[owner] = append(coll[owner], item)
	if err := s.save(coll); err != nil {
		log.Errorf("%s Error saving %s: %v", logcolors.LogStore, s.path, err)
		return fmt.Sprintf("Save command encountered an error, the %s was not saved", s.kind.Lower()), false
	}

	return fmt.Sprintf("Successfully saved %s `%s`", s.kind.Lower(), item.Name), false
}

// All flattens every owner's items into one display list, preserving
// per-owner insertion order.
func (s *Store) All() []SavedItem {
	coll := s.Load()
	var items []SavedItem
	for _, bucket := range coll {
		items = append(items, bucket...)
	}
	return items
}

// ForOwner returns the owner's saved items in insertion order.
func (s *Store) ForOwner(owner string) []SavedItem {
	return s.Load()[owner]
}

// Stores bundles one Store per saveable kind.
type Stores struct {
	byKind map[resolver.Kind]*Store
}

// NewStores creates stores for every kind that supports a saved collection.
func NewStores(dir string) *Stores {
	byKind := map[resolver.Kind]*Store{}
	for _, k := range []resolver.Kind{resolver.Artist, resolver.Track, resolver.Album, resolver.Playlist} {
		byKind[k] = New(dir, k)
	}
	return &Stores{byKind: byKind}
}

// For returns the store for the given kind, or nil when the kind has no
// saved collection (User).
func (s *Stores) For(kind resolver.Kind) *Store {
	return s.byKind[kind]
}
