// Package stats keeps process-wide counters, exposed over the gateway's
// /stats endpoint.
package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds all counters with atomic access.
type Stats struct {
	StartTime time.Time

	// Command dispatch
	CommandsDispatched atomic.Int64
	UnknownCommands    atomic.Int64
	MissingParameters  atomic.Int64

	// Catalog facade
	CatalogRequests  atomic.Int64
	CatalogFailures  atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64

	// Collections
	ItemsSaved     atomic.Int64
	DuplicateSaves atomic.Int64

	// Navigation
	PageTransitions atomic.Int64

	// Scraper
	ScrapeRequests atomic.Int64
	ScrapeFailures atomic.Int64
}

var global = &Stats{StartTime: time.Now()}

// Get returns the global stats instance.
func Get() *Stats {
	return global
}

// RecordDispatch records one dispatched command.
func (s *Stats) RecordDispatch() { s.CommandsDispatched.Add(1) }

// RecordUnknownCommand records a verb that matched no handler.
func (s *Stats) RecordUnknownCommand() { s.UnknownCommands.Add(1) }

// RecordMissingParameter records a dispatch rejected for a missing parameter.
func (s *Stats) RecordMissingParameter() { s.MissingParameters.Add(1) }

// RecordCatalogRequest records one facade call and whether it failed.
func (s *Stats) RecordCatalogRequest(status int) {
	s.CatalogRequests.Add(1)
	if status != 200 {
		s.CatalogFailures.Add(1)
	}
}

// RecordCacheHit records a catalog cache hit.
func (s *Stats) RecordCacheHit() { s.CacheHits.Add(1) }

// RecordCacheMiss records a catalog cache miss.
func (s *Stats) RecordCacheMiss() { s.CacheMisses.Add(1) }

// RecordSave records a save outcome.
func (s *Stats) RecordSave(already bool) {
	if already {
		s.DuplicateSaves.Add(1)
	} else {
		s.ItemsSaved.Add(1)
	}
}

// RecordPageTransition records one navigation transition.
func (s *Stats) RecordPageTransition() { s.PageTransitions.Add(1) }

// RecordScrape records one scraper call and whether it failed.
func (s *Stats) RecordScrape(failed bool) {
	s.ScrapeRequests.Add(1)
	if failed {
		s.ScrapeFailures.Add(1)
	}
}

// Snapshot is the JSON shape served by /stats.
type Snapshot struct {
	UptimeSeconds      int64 `json:"uptime_seconds"`
	CommandsDispatched int64 `json:"commands_dispatched"`
	UnknownCommands    int64 `json:"unknown_commands"`
	MissingParameters  int64 `json:"missing_parameters"`
	CatalogRequests    int64 `json:"catalog_requests"`
	CatalogFailures    int64 `json:"catalog_failures"`
	CacheHits          int64 `json:"cache_hits"`
	CacheMisses        int64 `json:"cache_misses"`
	ItemsSaved         int64 `json:"items_saved"`
	DuplicateSaves     int64 `json:"duplicate_saves"`
	PageTransitions    int64 `json:"page_transitions"`
	ScrapeRequests     int64 `json:"scrape_requests"`
	ScrapeFailures     int64 `json:"scrape_failures"`
}

// Snapshot captures the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:      int64(time.Since(s.StartTime).Seconds()),
		CommandsDispatched: s.CommandsDispatched.Load(),
		UnknownCommands:    s.UnknownCommands.Load(),
		MissingParameters:  s.MissingParameters.Load(),
		CatalogRequests:    s.CatalogRequests.Load(),
		CatalogFailures:    s.CatalogFailures.Load(),
		CacheHits:          s.CacheHits.Load(),
		CacheMisses:        s.CacheMisses.Load(),
		ItemsSaved:         s.ItemsSaved.Load(),
		DuplicateSaves:     s.DuplicateSaves.Load(),
		PageTransitions:    s.PageTransitions.Load(),
		ScrapeRequests:     s.ScrapeRequests.Load(),
		ScrapeFailures:     s.ScrapeFailures.Load(),
	}
}
