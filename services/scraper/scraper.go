// Package scraper pulls figures off the public catalog web pages that the
// API never exposes: artist monthly listeners and per-track play counts. It
// drives a headless browser, so it is optional, feature-flagged, and guarded
// by a circuit breaker.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	log "github.com/sirupsen/logrus"

	"catalog-bot-go/circuitbreaker"
	"catalog-bot-go/logcolors"
	"catalog-bot-go/stats"
)

// NotAvailable is returned when a figure cannot be scraped; callers render it
// verbatim instead of failing the whole command.
const NotAvailable = "N/A"

const (
	webBase     = "https://open.spotify.com"
	pageTimeout = 10 * time.Second

	listenersSelector = `span:not([class])`
	playcountSelector = `span[data-testid="playcount"]`
)

// Scraper owns one lazily launched headless browser shared across lookups.
type Scraper struct {
	breaker *circuitbreaker.CircuitBreaker

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// New builds a scraper guarded by the given breaker. The browser is not
// launched until the first lookup.
func New(breaker *circuitbreaker.CircuitBreaker) *Scraper {
	return &Scraper{breaker: breaker}
}

// MonthlyListeners scrapes the monthly listener figure from an artist page.
func (s *Scraper) MonthlyListeners(ctx context.Context, artistID string) string {
	text := s.scrapeText(ctx, webBase+"/artist/"+artistID, listenersSelector, "monthly listeners")
	if text == NotAvailable {
		return text
	}
	// The element reads "1,234,567 monthly listeners"; keep the number.
	return strings.TrimSpace(strings.TrimSuffix(text, "monthly listeners"))
}

// TrackPlaycount scrapes the play count figure from a track page.
func (s *Scraper) TrackPlaycount(ctx context.Context, trackID string) string {
	return s.scrapeText(ctx, webBase+"/track/"+trackID, playcountSelector, "")
}

// scrapeText navigates to url and returns the text of the first element
// matching selector (and containing mustContain, when set). Every failure
// path returns NotAvailable.
func (s *Scraper) scrapeText(ctx context.Context, url, selector, mustContain string) string {
	if !s.breaker.Allow() {
		log.Warnf("%s Breaker open, skipping %s (retry in %v)", logcolors.LogScraper, url, s.breaker.TimeUntilRetry())
		return NotAvailable
	}

	text, err := s.fetch(ctx, url, selector, mustContain)
	if err != nil {
		s.breaker.RecordFailure()
		stats.Get().RecordScrape(true)
		log.Warnf("%s Scrape of %s failed: %v", logcolors.LogScraper, url, err)
		return NotAvailable
	}

	s.breaker.RecordSuccess()
	stats.Get().RecordScrape(false)
	return text
}

func (s *Scraper) fetch(ctx context.Context, url, selector, mustContain string) (string, error) {
	browser, err := s.connect()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	elements, err := page.Elements(selector)
	if err != nil {
		return "", fmt.Errorf("find elements: %w", err)
	}
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if mustContain != "" && !strings.Contains(text, mustContain) {
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("no element matched %q on %s", selector, url)
}

// connect launches the browser on first use and reuses it afterwards.
func (s *Scraper) connect() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	log.Infof("%s Headless browser launched", logcolors.LogScraper)
	s.launcher = l
	s.browser = browser
	return browser, nil
}

// Close shuts the browser down if it was ever launched.
func (s *Scraper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Warnf("%s Browser close failed: %v", logcolors.LogScraper, err)
		}
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
}
