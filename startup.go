package main

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/cache"
	"catalog-bot-go/circuitbreaker"
	"catalog-bot-go/commands"
	"catalog-bot-go/dispatch"
	"catalog-bot-go/logcolors"
	"catalog-bot-go/middleware"
	"catalog-bot-go/nav"
	"catalog-bot-go/services/catalog"
	"catalog-bot-go/services/scraper"
	"catalog-bot-go/settings"
	"catalog-bot-go/store"
)

// application bundles everything the HTTP handlers need.
type application struct {
	registry      *dispatch.Registry
	cache         *cache.PersistentCache
	tokens        *catalog.TokenManager
	scraper       *scraper.Scraper
	promptTimeout time.Duration
}

// newApplication wires the full process: cache, token lifecycle, stores,
// settings, scraper, catalog client, and the command registry.
func newApplication(ctx context.Context) (*application, error) {
	cfg := conf.Configuration

	persistentCache, err := cache.NewPersistentCache(cfg.CacheDBPath, cfg.CacheBackupPath, conf.FeatureFlags.CacheCompression)
	if err != nil {
		return nil, err
	}
	go sweepCache(ctx, persistentCache)

	tokens := catalog.NewTokenManager(catalog.TokenOptions{
		AuthURL:         cfg.CatalogAuthURL,
		ClientID:        cfg.ClientID,
		ClientSecret:    cfg.ClientSecret,
		FilePath:        cfg.TokenFilePath,
		ExpiryGrace:     time.Duration(cfg.TokenExpiryGraceSecs) * time.Second,
		RefreshInterval: time.Duration(cfg.TokenRefreshIntervalSecs) * time.Second,
	})
	if err := tokens.Start(ctx); err != nil {
		return nil, err
	}

	client := catalog.NewClient(catalog.Options{
		BaseURL:           cfg.CatalogBaseURL,
		RequestsPerSecond: cfg.CatalogRateLimitPerSecond,
		Burst:             cfg.CatalogRateLimitBurst,
		Cache:             persistentCache,
		CacheTTL:          time.Duration(cfg.CatalogCacheTTLInSecs) * time.Second,
	})

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:      "scraper",
		Threshold: cfg.CircuitBreakerThreshold,
		Cooldown:  time.Duration(cfg.CircuitBreakerCooldownSecs) * time.Second,
	})
	scr := scraper.New(breaker)

	promptTimeout := time.Duration(cfg.PromptTimeoutMillis) * time.Millisecond

	registry := dispatch.NewRegistry()
	registry.TokenSource = tokens.Current
	commands.Register(registry, &commands.Deps{
		Catalog:       client,
		Stores:        store.NewStores(cfg.SavedDataDir),
		Nav:           nav.NewController(),
		Settings:      settings.Load(cfg.SettingsFilePath),
		Scraper:       scr,
		PromptTimeout: promptTimeout,
	})

	return &application{
		registry:      registry,
		cache:         persistentCache,
		tokens:        tokens,
		scraper:       scr,
		promptTimeout: promptTimeout,
	}, nil
}

// sweepCache drops expired cache entries on a fixed interval.
func sweepCache(ctx context.Context, pc *cache.PersistentCache) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pc.Sweep()
		}
	}
}

// limitMiddleware applies the per-IP rate limit in front of the router.
func limitMiddleware(next http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.GetLimiter(r.RemoteAddr).Allow() {
			log.Warnf("%s IP %s exceeded rate limit", logcolors.LogRateLimit, r.RemoteAddr)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
