package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		// Catalog API endpoints
		CatalogBaseURL string `envconfig:"CATALOG_BASE_URL" default:"https://api.spotify.com/v1"`
		CatalogAuthURL string `envconfig:"CATALOG_AUTH_URL" default:"https://accounts.spotify.com/api/token"`
		ClientID       string `envconfig:"CLIENT_ID" default:""`
		ClientSecret   string `envconfig:"CLIENT_SECRET" default:""`

		// Outbound catalog request limiting
		CatalogRateLimitPerSecond int `envconfig:"CATALOG_RATE_LIMIT_PER_SECOND" default:"8"`
		CatalogRateLimitBurst     int `envconfig:"CATALOG_RATE_LIMIT_BURST" default:"16"`

		// Gateway (structured command surface)
		RateLimitPerSecond  int    `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
		RateLimitBurstLimit int    `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"5"`
		CacheAccessToken    string `envconfig:"CACHE_ACCESS_TOKEN" default:""`

		// Token lifecycle
		TokenFilePath            string `envconfig:"TOKEN_FILE_PATH" default:"accesstoken.json"`
		TokenRefreshIntervalSecs int    `envconfig:"TOKEN_REFRESH_INTERVAL_SECS" default:"3590"`
		TokenExpiryGraceSecs     int    `envconfig:"TOKEN_EXPIRY_GRACE_SECS" default:"30"`

		// Persistence
		SavedDataDir     string `envconfig:"SAVED_DATA_DIR" default:"saved_data"`
		SettingsFilePath string `envconfig:"SETTINGS_FILE_PATH" default:"settings.json"`

		// Catalog response cache
		CacheDBPath           string `envconfig:"CACHE_DB_PATH" default:"data/catalog-cache.db"`
		CacheBackupPath       string `envconfig:"CACHE_BACKUP_PATH" default:"data/backups"`
		CatalogCacheTTLInSecs int    `envconfig:"CATALOG_CACHE_TTL_IN_SECONDS" default:"600"`

		// Follow-up input prompt
		PromptTimeoutMillis int `envconfig:"PROMPT_TIMEOUT_MILLIS" default:"7500"`

		// Scraper circuit breaker
		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"`
	}

	FeatureFlags struct {
		CacheCompression bool `envconfig:"FF_CACHE_COMPRESSION" default:"true"`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
