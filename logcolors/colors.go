package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"

	// Bright variants for more color variety
	BrightGreen   = "\033[92m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"

	Red       = "\033[31m"
	BrightRed = "\033[91m"
)

// Cache-related log prefixes
const (
	LogCacheInit    = Blue + "[Cache:Init]" + Reset
	LogCache        = Blue + "[Cache]" + Reset
	LogCacheBackup  = Blue + "[Cache:Backup]" + Reset
	LogCacheClear   = Blue + "[Cache:Clear]" + Reset
	LogCacheCatalog = Green + "[Cache:Catalog]" + Reset
)

// Dispatch and command log prefixes
const (
	LogDispatch = Purple + "[Dispatch]" + Reset
	LogCommand  = BrightMagenta + "[Command]" + Reset
	LogNav      = Cyan + "[Nav]" + Reset
)

// Storage log prefixes
const (
	LogStore    = Blue + "[Store]" + Reset
	LogSettings = Cyan + "[Settings]" + Reset
)

// Catalog service log prefixes
const (
	LogCatalog = Cyan + "[Catalog]" + Reset
	LogToken   = Cyan + "[Token]" + Reset
	LogScraper = Purple + "[Scraper]" + Reset
)

// Gateway log prefixes
const (
	LogServer    = Green + "[Server]" + Reset
	LogConfig    = Cyan + "[Config]" + Reset
	LogStats     = Blue + "[Stats]" + Reset
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}
