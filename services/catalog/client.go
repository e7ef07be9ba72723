// Package catalog is the request/response facade over the music catalog API.
// Every call returns a (data, status) pair: 200 yields decoded data, any
// other HTTP status yields (nil, status), and transport-level failures are
// reported as status 500. Nothing here panics or returns an error for an
// ordinary upstream failure.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"catalog-bot-go/cache"
	"catalog-bot-go/logcolors"
	"catalog-bot-go/stats"
)

// API is the facade surface the command layer depends on. Tests substitute a
// mock; production uses *Client.
type API interface {
	Artist(ctx context.Context, id, token string) (*Artist, int)
	ArtistTopTracks(ctx context.Context, id, token string) (*TopTracks, int)
	Track(ctx context.Context, id, token string) (*Track, int)
	TrackAudioFeatures(ctx context.Context, id, token string) (*AudioFeatures, int)
	Album(ctx context.Context, id, token string) (*Album, int)
	AlbumTracks(ctx context.Context, id, token string) (*AlbumTracks, int)
	Playlist(ctx context.Context, id, token string) (*Playlist, int)
	User(ctx context.Context, id, token string) (*User, int)
	Search(ctx context.Context, query, kind, token string) (*SearchResults, int)
}

// Client talks to the catalog REST API.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	cache    *cache.PersistentCache
	cacheTTL time.Duration
}

// Options configures a Client. Cache is optional; when set, successful GET
// bodies are cached for CacheTTL.
type Options struct {
	BaseURL           string
	RequestsPerSecond int
	Burst             int
	Cache             *cache.PersistentCache
	CacheTTL          time.Duration
	Timeout           time.Duration
}

// NewClient builds a catalog client.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 8
	}
	if opts.Burst <= 0 {
		opts.Burst = opts.RequestsPerSecond * 2
	}
	return &Client{
		baseURL:  opts.BaseURL,
		http:     &http.Client{Timeout: opts.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// get fetches path with the bearer token and decodes a 200 body into out.
// The returned int is the HTTP status; 500 stands in for transport errors.
func (c *Client) get(ctx context.Context, path, token string, out interface{}) int {
	cacheKey := "catalog:" + path
	if c.cache != nil {
		if body, ok := c.cache.Get(cacheKey); ok {
			if err := json.Unmarshal([]byte(body), out); err == nil {
				log.Debugf("%s Cache hit for %s", logcolors.LogCacheCatalog, path)
				stats.Get().RecordCacheHit()
				return http.StatusOK
			}
			c.cache.Delete(cacheKey)
		}
		stats.Get().RecordCacheMiss()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return http.StatusInternalServerError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		log.Errorf("%s Failed to build request for %s: %v", logcolors.LogCatalog, path, err)
		return http.StatusInternalServerError
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Errorf("%s Request to %s failed: %v", logcolors.LogCatalog, path, err)
		stats.Get().RecordCatalogRequest(http.StatusInternalServerError)
		return http.StatusInternalServerError
	}
	defer resp.Body.Close()

	stats.Get().RecordCatalogRequest(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		log.Debugf("%s %s returned status %d", logcolors.LogCatalog, path, resp.StatusCode)
		return resp.StatusCode
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("%s Failed to read response for %s: %v", logcolors.LogCatalog, path, err)
		return http.StatusInternalServerError
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Errorf("%s Failed to decode response for %s: %v", logcolors.LogCatalog, path, err)
		return http.StatusInternalServerError
	}

	if c.cache != nil {
		if err := c.cache.Set(cacheKey, string(body), c.cacheTTL); err != nil {
			log.Warnf("%s Failed to cache response for %s: %v", logcolors.LogCacheCatalog, path, err)
		}
	}

	return http.StatusOK
}

func (c *Client) Artist(ctx context.Context, id, token string) (*Artist, int) {
	var out Artist
	if code := c.get(ctx, "/artists/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) ArtistTopTracks(ctx context.Context, id, token string) (*TopTracks, int) {
	var out TopTracks
	if code := c.get(ctx, "/artists/"+id+"/top-tracks", token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) Track(ctx context.Context, id, token string) (*Track, int) {
	var out Track
	if code := c.get(ctx, "/tracks/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) TrackAudioFeatures(ctx context.Context, id, token string) (*AudioFeatures, int) {
	var out AudioFeatures
	if code := c.get(ctx, "/audio-features/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) Album(ctx context.Context, id, token string) (*Album, int) {
	var out Album
	if code := c.get(ctx, "/albums/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) AlbumTracks(ctx context.Context, id, token string) (*AlbumTracks, int) {
	var out AlbumTracks
	if code := c.get(ctx, "/albums/"+id+"/tracks", token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) Playlist(ctx context.Context, id, token string) (*Playlist, int) {
	var out Playlist
	if code := c.get(ctx, "/playlists/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

func (c *Client) User(ctx context.Context, id, token string) (*User, int) {
	var out User
	if code := c.get(ctx, "/users/"+id, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}

// Search runs a catalog search limited to one kind ("artist", "track",
// "album", "playlist").
func (c *Client) Search(ctx context.Context, query, kind, token string) (*SearchResults, int) {
	var out SearchResults
	path := fmt.Sprintf("/search?q=%s&type=%s&limit=10", url.QueryEscape(query), url.QueryEscape(kind))
	if code := c.get(ctx, path, token, &out); code != http.StatusOK {
		return nil, code
	}
	return &out, http.StatusOK
}
