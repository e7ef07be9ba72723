package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/logcolors"
)

// persistedToken is the on-disk shape of accesstoken.json.
type persistedToken struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// tokenResponse is the client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenManager owns the process-wide catalog access token. Request handlers
// read the current value through Current; only the refresh loop writes.
type TokenManager struct {
	authURL      string
	clientID     string
	clientSecret string
	filePath     string
	grace        time.Duration
	interval     time.Duration
	http         *http.Client

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// TokenOptions configures a TokenManager.
type TokenOptions struct {
	AuthURL         string
	ClientID        string
	ClientSecret    string
	FilePath        string
	ExpiryGrace     time.Duration // reuse a persisted token only if this far from expiry
	RefreshInterval time.Duration
}

// NewTokenManager builds a manager; call Start to obtain the initial token
// and launch the refresh loop.
func NewTokenManager(opts TokenOptions) *TokenManager {
	if opts.ExpiryGrace == 0 {
		opts.ExpiryGrace = 30 * time.Second
	}
	if opts.RefreshInterval == 0 {
		opts.RefreshInterval = 3590 * time.Second
	}
	return &TokenManager{
		authURL:      opts.AuthURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		filePath:     opts.FilePath,
		grace:        opts.ExpiryGrace,
		interval:     opts.RefreshInterval,
		http:         &http.Client{Timeout: 15 * time.Second},
	}
}

// Current returns the current access token. Readers always see either the
// old or the new value, never a torn one.
func (tm *TokenManager) Current() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.token
}

// ExpiresAt returns when the current token expires.
func (tm *TokenManager) ExpiresAt() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.expiresAt
}

// Start obtains an initial token (reusing a persisted unexpired one when
// possible) and launches the periodic refresh goroutine. An error here means
// the process cannot reach readiness.
func (tm *TokenManager) Start(ctx context.Context) error {
	if err := tm.ensure(ctx); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(tm.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := tm.ensure(ctx); err != nil {
					log.Errorf("%s Periodic token refresh failed: %v", logcolors.LogToken, err)
				}
			}
		}
	}()

	return nil
}

// ensure makes the held token valid: reuse the in-memory one if fresh, fall
// back to the persisted file, and finally request a new grant.
func (tm *TokenManager) ensure(ctx context.Context) error {
	tm.mu.RLock()
	fresh := tm.token != "" && time.Now().Before(tm.expiresAt.Add(-tm.grace))
	tm.mu.RUnlock()
	if fresh {
		return nil
	}

	if token, expiresAt, ok := tm.loadPersisted(); ok {
		log.Infof("%s Passing on previously generated token, expires at %s", logcolors.LogToken, expiresAt.Format("02-01-06 15:04:05"))
		tm.store(token, expiresAt)
		return nil
	}

	log.Infof("%s No valid token available, requesting a new one from %s", logcolors.LogToken, tm.authURL)
	token, expiresAt, code, err := tm.requestGrant(ctx)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("token endpoint returned status %d", code)
	}

	tm.store(token, expiresAt)
	tm.persist(token, expiresAt)
	log.Infof("%s Token refreshed, expires at %s", logcolors.LogToken, expiresAt.Format(time.RFC3339))
	return nil
}

func (tm *TokenManager) store(token string, expiresAt time.Time) {
	tm.mu.Lock()
	tm.token = token
	tm.expiresAt = expiresAt
	tm.mu.Unlock()
}

// loadPersisted reads accesstoken.json and returns its token if it is still
// comfortably unexpired. Any problem just means "no persisted token".
func (tm *TokenManager) loadPersisted() (string, time.Time, bool) {
	data, err := os.ReadFile(tm.filePath)
	if err != nil {
		return "", time.Time{}, false
	}

	var saved persistedToken
	if err := json.Unmarshal(data, &saved); err != nil || saved.AccessToken == "" {
		return "", time.Time{}, false
	}

	expiresAt := time.Unix(saved.ExpiresAt, 0)
	if time.Now().After(expiresAt.Add(-tm.grace)) {
		return "", time.Time{}, false
	}
	return saved.AccessToken, expiresAt, true
}

func (tm *TokenManager) persist(token string, expiresAt time.Time) {
	data, err := json.Marshal(persistedToken{AccessToken: token, ExpiresAt: expiresAt.Unix()})
	if err == nil {
		err = os.WriteFile(tm.filePath, data, 0600)
	}
	if err != nil {
		log.Errorf("%s Error storing token: %v", logcolors.LogToken, err)
	}
}

// requestGrant performs the client-credentials grant.
func (tm *TokenManager) requestGrant(ctx context.Context) (string, time.Time, int, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", tm.clientID)
	form.Set("client_secret", tm.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.http.Do(req)
	if err != nil {
		return "", time.Time{}, http.StatusInternalServerError, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Errorf("%s Token request failed with status %d: %s", logcolors.LogToken, resp.StatusCode, string(body))
		return "", time.Time{}, resp.StatusCode, nil
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, http.StatusInternalServerError, err
	}

	return tr.AccessToken, time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second), http.StatusOK, nil
}
