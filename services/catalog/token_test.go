package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTokenManagerRequestsGrant(t *testing.T) {
	var gotGrantType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotGrantType = r.FormValue("grant_type")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fresh-token",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	tm := NewTokenManager(TokenOptions{
		AuthURL:      server.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		FilePath:     filepath.Join(t.TempDir(), "accesstoken.json"),
	})

	if err := tm.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if gotGrantType != "client_credentials" {
		t.Errorf("Expected client_credentials grant, got %q", gotGrantType)
	}
	if tm.Current() != "fresh-token" {
		t.Errorf("Expected the fresh token, got %q", tm.Current())
	}
	if !tm.ExpiresAt().After(time.Now()) {
		t.Error("Expected a future expiry")
	}
}

func TestTokenManagerReusesPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accesstoken.json")
	persisted := map[string]interface{}{
		"access_token": "persisted-token",
		"expires_at":   time.Now().Add(time.Hour).Unix(),
	}
	data, _ := json.Marshal(persisted)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to seed token file: %v", err)
	}

	// No server: reaching the auth endpoint would fail the test.
	tm := NewTokenManager(TokenOptions{
		AuthURL:  "http://127.0.0.1:0",
		FilePath: path,
	})

	if err := tm.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if tm.Current() != "persisted-token" {
		t.Errorf("Expected the persisted token, got %q", tm.Current())
	}
}

func TestTokenManagerIgnoresExpiredPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accesstoken.json")
	persisted := map[string]interface{}{
		"access_token": "stale-token",
		"expires_at":   time.Now().Add(-time.Hour).Unix(),
	}
	data, _ := json.Marshal(persisted)
	os.WriteFile(path, data, 0600)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fresh-token",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	tm := NewTokenManager(TokenOptions{AuthURL: server.URL, FilePath: path})

	if err := tm.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if tm.Current() != "fresh-token" {
		t.Errorf("Expected a fresh token over the stale one, got %q", tm.Current())
	}
}

func TestTokenManagerStartFailsWithoutEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	tm := NewTokenManager(TokenOptions{
		AuthURL:  server.URL,
		FilePath: filepath.Join(t.TempDir(), "accesstoken.json"),
	})

	if err := tm.Start(context.Background()); err == nil {
		t.Error("Expected Start to fail when the grant is rejected")
	}
}
