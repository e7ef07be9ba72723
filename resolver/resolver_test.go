package resolver

import (
	"errors"
	"testing"
)

func TestResolveBareID(t *testing.T) {
	id := "4Z8W4fKeB5YxbusRsdQVPb"

	got, err := Resolve(id, Artist)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != id {
		t.Errorf("Expected %q, got %q", id, got)
	}
}

func TestResolveUserIDLength(t *testing.T) {
	// User IDs are 28 characters, not 22.
	id := "31k5niydmxcsduypqxbb5jmhxoaa"

	got, err := Resolve(id, User)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != id {
		t.Errorf("Expected %q, got %q", id, got)
	}

	if _, err := Resolve(id, Artist); err == nil {
		t.Error("Expected a 28-char ID to be rejected for Artist")
	}
}

func TestResolveURI(t *testing.T) {
	got, err := Resolve("spotify:track:6rqhFgbbKwnb9MLmUQDhG6", Track)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "6rqhFgbbKwnb9MLmUQDhG6" {
		t.Errorf("Expected track ID, got %q", got)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		want  string
	}{
		{
			name:  "Plain URL",
			input: "https://open.spotify.com/artist/4Z8W4fKeB5YxbusRsdQVPb",
			kind:  Artist,
			want:  "4Z8W4fKeB5YxbusRsdQVPb",
		},
		{
			name:  "URL with query parameters",
			input: "https://open.spotify.com/album/2noRn2Aes5aoNVsU6iWThc?si=abc123",
			kind:  Album,
			want:  "2noRn2Aes5aoNVsU6iWThc",
		},
		{
			name:  "Scheme-less URL",
			input: "open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			kind:  Playlist,
			want:  "37i9dQZF1DXcBWIGoYBM5M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input, tt.kind)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveURLTooFewSegments(t *testing.T) {
	_, err := Resolve("https://open.spotify.com/artist", Artist)
	if err == nil {
		t.Fatal("Expected error for URL without an ID segment")
	}

	var invalid *InvalidIdentifierError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidIdentifierError, got %T", err)
	}
}

func TestResolveSavedKeyword(t *testing.T) {
	got, err := Resolve("saved", Album)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != UseSaved {
		t.Errorf("Expected the saved sentinel, got %q", got)
	}
}

func TestResolveSavedRejectedForUser(t *testing.T) {
	// Users have no saved collection, so "saved" is not an identifier.
	if _, err := Resolve("saved", User); err == nil {
		t.Error("Expected error resolving 'saved' for User")
	}
}

func TestResolveGarbage(t *testing.T) {
	_, err := Resolve("not-an-identifier", Track)
	if err == nil {
		t.Fatal("Expected error for garbage input")
	}

	want := "The Track parameter must be a valid Spotify Track URI, URL, or ID"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestKindFromTarget(t *testing.T) {
	tests := []struct {
		target string
		want   Kind
		ok     bool
	}{
		{"artists", Artist, true},
		{"Tracks", Track, true},
		{"albums", Album, true},
		{"playlists", Playlist, true},
		{"users", User, true},
		{"artist", "", false},
		{"songs", "", false},
	}

	for _, tt := range tests {
		got, ok := KindFromTarget(tt.target)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KindFromTarget(%q) = (%q, %v), want (%q, %v)", tt.target, got, ok, tt.want, tt.ok)
		}
	}
}
