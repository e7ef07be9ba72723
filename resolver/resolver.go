// Package resolver normalizes user-supplied catalog identifiers (bare IDs,
// URIs, web URLs, or the "saved" keyword) into canonical resource IDs.
package resolver

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind is one of the catalog's resource kinds.
type Kind string

const (
	Artist   Kind = "Artist"
	Track    Kind = "Track"
	Album    Kind = "Album"
	Playlist Kind = "Playlist"
	User     Kind = "User"
)

// UseSaved is returned in place of a canonical ID when the caller should
// branch into saved-item selection instead of a direct fetch.
const UseSaved = "use_saved"

const webHost = "open.spotify.com"

// idLengths maps each kind to the exact length of its bare catalog ID.
var idLengths = map[Kind]int{
	Artist:   22,
	Track:    22,
	Album:    22,
	Playlist: 22,
	User:     28,
}

// savedKinds are the kinds that support a saved collection.
var savedKinds = map[Kind]bool{
	Artist:   true,
	Track:    true,
	Album:    true,
	Playlist: true,
}

// InvalidIdentifierError reports input that matches none of the accepted
// identifier shapes. Its message is surfaced to the user verbatim.
type InvalidIdentifierError struct {
	Kind  Kind
	Input string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("The %s parameter must be a valid Spotify %s URI, URL, or ID", e.Kind, e.Kind)
}

// Plural returns the lowercase plural command token for the kind ("artists").
func (k Kind) Plural() string {
	return strings.ToLower(string(k)) + "s"
}

// Lower returns the lowercase kind token used in URIs and storage keys.
func (k Kind) Lower() string {
	return strings.ToLower(string(k))
}

// KindFromTarget maps a command target token ("artists", "tracks", ...) to a
// Kind. The second return is false for unknown targets.
func KindFromTarget(target string) (Kind, bool) {
	switch strings.ToLower(target) {
	case "artists":
		return Artist, true
	case "tracks":
		return Track, true
	case "albums":
		return Album, true
	case "playlists":
		return Playlist, true
	case "users":
		return User, true
	}
	return "", false
}

// SupportsSaved reports whether the kind has a saved collection.
func SupportsSaved(k Kind) bool {
	return savedKinds[k]
}

// Resolve normalizes raw user input into a canonical catalog ID for the given
// kind. Accepted shapes, checked in order: bare ID, URI form
// "spotify:<kind>:<id>", web URL, and the literal keyword "saved" (which
// yields the UseSaved sentinel for kinds that support saved collections).
// Anything else fails with *InvalidIdentifierError.
func Resolve(raw string, kind Kind) (string, error) {
	if isBareID(raw, kind) {
		return raw, nil
	}

	uriPrefix := "spotify:" + kind.Lower() + ":"
	if idx := strings.Index(raw, uriPrefix); idx >= 0 {
		parts := strings.Split(raw, ":")
		return parts[len(parts)-1], nil
	}

	if strings.Contains(raw, webHost) {
		return idFromURL(raw, kind)
	}

	if raw == "saved" && savedKinds[kind] {
		return UseSaved, nil
	}

	return "", &InvalidIdentifierError{Kind: kind, Input: raw}
}

func isBareID(s string, kind Kind) bool {
	if len(s) != idLengths[kind] {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}

// idFromURL extracts the third path segment of a catalog web URL, e.g.
// https://open.spotify.com/artist/<id>?si=... -> <id>.
func idFromURL(raw string, kind Kind) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Kind: kind, Input: raw}
	}
	segments := strings.Split(u.Path, "/")
	if len(segments) < 3 || segments[2] == "" {
		return "", &InvalidIdentifierError{Kind: kind, Input: raw}
	}
	return segments[2], nil
}
