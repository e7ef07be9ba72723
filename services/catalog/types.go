package catalog

// Shared fragments of catalog API payloads.

type Image struct {
	URL string `json:"url"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type Followers struct {
	Total int `json:"total"`
}

// SimpleArtist is the compact artist object embedded in tracks and albums.
type SimpleArtist struct {
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Artist is the full artist object.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	URI          string       `json:"uri"`
	Genres       []string     `json:"genres"`
	Popularity   int          `json:"popularity"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Album as embedded in a track payload.
type TrackAlbum struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"`
	URI          string       `json:"uri"`
	TotalTracks  int          `json:"total_tracks"`
	ReleaseDate  string       `json:"release_date"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Track is the full track object.
type Track struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	DurationMs   int            `json:"duration_ms"`
	Popularity   int            `json:"popularity"`
	Album        TrackAlbum     `json:"album"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
}

// TopTracks is the artist top-tracks response.
type TopTracks struct {
	Tracks []Track `json:"tracks"`
}

// AudioFeatures is the per-track audio analysis summary. Fractional scores
// are in the 0..1 range.
type AudioFeatures struct {
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`
	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
}

// AlbumTrack is one entry of an album tracklist.
type AlbumTrack struct {
	ID           string         `json:"id"`
	TrackNumber  int            `json:"track_number"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
}

// AlbumTracks is the album tracklist response.
type AlbumTracks struct {
	Items []AlbumTrack `json:"items"`
}

// Album is the full album object.
type Album struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	AlbumType    string         `json:"album_type"`
	URI          string         `json:"uri"`
	TotalTracks  int            `json:"total_tracks"`
	ReleaseDate  string         `json:"release_date"`
	Genres       []string       `json:"genres"`
	Popularity   int            `json:"popularity"`
	Images       []Image        `json:"images"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Tracks       AlbumTracks    `json:"tracks"`
}

// PlaylistTrack is one entry of a playlist, wrapping the underlying track.
type PlaylistTrack struct {
	Track Track `json:"track"`
}

// PlaylistTracks is the embedded tracks object of a playlist.
type PlaylistTracks struct {
	Items []PlaylistTrack `json:"items"`
}

// PlaylistOwner is the owning user of a playlist.
type PlaylistOwner struct {
	DisplayName  string       `json:"display_name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Playlist is the full playlist object.
type Playlist struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	URI           string         `json:"uri"`
	Collaborative bool           `json:"collaborative"`
	Followers     Followers      `json:"followers"`
	Owner         PlaylistOwner  `json:"owner"`
	Images        []Image        `json:"images"`
	ExternalURLs  ExternalURLs   `json:"external_urls"`
	Tracks        PlaylistTracks `json:"tracks"`
}

// User is the public user profile object.
type User struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	URI          string       `json:"uri"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// SearchResults is the combined search response; only the section matching
// the requested kind is populated.
type SearchResults struct {
	Artists   *ArtistPage   `json:"artists"`
	Tracks    *TrackPage    `json:"tracks"`
	Albums    *AlbumPage    `json:"albums"`
	Playlists *PlaylistPage `json:"playlists"`
}

type ArtistPage struct {
	Items []Artist `json:"items"`
}

type TrackPage struct {
	Items []Track `json:"items"`
}

type AlbumPage struct {
	Items []Album `json:"items"`
}

type PlaylistPage struct {
	Items []Playlist `json:"items"`
}
