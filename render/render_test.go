package render

import (
	"strings"
	"testing"

	"catalog-bot-go/resolver"
	"catalog-bot-go/services/catalog"
	"catalog-bot-go/store"
)

var testAttribution = Attribution{Name: "tester", IconURL: "https://example.com/a.png"}

func testPlaylist(n int) *catalog.Playlist {
	pl := &catalog.Playlist{
		Name: "Road Trip",
	}
	pl.Owner.DisplayName = "driver"
	for i := 0; i < n; i++ {
		var entry catalog.PlaylistTrack
		entry.Track.Name = "Track"
		entry.Track.ID = "id"
		pl.Tracks.Items = append(pl.Tracks.Items, entry)
	}
	return pl
}

func TestPlaylistPagination(t *testing.T) {
	pages, items := PlaylistPages(testAttribution, testPlaylist(25))

	// 8 on the first page, 10 per continuation: 25 -> 3 pages.
	if len(pages) != 3 {
		t.Fatalf("Expected 3 pages for 25 tracks, got %d", len(pages))
	}
	if len(items) != 25 {
		t.Errorf("Expected 25 drill-down items, got %d", len(items))
	}

	if pages[0].Title != "Road Trip" {
		t.Errorf("Unexpected first page title: %q", pages[0].Title)
	}
	if pages[1].Title != "Road Trip (Continued)" {
		t.Errorf("Unexpected continuation title: %q", pages[1].Title)
	}
	if pages[1].Description != "Track List Page 2" {
		t.Errorf("Unexpected continuation description: %q", pages[1].Description)
	}

	// First page track field holds 8 lines.
	var trackField *Field
	for i := range pages[0].Fields {
		if pages[0].Fields[i].Name == "Tracks" {
			trackField = &pages[0].Fields[i]
		}
	}
	if trackField == nil {
		t.Fatal("Expected a Tracks field on the first page")
	}
	if got := len(strings.Split(trackField.Value, "\n")); got != 8 {
		t.Errorf("Expected 8 tracks on page one, got %d", got)
	}
}

func TestPlaylistSinglePage(t *testing.T) {
	pages, _ := PlaylistPages(testAttribution, testPlaylist(5))
	if len(pages) != 1 {
		t.Errorf("Expected 1 page for 5 tracks, got %d", len(pages))
	}
}

func TestAlbumPagination(t *testing.T) {
	al := &catalog.Album{Name: "In Rainbows", TotalTracks: 10}
	for i := 0; i < 10; i++ {
		al.Tracks.Items = append(al.Tracks.Items, catalog.AlbumTrack{Name: "Track", ID: "id"})
	}

	pages, items := AlbumPages(testAttribution, al)

	// 4 on the first page, 6 per continuation: 10 -> 2 pages.
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages for 10 tracks, got %d", len(pages))
	}
	if len(items) != 10 {
		t.Errorf("Expected 10 drill-down items, got %d", len(items))
	}
}

func TestArtistPage(t *testing.T) {
	artist := &catalog.Artist{
		Name:       "Radiohead",
		Genres:     []string{"art rock"},
		Popularity: 82,
		URI:        "spotify:artist:4Z8W4fKeB5YxbusRsdQVPb",
	}
	artist.Followers.Total = 1000000

	p := ArtistPage(testAttribution, artist)

	if p.Title != "Radiohead" {
		t.Errorf("Unexpected title: %q", p.Title)
	}
	if !strings.Contains(p.Description, "Artist Information for Radiohead") {
		t.Errorf("Unexpected description: %q", p.Description)
	}
	if p.Footer != "Requested by tester" {
		t.Errorf("Unexpected footer: %q", p.Footer)
	}
}

func TestTopTrackPagesTracklistFallback(t *testing.T) {
	tops := &catalog.TopTracks{}
	var track catalog.Track
	track.Name = "Single"
	track.ID = "id1"
	track.Album.Name = "Some Album"
	track.Album.ID = "alb1"
	track.Album.TotalTracks = 12
	tops.Tracks = append(tops.Tracks, track)

	failing := func(albumID string) (*catalog.AlbumTracks, bool) { return nil, false }
	pages, items := TopTrackPages(testAttribution, tops, failing)

	if len(pages) != 1 || len(items) != 1 {
		t.Fatalf("Expected 1 page and 1 item, got %d and %d", len(pages), len(items))
	}
	if pages[0].Title != "Some Album (Album)" {
		t.Errorf("Unexpected title: %q", pages[0].Title)
	}

	found := false
	for _, f := range pages[0].Fields {
		if f.Name == "Track List" && f.Value == "Could not retrieve track list." {
			found = true
		}
	}
	if !found {
		t.Error("Expected the tracklist fallback field")
	}
}

func TestAudioFeatureNotes(t *testing.T) {
	track := &catalog.Track{Name: "Song"}
	feats := &catalog.AudioFeatures{
		Acousticness:     0.9,
		Instrumentalness: 0.1,
		Liveness:         0.2,
		Speechiness:      0.1,
	}

	pages := TrackPages(testAttribution, track, feats)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}

	var notes string
	for _, f := range pages[1].Fields {
		if f.Name == "Notes" {
			notes = f.Value
		}
	}
	if !strings.Contains(notes, "Track is likely an acoustic version") {
		t.Errorf("Expected acoustic note, got %q", notes)
	}
	if !strings.Contains(notes, "Track is likely to have lyrics") {
		t.Errorf("Expected lyrics note, got %q", notes)
	}
	if !strings.Contains(notes, "Track is likely recorded in a studio") {
		t.Errorf("Expected studio note, got %q", notes)
	}
	if strings.Contains(notes, "pure spoken words") {
		t.Errorf("Did not expect spoken-word note, got %q", notes)
	}
}

func TestSavedListPage(t *testing.T) {
	items := []store.SavedItem{
		{Name: "Radiohead", ID: "id1"},
		{Name: "Portishead", ID: "id2"},
	}

	p := SavedListPage(testAttribution, resolver.Artist, items)

	if len(p.Fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(p.Fields))
	}
	if p.Fields[0].Name != "`1` - Radiohead" {
		t.Errorf("Unexpected first field name: %q", p.Fields[0].Name)
	}
	if p.Fields[1].Name != "`2` - Portishead" {
		t.Errorf("Unexpected second field name: %q", p.Fields[1].Name)
	}
}

func TestSearchPageNoMatches(t *testing.T) {
	p, items := SearchPage(testAttribution, resolver.Track, "zzzz", &catalog.SearchResults{})

	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
	if len(p.Fields) != 1 || p.Fields[0].Name != "No matches" {
		t.Errorf("Expected the no-matches field, got %+v", p.Fields)
	}
}
