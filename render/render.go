package render

import (
	"fmt"
	"strings"

	"catalog-bot-go/resolver"
	"catalog-bot-go/services/catalog"
	"catalog-bot-go/store"
)

// Pagination limits per kind. The first page carries the primary record's own
// fields, so it takes a smaller slice than continuation pages.
const (
	playlistFirstPageTracks = 8
	playlistNextPageTracks  = 10
	albumFirstPageTracks    = 4
	albumNextPageTracks     = 6
)

// TracklistFunc resolves an album ID to its tracklist. Renderers call it for
// top-track pages whose album holds more than one track; returning false
// renders a "could not retrieve" placeholder instead.
type TracklistFunc func(albumID string) (*catalog.AlbumTracks, bool)

func artistNames(artists []catalog.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return joinArtists(names)
}

func firstImage(images []catalog.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// ArtistPage renders the primary artist information page.
func ArtistPage(at Attribution, artist *catalog.Artist) Page {
	footer, icon := at.footer()
	p := Page{
		Title:       artist.Name,
		Description: bannerDescription("Artist Information for " + artist.Name),
		Thumbnail:   firstImage(artist.Images),
		Color:       ColorGreen,
		Footer:      footer,
		FooterIcon:  icon,
	}
	p.Fields = append(p.Fields,
		Field{Name: "Spotify URL", Value: artist.ExternalURLs.Spotify},
		Field{Name: "Followers", Value: fmt.Sprintf("`%d`", artist.Followers.Total), Inline: true},
		Field{Name: "Popularity Index", Value: fmt.Sprintf("`%d`", artist.Popularity), Inline: true},
	)
	if len(artist.Genres) > 0 {
		p.Fields = append(p.Fields, Field{Name: "Genres", Value: "`" + strings.Join(artist.Genres, "\n") + "`", Inline: true})
	}
	p.Fields = append(p.Fields, Field{Name: "Full Spotify URI", Value: "`" + artist.URI + "`"})
	return p
}

// TopTrackPages renders one page per top track, each carrying its album's
// tracklist when available. The returned items are the drill-down entries.
func TopTrackPages(at Attribution, tops *catalog.TopTracks, tracklist TracklistFunc) (PageSequence, []Item) {
	footer, icon := at.footer()

	var pages PageSequence
	var items []Item
	for _, track := range tops.Tracks {
		album := track.Album

		// A single with the same title as its album renders without a
		// redundant track list.
		displayName := track.Name
		if album.Name == track.Name {
			displayName = ""
		}

		trackList := displayName
		title := album.Name
		if album.TotalTracks > 1 {
			title = album.Name + " (Album)"
			if tracklist != nil {
				if tracks, ok := tracklist(album.ID); ok {
					lines := make([]string, 0, len(tracks.Items))
					for _, t := range tracks.Items {
						lines = append(lines, fmt.Sprintf("%02d. %s", t.TrackNumber, t.Name))
					}
					trackList = strings.Join(lines, "\n")
				} else {
					trackList = "Could not retrieve track list."
				}
			} else {
				trackList = "Could not retrieve track list."
			}
		}

		p := Page{
			Title:      title,
			Thumbnail:  firstImage(album.Images),
			Color:      ColorBlue,
			Footer:     footer,
			FooterIcon: icon,
		}
		p.Fields = append(p.Fields,
			Field{Name: "Spotify URL", Value: track.ExternalURLs.Spotify},
			Field{Name: "Artist(s)", Value: "`" + artistNames(track.Artists) + "`"},
		)
		if trackList != "" {
			p.Fields = append(p.Fields, Field{Name: "Track List", Value: trackList})
		}
		p.Fields = append(p.Fields,
			Field{Name: "Duration", Value: "`" + FormatDuration(track.DurationMs) + "`", Inline: true},
			Field{Name: "Popularity", Value: fmt.Sprintf("`%d/100`", track.Popularity), Inline: true},
			Field{Name: "Release Date", Value: "`" + album.ReleaseDate + "`", Inline: true},
			Field{Name: "Spotify Album URI", Value: "`" + album.URI + "`"},
			Field{Name: "Spotify Track URI", Value: "`" + track.URI + "`"},
		)

		pages = append(pages, p)
		items = append(items, Item{Label: track.Name, ID: track.ID})
	}
	return pages, items
}

// TrackPages renders a track information page followed by its audio-feature
// analysis page.
func TrackPages(at Attribution, track *catalog.Track, feats *catalog.AudioFeatures) PageSequence {
	footer, icon := at.footer()

	p := Page{
		Title:       track.Name,
		Description: fmt.Sprintf("From: **%s** - `%s`", track.Album.Name, capitalize(track.Album.AlbumType)),
		Thumbnail:   firstImage(track.Album.Images),
		Color:       ColorBlue,
		Footer:      footer,
		FooterIcon:  icon,
	}
	p.Fields = append(p.Fields,
		Field{Name: "Spotify URL", Value: track.ExternalURLs.Spotify},
		Field{Name: "Artist(s)", Value: "`" + artistNames(track.Artists) + "`"},
		Field{Name: "Duration", Value: "`" + FormatDuration(track.DurationMs) + "`", Inline: true},
		Field{Name: "Popularity", Value: fmt.Sprintf("`%d/100`", track.Popularity), Inline: true},
		Field{Name: "Release Date", Value: "`" + track.Album.ReleaseDate + "`", Inline: true},
		Field{Name: "Spotify Track URI", Value: "`" + track.URI + "`"},
	)

	return PageSequence{p, audioFeaturesPage(at, track, feats)}
}

// audioFeaturesPage renders the append-only audio analysis page of a track.
func audioFeaturesPage(at Attribution, track *catalog.Track, feats *catalog.AudioFeatures) Page {
	footer, icon := at.footer()

	acousticness := FormatScore(feats.Acousticness)
	instrumentalness := FormatScore(feats.Instrumentalness)
	liveness := FormatScore(feats.Liveness)
	speechiness := FormatScore(feats.Speechiness)

	var notes []string
	if feats.Acousticness*100 > 50 {
		notes = append(notes, "Track is likely an acoustic version")
	} else {
		notes = append(notes, "Track is not an acoustic track")
	}
	if feats.Instrumentalness*100 > 50 {
		notes = append(notes, "Track is likely an instrumental/instrumental version")
	} else {
		notes = append(notes, "Track is likely to have lyrics")
	}
	if feats.Liveness*100 > 80 {
		notes = append(notes, "Track is likely played live")
	} else {
		notes = append(notes, "Track is likely recorded in a studio")
	}
	if feats.Speechiness*100 > 66 {
		notes = append(notes, "Track is likely pure spoken words")
	}

	p := Page{
		Title:       track.Name + "'s Audio Analysis",
		Description: fmt.Sprintf("From: %s - `%s`", track.Album.Name, capitalize(track.Album.AlbumType)),
		Thumbnail:   firstImage(track.Album.Images),
		Color:       ColorPink,
		Footer:      footer,
		FooterIcon:  icon,
	}
	p.Fields = append(p.Fields,
		Field{Name: "Loudness Level", Value: "`" + FormatLoudness(feats.Loudness) + " LUFS`", Inline: true},
		Field{Name: "Track Tempo", Value: "`" + FormatTempo(feats.Tempo) + " BPM`", Inline: true},
		Field{Name: "Time Signature", Value: fmt.Sprintf("`%d/4`", feats.TimeSignature), Inline: true},
		Field{Name: "Key Signature", Value: "`" + KeySignature(feats.Key, feats.Mode) + "`", Inline: true},
		Field{Name: "---------------------------------------", Value: ""},
		Field{Name: "Acousticness", Value: "`" + acousticness + "%`", Inline: true},
		Field{Name: "Danceability", Value: "`" + FormatScore(feats.Danceability) + "%`", Inline: true},
		Field{Name: "Energy", Value: "`" + FormatScore(feats.Energy) + "%`", Inline: true},
		Field{Name: "Instrumentalness", Value: "`" + instrumentalness + "%`", Inline: true},
		Field{Name: "Liveness", Value: "`" + liveness + "%`", Inline: true},
		Field{Name: "Speechiness", Value: "`" + speechiness + "%`", Inline: true},
		Field{Name: "Valence/Positivity", Value: "`" + FormatScore(feats.Valence) + "%`", Inline: true},
		Field{Name: "Notes", Value: strings.Join(notes, "\n")},
	)
	return p
}

// PlaylistPages renders a playlist across pages (8 tracks on the first page,
// 10 on continuations) plus the drill-down track list.
func PlaylistPages(at Attribution, pl *catalog.Playlist) (PageSequence, []Item) {
	footer, icon := at.footer()

	lines := make([]string, 0, len(pl.Tracks.Items))
	items := make([]Item, 0, len(pl.Tracks.Items))
	for _, entry := range pl.Tracks.Items {
		t := entry.Track
		lines = append(lines, fmt.Sprintf("**%s** by `%s` | [Link](%s)", t.Name, artistNames(t.Artists), t.ExternalURLs.Spotify))
		items = append(items, Item{Label: t.Name, ID: t.ID})
	}

	chunks := ChunkLines(lines, playlistFirstPageTracks, playlistNextPageTracks)

	first := Page{
		Title:       pl.Name,
		Description: fmt.Sprintf("Playlist by [%s](%s)", pl.Owner.DisplayName, pl.Owner.ExternalURLs.Spotify),
		Thumbnail:   firstImage(pl.Images),
		Color:       ColorOrange,
		Footer:      footer,
		FooterIcon:  icon,
	}
	collaborative := "No"
	if pl.Collaborative {
		collaborative = "Yes"
	}
	first.Fields = append(first.Fields,
		Field{Name: "Spotify URL", Value: pl.ExternalURLs.Spotify},
		Field{Name: "Followers", Value: fmt.Sprintf("`%d`", pl.Followers.Total), Inline: true},
		Field{Name: "Collaborative", Value: "`" + collaborative + "`", Inline: true},
	)
	if len(chunks) > 0 {
		first.Fields = append(first.Fields, Field{Name: "Tracks", Value: strings.Join(chunks[0], "\n")})
	}

	pages := PageSequence{first}
	for i := 1; i < len(chunks); i++ {
		p := Page{
			Title:       pl.Name + " (Continued)",
			Description: fmt.Sprintf("Track List Page %d", i+1),
			Thumbnail:   firstImage(pl.Images),
			Color:       ColorOrange,
			Footer:      footer,
			FooterIcon:  icon,
			Fields:      []Field{{Name: "Tracks List", Value: strings.Join(chunks[i], "\n")}},
		}
		pages = append(pages, p)
	}
	return pages, items
}

// AlbumPages renders an album across pages (4 tracks on the first page, 6 on
// continuations) plus the drill-down track list.
func AlbumPages(at Attribution, al *catalog.Album) (PageSequence, []Item) {
	footer, icon := at.footer()

	lines := make([]string, 0, len(al.Tracks.Items))
	items := make([]Item, 0, len(al.Tracks.Items))
	for _, t := range al.Tracks.Items {
		lines = append(lines, fmt.Sprintf("**%s** by `%s` | [Link](%s)\n*URI:* `%s`", t.Name, artistNames(t.Artists), t.ExternalURLs.Spotify, t.URI))
		items = append(items, Item{Label: t.Name, ID: t.ID})
	}

	chunks := ChunkLines(lines, albumFirstPageTracks, albumNextPageTracks)

	genres := "N/A"
	if len(al.Genres) > 0 {
		genres = strings.Join(al.Genres, ", ")
	}
	artistLink := ""
	if len(al.Artists) > 0 {
		artistLink = al.Artists[0].ExternalURLs.Spotify
	}

	first := Page{
		Title:       al.Name,
		Description: fmt.Sprintf("Album by [%s](%s)", artistNames(al.Artists), artistLink),
		Thumbnail:   firstImage(al.Images),
		Color:       ColorPurple,
		Footer:      footer,
		FooterIcon:  icon,
	}
	first.Fields = append(first.Fields,
		Field{Name: "Spotify URL", Value: al.ExternalURLs.Spotify},
		Field{Name: "Total Tracks", Value: fmt.Sprintf("`%d`", al.TotalTracks), Inline: true},
		Field{Name: "Release Date", Value: "`" + al.ReleaseDate + "`", Inline: true},
		Field{Name: "Genres", Value: "`" + genres + "`", Inline: true},
		Field{Name: "Popularity", Value: fmt.Sprintf("`%d/100`", al.Popularity), Inline: true},
	)
	if len(chunks) > 0 {
		first.Fields = append(first.Fields, Field{Name: "Tracks List", Value: strings.Join(chunks[0], "\n\n")})
	}

	pages := PageSequence{first}
	for i := 1; i < len(chunks); i++ {
		p := Page{
			Title:       al.Name + " (Continued)",
			Description: fmt.Sprintf("Track List Page %d", i+1),
			Thumbnail:   firstImage(al.Images),
			Color:       ColorPurple,
			Footer:      footer,
			FooterIcon:  icon,
			Fields:      []Field{{Name: "Tracks List", Value: strings.Join(chunks[i], "\n\n")}},
		}
		pages = append(pages, p)
	}
	return pages, items
}

// UserPage renders a public user profile.
func UserPage(at Attribution, u *catalog.User) Page {
	footer, icon := at.footer()

	name := u.DisplayName
	if name == "" {
		name = "Unknown User"
	}
	p := Page{
		Title:       name,
		Description: fmt.Sprintf("[Spotify Profile](%s)", u.ExternalURLs.Spotify),
		Thumbnail:   firstImage(u.Images),
		Color:       ColorGreen,
		Footer:      footer,
		FooterIcon:  icon,
	}
	p.Fields = append(p.Fields,
		Field{Name: "Followers", Value: fmt.Sprintf("`%d`", u.Followers.Total), Inline: true},
		Field{Name: "User ID", Value: "`" + u.ID + "`", Inline: true},
		Field{Name: "Spotify URI", Value: "`" + u.URI + "`"},
	)
	return p
}

// SavedListPage renders a numbered list of saved items for one kind.
func SavedListPage(at Attribution, kind resolver.Kind, items []store.SavedItem) Page {
	footer, icon := at.footer()

	p := Page{
		Title:       "Saved " + string(kind) + "s",
		Description: fmt.Sprintf("List of %s's presaved %s (use help to find out how to save %s)", at.Name, kind.Plural(), kind.Plural()),
		Color:       ColorGreen,
		Footer:      footer,
		FooterIcon:  icon,
	}
	for i, item := range items {
		p.Fields = append(p.Fields, Field{
			Name:  fmt.Sprintf("`%d` - %s", i+1, item.Name),
			Value: fmt.Sprintf("%s ID: `%s`", kind, item.ID),
		})
	}
	return p
}

// SearchPage renders search matches for one kind as a numbered list; the
// returned items allow selecting a match for a full fetch.
func SearchPage(at Attribution, kind resolver.Kind, query string, res *catalog.SearchResults) (Page, []Item) {
	footer, icon := at.footer()

	var items []Item
	switch kind {
	case resolver.Artist:
		if res.Artists != nil {
			for _, a := range res.Artists.Items {
				items = append(items, Item{Label: a.Name, ID: a.ID})
			}
		}
	case resolver.Track:
		if res.Tracks != nil {
			for _, t := range res.Tracks.Items {
				items = append(items, Item{Label: t.Name + " - " + artistNames(t.Artists), ID: t.ID})
			}
		}
	case resolver.Album:
		if res.Albums != nil {
			for _, a := range res.Albums.Items {
				items = append(items, Item{Label: a.Name + " - " + artistNames(a.Artists), ID: a.ID})
			}
		}
	case resolver.Playlist:
		if res.Playlists != nil {
			for _, pl := range res.Playlists.Items {
				items = append(items, Item{Label: pl.Name, ID: pl.ID})
			}
		}
	}

	p := Page{
		Title:       fmt.Sprintf("Search Results: %s", query),
		Description: fmt.Sprintf("Top %s matches for `%s`", kind.Lower(), query),
		Color:       ColorBlue,
		Footer:      footer,
		FooterIcon:  icon,
	}
	for i, item := range items {
		p.Fields = append(p.Fields, Field{
			Name:  fmt.Sprintf("`%d` - %s", i+1, item.Label),
			Value: fmt.Sprintf("%s ID: `%s`", kind, item.ID),
		})
	}
	if len(items) == 0 {
		p.Fields = append(p.Fields, Field{Name: "No matches", Value: "Try a different query"})
	}
	return p, items
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
