package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/dispatch"
	"catalog-bot-go/logcolors"
	"catalog-bot-go/nav"
	"catalog-bot-go/render"
	"catalog-bot-go/resolver"
	"catalog-bot-go/services/catalog"
	"catalog-bot-go/settings"
	"catalog-bot-go/store"
	"catalog-bot-go/surface"
)

func getHandler(deps *Deps) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		kind, ok := resolver.KindFromTarget(inv.Arg("target"))
		if !ok {
			return inv.Surface.Reply(invalidTargetReply())
		}

		id, err := resolver.Resolve(inv.Arg("identifier"), kind)
		if err != nil {
			return err
		}

		if id == resolver.UseSaved {
			return showFromSaved(ctx, deps, inv, kind)
		}
		return show(ctx, deps, inv, kind, id)
	}
}

// showFromSaved lists the caller's saved items for the kind and waits for a
// numbered pick before displaying it.
func showFromSaved(ctx context.Context, deps *Deps, inv *dispatch.Invocation, kind resolver.Kind) error {
	st := deps.Stores.For(kind)
	if st == nil {
		return inv.Surface.Reply(fmt.Sprintf("There is no saved collection for %s.", kind.Plural()))
	}

	items := st.ForOwner(inv.Caller.ID)
	if len(items) == 0 {
		return inv.Surface.Reply(emptySavedReply(kind))
	}

	page := render.SavedListPage(attribution(inv), kind, items)
	if _, err := inv.Surface.ReplyPage(page, staticControls()); err != nil {
		return err
	}
	if err := inv.Surface.Reply(fmt.Sprintf("Enter the number of the %s you want to view", kind.Lower())); err != nil {
		return err
	}

	choice, err := awaitChoice(ctx, inv.Surface, deps.PromptTimeout, len(items))
	if err != nil {
		return inv.Surface.Reply("Sorry, you took too long to respond. Please try again.")
	}
	if choice < 0 {
		return inv.Surface.Reply("That is not a valid selection.")
	}
	return show(ctx, deps, inv, kind, items[choice].ID)
}

// awaitChoice reads one follow-up line and parses it as a 1-based index.
// It returns -1 for unparseable or out-of-range input; timeouts and context
// cancellation surface as the error.
func awaitChoice(ctx context.Context, s surface.Surface, timeout time.Duration, n int) (int, error) {
	line, err := s.AwaitInput(ctx, timeout)
	if err != nil {
		return -1, err
	}
	idx, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || idx < 1 || idx > n {
		return -1, nil
	}
	return idx - 1, nil
}

// show fetches one resource and replies with its rendered page sequence
// wired into the navigation controller.
func show(ctx context.Context, deps *Deps, inv *dispatch.Invocation, kind resolver.Kind, id string) error {
	switch kind {
	case resolver.Artist:
		return showArtist(ctx, deps, inv, id)
	case resolver.Track:
		return showTrack(ctx, deps, inv, id)
	case resolver.Album:
		return showAlbum(ctx, deps, inv, id)
	case resolver.Playlist:
		return showPlaylist(ctx, deps, inv, id)
	case resolver.User:
		return showUser(ctx, deps, inv, id)
	}
	return inv.Surface.Reply(invalidTargetReply())
}

func showArtist(ctx context.Context, deps *Deps, inv *dispatch.Invocation, id string) error {
	artist, code := deps.Catalog.Artist(ctx, id, inv.Token)
	tops, topsCode := deps.Catalog.ArtistTopTracks(ctx, id, inv.Token)
	if artist == nil {
		return inv.Surface.Reply(fetchFailureReply(resolver.Artist, code, topsCode))
	}

	main := render.ArtistPage(attribution(inv), artist)
	if deps.Settings.Enabled(settings.FlagScraping) && deps.Scraper != nil {
		main.Fields = append(main.Fields, render.Field{
			Name:   "Monthly Listeners",
			Value:  "`" + deps.Scraper.MonthlyListeners(ctx, id) + "`",
			Inline: true,
		})
	}

	// A failed top-tracks fetch degrades to the artist page alone rather
	// than failing the whole command.
	seq := render.PageSequence{main}
	var items []render.Item
	if tops != nil {
		tracklist := func(albumID string) (*catalog.AlbumTracks, bool) {
			tracks, c := deps.Catalog.AlbumTracks(ctx, albumID, inv.Token)
			return tracks, c == 200
		}
		var topPages render.PageSequence
		topPages, items = render.TopTrackPages(attribution(inv), tops, tracklist)
		seq = append(seq, topPages...)
	} else if err := inv.Surface.Reply("Could you not fetch for track data, only artist data will be displayed"); err != nil {
		return err
	}

	return replySequence(deps, inv, seq, nav.RegisterOptions{
		Drilldown: items,
		OnDrill:   trackPicker(ctx, deps, inv),
		OnSave:    saveFunc(deps, inv, resolver.Artist, store.SavedItem{Name: artist.Name, ID: artist.ID}),
	})
}

func showTrack(ctx context.Context, deps *Deps, inv *dispatch.Invocation, id string) error {
	track, code := deps.Catalog.Track(ctx, id, inv.Token)
	feats, featsCode := deps.Catalog.TrackAudioFeatures(ctx, id, inv.Token)
	if track == nil || feats == nil {
		return inv.Surface.Reply(fetchFailureReply(resolver.Track, code, featsCode))
	}

	seq := render.TrackPages(attribution(inv), track, feats)
	if deps.Settings.Enabled(settings.FlagScraping) && deps.Scraper != nil {
		seq[0].Fields = append(seq[0].Fields, render.Field{
			Name:   "Play Count",
			Value:  "`" + deps.Scraper.TrackPlaycount(ctx, id) + "`",
			Inline: true,
		})
	}

	return replySequence(deps, inv, seq, nav.RegisterOptions{
		OnSave: saveFunc(deps, inv, resolver.Track, store.SavedItem{Name: track.Name, ID: track.ID}),
	})
}

func showAlbum(ctx context.Context, deps *Deps, inv *dispatch.Invocation, id string) error {
	album, code := deps.Catalog.Album(ctx, id, inv.Token)
	if album == nil {
		return inv.Surface.Reply(fetchFailureReply(resolver.Album, code))
	}

	seq, items := render.AlbumPages(attribution(inv), album)
	return replySequence(deps, inv, seq, nav.RegisterOptions{
		Drilldown: items,
		OnDrill:   trackPicker(ctx, deps, inv),
		OnSave:    saveFunc(deps, inv, resolver.Album, store.SavedItem{Name: album.Name, ID: album.ID}),
	})
}

func showPlaylist(ctx context.Context, deps *Deps, inv *dispatch.Invocation, id string) error {
	pl, code := deps.Catalog.Playlist(ctx, id, inv.Token)
	if pl == nil {
		return inv.Surface.Reply(fetchFailureReply(resolver.Playlist, code))
	}

	seq, items := render.PlaylistPages(attribution(inv), pl)
	return replySequence(deps, inv, seq, nav.RegisterOptions{
		Drilldown: items,
		OnDrill:   trackPicker(ctx, deps, inv),
		OnSave:    saveFunc(deps, inv, resolver.Playlist, store.SavedItem{Name: pl.Name, ID: pl.ID}),
	})
}

func showUser(ctx context.Context, deps *Deps, inv *dispatch.Invocation, id string) error {
	u, code := deps.Catalog.User(ctx, id, inv.Token)
	if u == nil {
		return inv.Surface.Reply(fetchFailureReply(resolver.User, code))
	}

	page := render.UserPage(attribution(inv), u)
	return replySequence(deps, inv, render.PageSequence{page}, nav.RegisterOptions{})
}

// replySequence sends the first page of a sequence and registers the whole
// sequence with the navigation controller so later interactions can walk it.
func replySequence(deps *Deps, inv *dispatch.Invocation, seq render.PageSequence, opts nav.RegisterOptions) error {
	if len(seq) == 0 {
		return nil
	}

	// Register with a placeholder handle first so the initial control set is
	// known when the page goes out.
	id, controls := deps.Nav.Register(seq, nil, opts)
	handle, err := inv.Surface.ReplyPage(seq[0], controls)
	if err != nil {
		deps.Nav.Release(id)
		return err
	}
	deps.Nav.Attach(id, handle)
	return nil
}

// trackPicker builds the drill-down flow: prompt for a number out of the
// side item list, then display the chosen track in full.
func trackPicker(ctx context.Context, deps *Deps, inv *dispatch.Invocation) nav.DrilldownFunc {
	return func(items []render.Item) error {
		if err := inv.Surface.Reply("Enter the number of the track you want to view"); err != nil {
			return err
		}

		choice, err := awaitChoice(ctx, inv.Surface, deps.PromptTimeout, len(items))
		if err != nil {
			return inv.Surface.Reply("Sorry, you took too long to respond. Please try again.")
		}
		if choice < 0 {
			return inv.Surface.Reply("That is not a valid selection.")
		}

		log.Debugf("%s %s drilled into track %s", logcolors.LogCommand, inv.Caller.ID, items[choice].ID)
		return showTrack(ctx, deps, inv, items[choice].ID)
	}
}

// saveFunc adapts a store append into the navigation controller's save hook.
func saveFunc(deps *Deps, inv *dispatch.Invocation, kind resolver.Kind, item store.SavedItem) nav.SaveFunc {
	st := deps.Stores.For(kind)
	if st == nil {
		return nil
	}
	return func() (string, bool) {
		status, already := st.Append(inv.Caller.ID, item)
		recordSave(already)
		return status, already
	}
}
