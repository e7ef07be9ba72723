package commands

import (
	"context"
	"fmt"

	"catalog-bot-go/dispatch"
	"catalog-bot-go/render"
	"catalog-bot-go/resolver"
	"catalog-bot-go/store"
)

func saveHandler(deps *Deps) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		kind, ok := resolver.KindFromTarget(inv.Arg("target"))
		if !ok {
			return inv.Surface.Reply(invalidTargetReply())
		}
		if !resolver.SupportsSaved(kind) {
			return inv.Surface.Reply(fmt.Sprintf("There is no saved collection for %s.", kind.Plural()))
		}

		id, err := resolver.Resolve(inv.Arg("identifier"), kind)
		if err != nil {
			return err
		}
		if id == resolver.UseSaved {
			return inv.Surface.Reply(fmt.Sprintf("You cannot save from the saved list, pass %s %s id instead.",
				article(kind), kind.Lower()))
		}

		name, code := fetchName(ctx, deps, inv.Token, kind, id)
		if name == "" {
			return inv.Surface.Reply(fetchFailureReply(kind, code))
		}

		status, already := deps.Stores.For(kind).Append(inv.Caller.ID, store.SavedItem{Name: name, ID: id})
		recordSave(already)
		return inv.Surface.Reply(status)
	}
}

// fetchName validates that the resource exists and returns its display name.
func fetchName(ctx context.Context, deps *Deps, token string, kind resolver.Kind, id string) (string, int) {
	switch kind {
	case resolver.Artist:
		a, code := deps.Catalog.Artist(ctx, id, token)
		if a == nil {
			return "", code
		}
		return a.Name, code
	case resolver.Track:
		t, code := deps.Catalog.Track(ctx, id, token)
		if t == nil {
			return "", code
		}
		return t.Name, code
	case resolver.Album:
		al, code := deps.Catalog.Album(ctx, id, token)
		if al == nil {
			return "", code
		}
		return al.Name, code
	case resolver.Playlist:
		pl, code := deps.Catalog.Playlist(ctx, id, token)
		if pl == nil {
			return "", code
		}
		return pl.Name, code
	}
	return "", 400
}

func searchHandler(deps *Deps) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		kind, ok := resolver.KindFromTarget(inv.Arg("target"))
		if !ok || kind == resolver.User {
			return inv.Surface.Reply("The target parameter must be one of: artists, tracks, albums, playlists.")
		}
		query := inv.Arg("query")

		res, code := deps.Catalog.Search(ctx, query, kind.Lower(), inv.Token)
		if res == nil {
			return inv.Surface.Reply(fmt.Sprintf("Search failed with status code: %d", code))
		}

		page, items := render.SearchPage(attribution(inv), kind, query, res)
		if _, err := inv.Surface.ReplyPage(page, staticControls()); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
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
}
