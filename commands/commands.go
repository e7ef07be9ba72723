// Package commands registers every bot command against the dispatch
// registry. Handlers hold no state of their own; everything they need comes
// in through Deps and the per-invocation context.
package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog-bot-go/dispatch"
	"catalog-bot-go/nav"
	"catalog-bot-go/render"
	"catalog-bot-go/resolver"
	"catalog-bot-go/services/catalog"
	"catalog-bot-go/services/scraper"
	"catalog-bot-go/settings"
	"catalog-bot-go/stats"
	"catalog-bot-go/store"
	"catalog-bot-go/surface"
)

// Deps wires the command handlers to the rest of the process.
type Deps struct {
	Catalog       catalog.API
	Stores        *store.Stores
	Nav           *nav.Controller
	Settings      *settings.Settings
	Scraper       *scraper.Scraper
	PromptTimeout time.Duration
}

// Register installs every command into the registry.
func Register(reg *dispatch.Registry, deps *Deps) {
	reg.Register(&dispatch.Command{
		Name:        "ping",
		Description: "Check that the bot is alive.",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			return inv.Surface.Reply("Pong!")
		},
	})

	reg.Register(&dispatch.Command{
		Name:        "help",
		Description: "Show every command and what it does.",
		Handler:     helpHandler(reg),
	})

	reg.Register(&dispatch.Command{
		Name:        "list",
		Description: "List your saved artists, tracks, albums, or playlists.",
		Params: []dispatch.Param{
			{Name: dispatch.ParamCaller},
			{Name: "target"},
		},
		Handler: listHandler(deps),
	})

	reg.Register(&dispatch.Command{
		Name:        "get",
		Description: "Fetch and display an artist, track, album, playlist, or user.",
		Params: []dispatch.Param{
			{Name: dispatch.ParamCaller},
			{Name: dispatch.ParamAuthToken},
			{Name: dispatch.ParamSurface},
			{Name: "target"},
			{Name: "identifier"},
		},
		Handler: getHandler(deps),
	})

	reg.Register(&dispatch.Command{
		Name:        "save",
		Description: "Save an artist, track, album, or playlist to your collection.",
		Params: []dispatch.Param{
			{Name: dispatch.ParamCaller},
			{Name: dispatch.ParamAuthToken},
			{Name: "target"},
			{Name: "identifier"},
		},
		Handler: saveHandler(deps),
	})

	reg.Register(&dispatch.Command{
		Name:        "search",
		Description: "Search the catalog and pick a match to display.",
		Params: []dispatch.Param{
			{Name: dispatch.ParamCaller},
			{Name: dispatch.ParamAuthToken},
			{Name: dispatch.ParamSurface},
			{Name: "target"},
			{Name: "query", CatchAll: true},
		},
		Handler: searchHandler(deps),
	})

	reg.Register(&dispatch.Command{
		Name:        "toggle",
		Description: "Flip a runtime setting on or off.",
		Params: []dispatch.Param{
			{Name: "setting"},
		},
		Handler: toggleHandler(deps),
	})
}

func helpHandler(reg *dispatch.Registry) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		p := render.Page{
			Title:       "Commands",
			Description: "All commands start with " + dispatch.Prefix,
			Color:       render.ColorGreen,
		}
		for _, verb := range reg.Verbs() {
			cmd, _ := reg.Lookup(verb)
			p.Fields = append(p.Fields, render.Field{
				Name:  dispatch.Prefix + cmd.Name,
				Value: cmd.Description,
			})
		}
		_, err := inv.Surface.ReplyPage(p, staticControls())
		return err
	}
}

func listHandler(deps *Deps) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		kind, ok := resolver.KindFromTarget(inv.Arg("target"))
		if !ok {
			return inv.Surface.Reply(fmt.Sprintf("The parameter of the list function `%s` is invalid.", inv.Arg("target")))
		}

		st := deps.Stores.For(kind)
		if st == nil {
			return inv.Surface.Reply(fmt.Sprintf("There is no saved collection for %s.", kind.Plural()))
		}

		items := st.ForOwner(inv.Caller.ID)
		if len(items) == 0 {
			return inv.Surface.Reply(emptySavedReply(kind))
		}

		page := render.SavedListPage(attribution(inv), kind, items)
		_, err := inv.Surface.ReplyPage(page, staticControls())
		return err
	}
}

func toggleHandler(deps *Deps) dispatch.Handler {
	return func(ctx context.Context, inv *dispatch.Invocation) error {
		name := strings.ToLower(inv.Arg("setting"))
		enabled, err := deps.Settings.Toggle(name)
		if err != nil {
			return inv.Surface.Reply(fmt.Sprintf("Unknown setting `%s`. Available settings: %s",
				name, strings.Join(deps.Settings.Names(), ", ")))
		}

		state := "disabled"
		if enabled {
			state = "enabled"
		}
		return inv.Surface.Reply(fmt.Sprintf("Setting `%s` is now %s.", name, state))
	}
}

// attribution converts the invocation caller into the render footer.
func attribution(inv *dispatch.Invocation) render.Attribution {
	return render.Attribution{Name: inv.Caller.DisplayName, IconURL: inv.Caller.AvatarURL}
}

// staticControls is the control set for a single page with no affordances.
func staticControls() surface.Controls {
	return surface.Controls{}
}

func invalidTargetReply() string {
	return "The target parameter must be one of: artists, tracks, albums, playlists, users."
}

func emptySavedReply(kind resolver.Kind) string {
	return fmt.Sprintf("You have no saved %s. Save one with %ssave %s <id>",
		kind.Plural(), dispatch.Prefix, kind.Plural())
}

// article returns the indefinite article for a kind's lowercase name.
func article(kind resolver.Kind) string {
	switch kind {
	case resolver.Artist, resolver.Album:
		return "an"
	default:
		return "a"
	}
}

// fetchFailureReply maps non-success status codes to the user-facing reply.
// A uniform 400 means the identifier itself was rejected upstream; a leading
// 404 means it was well-formed but matched nothing.
func fetchFailureReply(kind resolver.Kind, codes ...int) string {
	all400 := true
	for _, code := range codes {
		if code != 400 {
			all400 = false
		}
	}
	if all400 {
		return fmt.Sprintf("Invalid %s URI.", kind.Lower())
	}
	if codes[0] == 404 {
		return fmt.Sprintf("Cannot find %s, check if you used %s %s id",
			kind.Lower(), article(kind), kind.Lower())
	}
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return "API Requests failed with status codes: " + strings.Join(parts, " & ")
}

// recordSave funnels a store append outcome into the counters.
func recordSave(already bool) {
	stats.Get().RecordSave(already)
}
