package dispatch

import (
	"context"
	"errors"
	"testing"

	"catalog-bot-go/resolver"
	"catalog-bot-go/surface"
)

func newTestSurface() *surface.Buffer {
	return surface.NewBuffer(surface.Caller{ID: "u1", DisplayName: "tester"}, surface.MediumText)
}

func echoRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(&Command{
		Name:   "echo",
		Params: []Param{{Name: "text", CatchAll: true}},
		Handler: func(ctx context.Context, inv *Invocation) error {
			return inv.Surface.Reply(inv.Arg("text"))
		},
	})
	return reg
}

func TestDispatchIgnoresUnprefixedLines(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	if err := reg.Dispatch(context.Background(), "hello there", s); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if len(s.Replies) != 0 {
		t.Errorf("Expected no replies for an unprefixed line, got %v", s.Replies)
	}
}

func TestDispatchBarePrefix(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	reg.Dispatch(context.Background(), "s!", s)

	if len(s.Replies) != 1 || s.Replies[0] != "Hello there. If you need help, run s!help" {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestDispatchUnknownVerb(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	reg.Dispatch(context.Background(), "s!bogus", s)

	if len(s.Replies) != 1 || s.Replies[0] != "The command you entered 'bogus' is invalid." {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestDispatchCatchAll(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	reg.Dispatch(context.Background(), "s!echo  hello   big world", s)

	if len(s.Replies) != 1 || s.Replies[0] != "hello big world" {
		t.Errorf("Expected tokens joined with single spaces, got %v", s.Replies)
	}
}

func TestDispatchMissingParameter(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	reg.Dispatch(context.Background(), "s!echo", s)

	if len(s.Replies) != 1 || s.Replies[0] != "The command 'echo' is missing a required parameter. See help for details." {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestDispatchCaseInsensitiveVerb(t *testing.T) {
	reg := echoRegistry()
	s := newTestSurface()

	reg.Dispatch(context.Background(), "s!ECHO hi", s)

	if len(s.Replies) != 1 || s.Replies[0] != "hi" {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestDispatchNamedArgs(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{
		Name:   "get",
		Params: []Param{{Name: "target"}, {Name: "identifier"}},
		Handler: func(ctx context.Context, inv *Invocation) error {
			return inv.Surface.Reply(inv.Arg("target") + "/" + inv.Arg("identifier"))
		},
	})

	s := newTestSurface()
	reg.DispatchNamed(context.Background(), "get", map[string]string{
		"target":     "artists",
		"identifier": "abc",
	}, s)

	if len(s.Replies) != 1 || s.Replies[0] != "artists/abc" {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestDispatchNamedMissingArg(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{
		Name:    "get",
		Params:  []Param{{Name: "target"}},
		Handler: func(ctx context.Context, inv *Invocation) error { return nil },
	})

	s := newTestSurface()
	reg.DispatchNamed(context.Background(), "get", map[string]string{}, s)

	if len(s.Replies) != 1 || s.Replies[0] != "The command 'get' is missing a required parameter. See help for details." {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestAmbientTokenInjection(t *testing.T) {
	reg := NewRegistry()
	reg.TokenSource = func() string { return "tok-123" }

	var seen string
	reg.Register(&Command{
		Name:   "whoami",
		Params: []Param{{Name: ParamCaller}, {Name: ParamAuthToken}},
		Handler: func(ctx context.Context, inv *Invocation) error {
			seen = inv.Token
			return inv.Surface.Reply(inv.Caller.ID)
		},
	})

	s := newTestSurface()
	reg.Dispatch(context.Background(), "s!whoami", s)

	if seen != "tok-123" {
		t.Errorf("Expected injected token, got %q", seen)
	}
	if len(s.Replies) != 1 || s.Replies[0] != "u1" {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestInvalidIdentifierSurfacesVerbatim(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{
		Name: "boom",
		Handler: func(ctx context.Context, inv *Invocation) error {
			return &resolver.InvalidIdentifierError{Kind: resolver.Artist, Input: "x"}
		},
	})

	s := newTestSurface()
	reg.Dispatch(context.Background(), "s!boom", s)

	want := "The Artist parameter must be a valid Spotify Artist URI, URL, or ID"
	if len(s.Replies) != 1 || s.Replies[0] != want {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}

func TestHandlerErrorBecomesGenericReply(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{
		Name: "boom",
		Handler: func(ctx context.Context, inv *Invocation) error {
			return errors.New("internal detail")
		},
	})

	s := newTestSurface()
	reg.Dispatch(context.Background(), "s!boom", s)

	if len(s.Replies) != 1 || s.Replies[0] != "The command 'boom' encountered an unexpected error." {
		t.Errorf("Unexpected replies: %v", s.Replies)
	}
}
