// Package surface abstracts the interactive reply channel a command runs
// against. Both the free-text and the structured command mediums implement
// Surface, so handlers and the navigation controller never see the
// difference.
package surface

import (
	"context"
	"errors"
	"time"

	"catalog-bot-go/render"
)

// ErrTimeout resolves an AwaitInput that received no matching follow-up in
// time.
var ErrTimeout = errors.New("timed out waiting for input")

// Medium identifies how a command arrived.
type Medium int

const (
	MediumText Medium = iota
	MediumStructured
)

func (m Medium) String() string {
	if m == MediumStructured {
		return "structured"
	}
	return "text"
}

// Caller identifies who invoked a command.
type Caller struct {
	ID          string
	DisplayName string
	AvatarURL   string
}

// Controls describes which navigation affordances are active on a rendered
// page. The front-end draws them; the controller updates them.
type Controls struct {
	Prev      bool `json:"prev"`
	Next      bool `json:"next"`
	Drilldown bool `json:"drilldown"`
	Save      bool `json:"save"`
}

// Handle is an outstanding interactive reply that can be edited in place.
type Handle interface {
	// Edit replaces the displayed page and control state. Editing an
	// expired surface returns the platform's error; callers drop it.
	Edit(page render.Page, controls Controls) error
}

// Surface is one command invocation's reply channel.
type Surface interface {
	// Reply sends a plain text reply.
	Reply(text string) error

	// ReplyPage sends a rendered page with navigation controls and returns
	// a handle for later edit-in-place updates.
	ReplyPage(page render.Page, controls Controls) (Handle, error)

	// Ack acknowledges an interaction that produced no visible change, to
	// keep the platform from reporting a timeout.
	Ack() error

	// AwaitInput blocks the calling flow (only) until the caller sends a
	// follow-up line, the timeout passes (ErrTimeout), or ctx is done.
	AwaitInput(ctx context.Context, timeout time.Duration) (string, error)

	Caller() Caller
	Medium() Medium
}
