package surface

import (
	"context"
	"sync"
	"time"

	"catalog-bot-go/render"
)

// Buffer is a Surface that collects everything a command emits. The HTTP
// gateway uses it to turn one invocation into one JSON response; tests use it
// to observe replies.
type Buffer struct {
	caller Caller
	medium Medium

	mu      sync.Mutex
	Replies []string
	Pages   []PageReply
	Acks    int

	inputs chan string
}

// PageReply is a rendered page with its control state as sent.
type PageReply struct {
	Page     render.Page
	Controls Controls
}

// NewBuffer builds a buffered surface for the given caller and medium.
func NewBuffer(caller Caller, medium Medium) *Buffer {
	return &Buffer{
		caller: caller,
		medium: medium,
		inputs: make(chan string, 4),
	}
}

func (b *Buffer) Reply(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Replies = append(b.Replies, text)
	return nil
}

func (b *Buffer) ReplyPage(page render.Page, controls Controls) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Pages = append(b.Pages, PageReply{Page: page, Controls: controls})
	return &bufferHandle{buf: b, index: len(b.Pages) - 1}, nil
}

func (b *Buffer) Ack() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Acks++
	return nil
}

// PushInput queues a follow-up line for a pending AwaitInput.
func (b *Buffer) PushInput(line string) {
	b.inputs <- line
}

func (b *Buffer) AwaitInput(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line := <-b.inputs:
		return line, nil
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *Buffer) Caller() Caller { return b.caller }
func (b *Buffer) Medium() Medium { return b.medium }

// LastPage returns the most recently sent or edited page state.
func (b *Buffer) LastPage() (PageReply, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Pages) == 0 {
		return PageReply{}, false
	}
	return b.Pages[len(b.Pages)-1], true
}

type bufferHandle struct {
	buf   *Buffer
	index int
}

// Edit overwrites the recorded page in place, mirroring edit-in-place
// semantics on a real chat surface.
func (h *bufferHandle) Edit(page render.Page, controls Controls) error {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.Pages[h.index] = PageReply{Page: page, Controls: controls}
	return nil
}
