// Package nav owns the per-surface page cursors behind interactive results.
// State lives in one table keyed by surface ID and is only mutated through
// the transition methods, so no closure captures a cursor.
package nav

import (
	"fmt"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"catalog-bot-go/logcolors"
	"catalog-bot-go/render"
	"catalog-bot-go/stats"
	"catalog-bot-go/surface"
)

// SaveFunc persists the result behind a surface. It returns the
// human-readable status and whether the item already existed.
type SaveFunc func() (status string, already bool)

// DrilldownFunc spawns a follow-up selection from the side item list.
type DrilldownFunc func(items []render.Item) error

// State is the navigation state of one outstanding interactive result.
type State struct {
	seq       render.PageSequence
	drilldown []render.Item
	handle    surface.Handle
	page      int
	saveFn    SaveFunc
	saveDone  bool
	drillFn   DrilldownFunc
}

// Controller is the side table of navigation states.
type Controller struct {
	mu     sync.Mutex
	states map[uint64]*State
	nextID atomic.Uint64
}

// NewController builds an empty controller.
func NewController() *Controller {
	return &Controller{states: make(map[uint64]*State)}
}

// RegisterOptions carries the optional affordances of a new state.
type RegisterOptions struct {
	Drilldown []render.Item
	OnDrill   DrilldownFunc
	OnSave    SaveFunc
}

// Register creates a state for a freshly rendered sequence and returns its
// ID plus the initial control set (prev disabled; next disabled for a single
// page).
func (c *Controller) Register(seq render.PageSequence, handle surface.Handle, opts RegisterOptions) (uint64, surface.Controls) {
	id := c.nextID.Add(1)

	st := &State{
		seq:       seq,
		drilldown: opts.Drilldown,
		handle:    handle,
		saveFn:    opts.OnSave,
		drillFn:   opts.OnDrill,
	}

	c.mu.Lock()
	c.states[id] = st
	c.mu.Unlock()

	return id, controlsFor(st)
}

// Attach binds the reply handle once the first page has been sent. Register
// cannot take it directly because the initial control set has to be computed
// before the page goes out.
func (c *Controller) Attach(id uint64, handle surface.Handle) {
	c.mu.Lock()
	if st, ok := c.states[id]; ok {
		st.handle = handle
	}
	c.mu.Unlock()
}

func controlsFor(st *State) surface.Controls {
	return surface.Controls{
		Prev:      st.page > 0,
		Next:      st.page < len(st.seq)-1,
		Drilldown: len(st.drilldown) > 0,
		Save:      st.saveFn != nil && !st.saveDone,
	}
}

func (c *Controller) state(id uint64) (*State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[id]
	if !ok {
		return nil, fmt.Errorf("no navigation state for surface %d", id)
	}
	return st, nil
}

// Prev moves the cursor back one page. At the first page it is a no-op that
// still acknowledges the interaction.
func (c *Controller) Prev(id uint64, s surface.Surface) error {
	st, err := c.state(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if st.page > 0 {
		st.page--
		stats.Get().RecordPageTransition()
	}
	c.mu.Unlock()

	return c.redraw(st, s)
}

// Next moves the cursor forward one page; clamped at the last page.
func (c *Controller) Next(id uint64, s surface.Surface) error {
	st, err := c.state(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if st.page < len(st.seq)-1 {
		st.page++
		stats.Get().RecordPageTransition()
	}
	c.mu.Unlock()

	return c.redraw(st, s)
}

// Drilldown spawns a new selection surface from the side item list without
// moving the cursor.
func (c *Controller) Drilldown(id uint64, s surface.Surface) error {
	st, err := c.state(id)
	if err != nil {
		return err
	}

	if st.drillFn != nil && len(st.drilldown) > 0 {
		if err := st.drillFn(st.drilldown); err != nil {
			log.Warnf("%s Drilldown for surface %d failed: %v", logcolors.LogNav, id, err)
		}
	}
	return s.Ack()
}

// Save persists the result behind the surface. A successful or already-saved
// outcome permanently disables the save control for this surface; a fresh
// fetch and render is required to save again.
func (c *Controller) Save(id uint64, s surface.Surface) error {
	st, err := c.state(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	done := st.saveDone || st.saveFn == nil
	c.mu.Unlock()
	if done {
		return s.Ack()
	}

	status, _ := st.saveFn()

	c.mu.Lock()
	st.saveDone = true
	c.mu.Unlock()

	if err := s.Reply(status); err != nil {
		log.Warnf("%s Save reply for surface %d failed: %v", logcolors.LogNav, id, err)
	}
	return c.redraw(st, s)
}

// Page returns the current cursor position and total page count.
func (c *Controller) Page(id uint64) (current, total int, err error) {
	st, err := c.state(id)
	if err != nil {
		return 0, 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return st.page, len(st.seq), nil
}

// Controls returns the current control set for the surface.
func (c *Controller) Controls(id uint64) (surface.Controls, error) {
	st, err := c.state(id)
	if err != nil {
		return surface.Controls{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return controlsFor(st), nil
}

// Release drops the state for an expired surface.
func (c *Controller) Release(id uint64) {
	c.mu.Lock()
	delete(c.states, id)
	c.mu.Unlock()
}

// redraw re-renders the current page onto the owning handle and acks the
// triggering interaction. An edit failure (expired surface) is logged and
// dropped, never retried.
func (c *Controller) redraw(st *State, s surface.Surface) error {
	c.mu.Lock()
	page := st.seq[st.page]
	controls := controlsFor(st)
	handle := st.handle
	c.mu.Unlock()

	if handle == nil {
		return s.Ack()
	}
	if err := handle.Edit(page, controls); err != nil {
		log.Warnf("%s Edit-in-place failed, surface likely expired: %v", logcolors.LogNav, err)
	}
	return s.Ack()
}
