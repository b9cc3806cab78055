package alerts

import (
	"html"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jamesprial/myfunds-ui/internal/icons"
	"github.com/jamesprial/myfunds-ui/internal/schedule"
)

// Center owns the set of visible notifications and their dismiss timers.
//
// All mutation happens under one lock, so notifications are rendered in the
// order Add was called even when timers fire on other goroutines. The visible
// set only grows through Add and only shrinks through dismissal.
type Center struct {
	log       zerolog.Logger
	container Container
	sched     schedule.Scheduler
	icons     icons.Replacer
	newID     func() string
	now       func() time.Time

	mu          sync.Mutex
	opts        Options
	initialized bool
	closed      bool
	visible     []Notification
	sweep       schedule.Handle
	// sweepGen identifies the current bulk sweep; a firing sweep whose
	// generation is stale has been superseded and does nothing.
	sweepGen   uint64
	itemTimers map[string]schedule.Handle
}

// NewCenter returns a Center rendering into container. A nil scheduler means
// schedule.Real(); a nil replacer disables icon substitution.
func NewCenter(container Container, sched schedule.Scheduler, replacer icons.Replacer, log zerolog.Logger) *Center {
	if container == nil {
		panic("alerts container must not be nil")
	}
	if sched == nil {
		sched = schedule.Real()
	}
	return &Center{
		log:        log.With().Str("comp", "alerts").Str("container", container.Selector()).Logger(),
		container:  container,
		sched:      sched,
		icons:      replacer,
		newID:      uuid.NewString,
		now:        time.Now,
		opts:       Options{}.withDefaults(),
		itemTimers: make(map[string]schedule.Handle),
	}
}

// Initialize applies opts, substitutes icons already present in the container
// and arms the startup sweep that closes every notification visible when it
// fires. Only the first call has an effect.
func (c *Center) Initialize(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || c.closed {
		return
	}
	c.initialized = true
	c.opts = opts.withDefaults()

	c.refreshIconsLocked()
	c.armSweepLocked()

	c.log.Debug().
		Str("policy", string(c.opts.Policy)).
		Dur("delay", c.opts.AutoDismissDelay).
		Msg("alerts initialized")
}

// Add renders a new notification at the end of the container. An empty
// category means CategoryInfo. Add after Teardown is ignored.
func (c *Center) Add(message, category string) {
	if category == "" {
		category = CategoryInfo
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.Warn().Str("category", category).Msg("alert added after teardown, ignored")
		return
	}

	n := Notification{
		ID:        c.newID(),
		Message:   message,
		Category:  category,
		CreatedAt: c.now(),
	}

	markup, err := Render(n)
	if err != nil {
		c.log.Error().Err(err).Str("id", n.ID).Msg("render alert")
		markup = `<div class="alert alert-danger" data-alert-id="` + html.EscapeString(n.ID) + `">` + html.EscapeString(message) + `</div>`
	}

	c.visible = append(c.visible, n)
	c.container.Append(n.ID, markup)
	c.refreshIconsLocked()

	switch c.opts.Policy {
	case PolicyRearm:
		c.armSweepLocked()
	case PolicyPerItem:
		c.armItemLocked(n.ID)
	}

	c.log.Debug().Str("id", n.ID).Str("category", category).Int("visible", len(c.visible)).Msg("alert added")
}

// Dismiss closes the notification with the given id. It reports whether the
// notification was visible.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissLocked(id)
}

// DismissAll closes every visible notification and returns how many were
// closed. Calling it on an empty set is a no-op.
func (c *Center) DismissAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissAllLocked()
}

// Visible returns a snapshot of the visible notifications in display order.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.visible))
	copy(out, c.visible)
	return out
}

// Len returns the number of visible notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.visible)
}

// Policy returns the active dismiss policy.
func (c *Center) Policy() Policy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.Policy
}

// Teardown cancels every pending timer. Timers that fire afterwards and later
// calls to Add are ignored. Visible notifications stay rendered.
func (c *Center) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.sweep != nil {
		c.sweep.Cancel()
		c.sweep = nil
	}
	for id, h := range c.itemTimers {
		h.Cancel()
		delete(c.itemTimers, id)
	}
	c.log.Debug().Int("visible", len(c.visible)).Msg("alerts torn down")
}

// armSweepLocked replaces any outstanding bulk sweep with a fresh one.
// The caller must hold c.mu.
func (c *Center) armSweepLocked() {
	if c.sweep != nil {
		c.sweep.Cancel()
	}
	c.sweepGen++
	gen := c.sweepGen
	c.sweep = c.sched.AfterFunc(c.opts.AutoDismissDelay, func() { c.fireSweep(gen) })
}

func (c *Center) fireSweep(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.sweepGen {
		return
	}
	c.sweep = nil
	if n := c.dismissAllLocked(); n > 0 {
		c.log.Debug().Int("dismissed", n).Msg("auto-dismiss sweep")
	}
}

// armItemLocked arms the per-notification timer for id. The caller must
// hold c.mu.
func (c *Center) armItemLocked(id string) {
	c.itemTimers[id] = c.sched.AfterFunc(c.opts.AutoDismissDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		delete(c.itemTimers, id)
		c.dismissLocked(id)
	})
}

func (c *Center) dismissLocked(id string) bool {
	idx := -1
	for i, n := range c.visible {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	c.visible = append(c.visible[:idx:idx], c.visible[idx+1:]...)
	c.container.Remove(id)
	c.cancelItemLocked(id)
	return true
}

func (c *Center) dismissAllLocked() int {
	n := len(c.visible)
	if n == 0 {
		return 0
	}
	ids := make([]string, n)
	for i, v := range c.visible {
		ids[i] = v.ID
		c.cancelItemLocked(v.ID)
	}
	c.visible = nil
	c.container.Remove(ids...)
	return n
}

func (c *Center) cancelItemLocked(id string) {
	if h, ok := c.itemTimers[id]; ok {
		h.Cancel()
		delete(c.itemTimers, id)
	}
}

// refreshIconsLocked rescans the container for icon placeholders. Failures
// keep the original markup.
func (c *Center) refreshIconsLocked() {
	if c.icons == nil {
		return
	}
	c.container.Transform(func(markup string) string {
		out, err := c.icons.Replace(markup)
		if err != nil {
			c.log.Warn().Err(err).Msg("icon replacement failed")
			return markup
		}
		return out
	})
}
