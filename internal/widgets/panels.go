package widgets

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownPanel is returned when toggling an id that was not registered.
var ErrUnknownPanel = errors.New("unknown panel")

// Panel is the display state of one toggled panel. Active belongs to the
// toggler button, Hidden to the target it controls.
type Panel struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Hidden bool   `json:"hidden"`
}

// PanelSet tracks display toggles. It is safe for concurrent use.
type PanelSet struct {
	mu     sync.Mutex
	order  []string
	panels map[string]*Panel
}

// NewPanelSet registers ids in order. Every panel starts hidden with an
// inactive toggler; duplicate and empty ids are skipped.
func NewPanelSet(ids ...string) *PanelSet {
	s := &PanelSet{panels: make(map[string]*Panel, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := s.panels[id]; dup {
			continue
		}
		s.order = append(s.order, id)
		s.panels[id] = &Panel{ID: id, Hidden: true}
	}
	return s
}

// Toggle flips the toggler's active flag and the panel's hidden flag
// together and returns the new state.
func (s *PanelSet) Toggle(id string) (Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panels[id]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	p.Active = !p.Active
	p.Hidden = !p.Hidden
	return *p, nil
}

// Get returns the state of one panel.
func (s *PanelSet) Get(id string) (Panel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.panels[id]
	if !ok {
		return Panel{}, false
	}
	return *p, true
}

// List returns every panel in registration order.
func (s *PanelSet) List() []Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Panel, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.panels[id])
	}
	return out
}
