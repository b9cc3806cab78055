package alerts

import (
	"html/template"
	"strings"
	"sync"
)

var alertTemplate = template.Must(template.New("alert").Parse(
	`<div class="alert alert-{{.Category}} alert-dismissible fade show d-flex justify-content-between align-items-center shadow-sm mb-3 px-3" data-alert-id="{{.ID}}">` +
		`<p class="m-0 mr-4">{{.Message}}</p>` +
		`<button type="button" class="btn btn-transparent pr-0" data-dismiss="alert"><i data-feather="x"></i></button>` +
		`</div>`,
))

type alertView struct {
	ID       string
	Category string
	// Message is caller-supplied markup and is not escaped again.
	Message template.HTML
}

// Render returns the dismissible alert markup for n.
func Render(n Notification) (string, error) {
	var sb strings.Builder
	err := alertTemplate.Execute(&sb, alertView{
		ID:       n.ID,
		Category: n.Category,
		Message:  template.HTML(n.Message),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

type entry struct {
	id     string
	markup string
}

// MarkupContainer is an in-memory Container that renders to an HTML fragment.
// It is safe for concurrent use.
type MarkupContainer struct {
	selector string

	mu      sync.RWMutex
	entries []entry
}

// NewMarkupContainer returns an empty container addressed by selector, either
// "#id" or ".class". An empty selector means "#alerts".
func NewMarkupContainer(selector string) *MarkupContainer {
	if selector == "" {
		selector = "#alerts"
	}
	return &MarkupContainer{selector: selector}
}

func (c *MarkupContainer) Selector() string { return c.selector }

func (c *MarkupContainer) Append(id, markup string) {
	c.mu.Lock()
	c.entries = append(c.entries, entry{id: id, markup: markup})
	c.mu.Unlock()
}

func (c *MarkupContainer) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	c.mu.Lock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if _, ok := drop[e.id]; !ok {
			kept = append(kept, e)
		}
	}
	// Clear the tail so removed markup can be collected.
	for i := len(kept); i < len(c.entries); i++ {
		c.entries[i] = entry{}
	}
	c.entries = kept
	c.mu.Unlock()
}

func (c *MarkupContainer) Transform(fn func(markup string) string) {
	c.mu.Lock()
	for i := range c.entries {
		c.entries[i].markup = fn(c.entries[i].markup)
	}
	c.mu.Unlock()
}

// Len returns the number of rendered entries.
func (c *MarkupContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IDs returns the rendered notification ids in display order.
func (c *MarkupContainer) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.id
	}
	return ids
}

// HTML renders the container element with its entries.
func (c *MarkupContainer) HTML() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("<div ")
	sb.WriteString(c.selectorAttr())
	sb.WriteString(">")
	for _, e := range c.entries {
		sb.WriteString(e.markup)
		sb.WriteByte('\n')
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (c *MarkupContainer) selectorAttr() string {
	if name, ok := strings.CutPrefix(c.selector, "."); ok {
		return `class="` + template.HTMLEscapeString(name) + `"`
	}
	return `id="` + template.HTMLEscapeString(strings.TrimPrefix(c.selector, "#")) + `"`
}
