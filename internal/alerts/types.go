// Package alerts manages transient, dismissible user-facing notifications
// rendered into a page container.
package alerts

import (
	"time"

	"github.com/jamesprial/myfunds-ui/internal/config"
)

// Common notification categories. The set is open: any string is accepted and
// only affects styling.
const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryWarning = "warning"
	CategoryDanger  = "danger"
)

// DefaultDismissDelay is the bulk sweep delay when none is configured.
const DefaultDismissDelay = 3 * time.Second

// Policy selects how auto-dismiss timers are armed.
type Policy string

const (
	// PolicyStartup arms a single bulk sweep at Initialize and nothing else;
	// later notifications stay until dismissed by hand.
	PolicyStartup Policy = config.PolicyStartup
	// PolicyRearm re-arms the bulk sweep every time a notification is added.
	// It is the default.
	PolicyRearm Policy = config.PolicyRearm
	// PolicyPerItem gives every added notification its own dismiss timer.
	PolicyPerItem Policy = config.PolicyPerItem
)

// Notification is a single visible message.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Options configures Center.Initialize.
type Options struct {
	AutoDismissDelay time.Duration
	Policy           Policy
}

// OptionsFromConfig converts the alerts section of the process config.
func OptionsFromConfig(cfg config.AlertsConfig) Options {
	return Options{
		AutoDismissDelay: time.Duration(cfg.AutoDismissDelayMs) * time.Millisecond,
		Policy:           Policy(cfg.Policy),
	}
}

func (o Options) withDefaults() Options {
	if o.AutoDismissDelay <= 0 {
		o.AutoDismissDelay = DefaultDismissDelay
	}
	switch o.Policy {
	case PolicyStartup, PolicyRearm, PolicyPerItem:
	default:
		o.Policy = PolicyRearm
	}
	return o
}

// Container is the externally owned element notifications are rendered into.
// Implementations must keep entries in append order.
type Container interface {
	Selector() string
	Append(id, markup string)
	Remove(ids ...string)
	// Transform replaces every entry's markup with fn(markup).
	Transform(fn func(markup string) string)
}
