package ajax

import (
	"errors"
	"fmt"
)

// Notifier receives user-visible feedback. *alerts.Center satisfies it.
type Notifier interface {
	Add(message, category string)
}

// Notification categories used for feedback.
const (
	categoryDanger  = "danger"
	categoryWarning = "warning"
)

// ReportOutcome turns the result of a call into a notification: transport
// errors become "danger" alerts, application failures become "warning"
// alerts and successes add nothing. It reports whether a notification was
// added.
func ReportOutcome(n Notifier, outcome Outcome, err error) bool {
	if n == nil {
		return false
	}
	if err != nil {
		n.Add(transportMessage(err), categoryDanger)
		return true
	}
	f, ok := outcome.(ApplicationFailure)
	if !ok {
		return false
	}
	msg := f.Message
	if msg == "" {
		msg = "The request was not completed."
	}
	n.Add(msg, categoryWarning)
	return true
}

func transportMessage(err error) string {
	var te *TransportError
	if !errors.As(err, &te) {
		return "Request failed."
	}
	switch te.Kind {
	case KindTimeout:
		return "The server did not respond in time."
	case KindStatus:
		return fmt.Sprintf("The server returned an error (HTTP %d).", te.StatusCode)
	case KindDecode:
		return "The server returned an unreadable response."
	default:
		return "Could not reach the server."
	}
}
