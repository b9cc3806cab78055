package ajax

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidOperation is returned by Call when the operation name is empty or
// contains characters outside [A-Za-z0-9_].
var ErrInvalidOperation = errors.New("ajax: invalid operation name")

// ErrorKind classifies a transport failure.
type ErrorKind string

const (
	KindTimeout ErrorKind = "timeout"
	KindNetwork ErrorKind = "network"
	KindStatus  ErrorKind = "status"
	KindDecode  ErrorKind = "decode"
)

// TransportError reports a call that did not produce a JSON response: the
// request timed out, could not be sent, got a non-2xx status, or returned a
// body that is not a JSON object.
type TransportError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("ajax %s: unexpected HTTP status %d", e.Op, e.StatusCode)
	case KindTimeout:
		return fmt.Sprintf("ajax %s: request timed out", e.Op)
	}
	if e.Err == nil {
		return fmt.Sprintf("ajax %s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("ajax %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Response is a decoded JSON object returned by an operation. The client
// does not retain it.
type Response struct {
	Op     string
	Raw    []byte
	Fields map[string]any
}

// Get returns the value at a gjson path inside the raw body.
func (r *Response) Get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Raw, path)
}

// IsSuccessResult reports whether resp carries result == "ok". Only the
// top-level result field is consulted and the value must be the JSON string
// "ok"; a nil response is not a success.
func IsSuccessResult(resp *Response) bool {
	if resp == nil {
		return false
	}
	res := resp.Get("result")
	return res.Type == gjson.String && res.Str == "ok"
}

// Outcome is the interpreted result of a completed call: either Success or
// an ApplicationFailure.
type Outcome interface {
	outcome()
}

// Success wraps a response whose result is "ok".
type Success struct {
	Response *Response
}

// ApplicationFailure wraps a response that arrived intact but whose result
// is not "ok".
type ApplicationFailure struct {
	// Message is the server-supplied message or error text, if any.
	Message string
	Details map[string]any
}

func (Success) outcome()            {}
func (ApplicationFailure) outcome() {}

// Interpret splits resp into Success or ApplicationFailure.
func Interpret(resp *Response) Outcome {
	if IsSuccessResult(resp) {
		return Success{Response: resp}
	}
	f := ApplicationFailure{}
	if resp == nil {
		return f
	}
	f.Details = resp.Fields
	for _, key := range []string{"message", "error"} {
		if v := resp.Get(key); v.Type == gjson.String && v.Str != "" {
			f.Message = v.Str
			break
		}
	}
	return f
}
