package ajax

import (
	"context"
)

// Pending is an in-flight call started by Go. It settles exactly once, at
// the latest when the client timeout elapses.
type Pending struct {
	done chan struct{}
	resp *Response
	err  error
}

// Go starts Call on a new goroutine and returns immediately.
func (c *Client) Go(ctx context.Context, op string, params map[string]any) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.resp, p.err = c.Call(ctx, op, params)
	}()
	return p
}

// Done is closed once the call has settled.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the call settles or ctx is done. Cancelling ctx stops the
// wait, not the call.
func (p *Pending) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the settled result. It must only be called after Done is
// closed.
func (p *Pending) Result() (*Response, error) {
	<-p.done
	return p.resp, p.err
}
