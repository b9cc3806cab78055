// Package ajax provides the JSON client for the application's /ajax/
// operations and helpers to interpret and report their results.
package ajax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jamesprial/myfunds-ui/internal/config"
)

// Prefix is the path every operation is posted under.
const Prefix = "/ajax/"

// DefaultTimeout bounds a single call when the config leaves it unset.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

var validOperation = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Caller is the interface the MCP tools and page handlers depend on.
type Caller interface {
	Call(ctx context.Context, op string, params map[string]any) (*Response, error)
}

// Client posts JSON bodies to Origin + Prefix + operation.
type Client struct {
	httpClient *http.Client
	origin     string
	timeout    time.Duration
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// Compile-time interface check.
var _ Caller = (*Client)(nil)

// NewClient constructs a Client from cfg. cfg.Origin must be an absolute
// http(s) URL. cfg.BaseURL is accepted but ignored: calls always go to
// Prefix. A zero TimeoutMs means DefaultTimeout and a zero RatePerSec
// disables rate limiting.
func NewClient(cfg config.APIConfig, log zerolog.Logger) (*Client, error) {
	if cfg.Origin == "" {
		return nil, fmt.Errorf("ajax: origin is required")
	}
	u, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("ajax: parse origin: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("ajax: origin %q must be an absolute http(s) URL", cfg.Origin)
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if cfg.TimeoutMs <= 0 {
		timeout = DefaultTimeout
	}

	log = log.With().Str("comp", "ajax").Logger()
	if cfg.BaseURL != "" && strings.TrimRight(cfg.BaseURL, "/")+"/" != Prefix {
		log.Warn().Str("base_url", cfg.BaseURL).Str("prefix", Prefix).Msg("base_url is ignored")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		origin:     strings.TrimRight(u.Scheme+"://"+u.Host, "/"),
		timeout:    timeout,
		log:        log,
	}
	if cfg.RatePerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	}
	return c, nil
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// URL returns the absolute URL op is posted to.
func (c *Client) URL(op string) string { return c.origin + Prefix + op }

// Call posts params as JSON to the operation and decodes the JSON object it
// returns. A nil params map is sent as {}.
//
// Call returns ErrInvalidOperation for a malformed op and a *TransportError
// when the request times out, cannot be sent, gets a non-2xx status or the
// body is not a JSON object. A decoded response is returned as-is; whether
// it reports success is for IsSuccessResult or Interpret to decide.
func (c *Client) Call(ctx context.Context, op string, params map[string]any) (*Response, error) {
	if !validOperation.MatchString(op) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, op)
	}
	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("ajax %s: marshal params: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			kind := KindTimeout
			if errors.Is(err, context.Canceled) {
				kind = KindNetwork
			}
			return nil, &TransportError{Op: op, Kind: kind, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(op), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ajax %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		te := &TransportError{Op: op, Kind: classify(err), Err: err}
		c.log.Warn().Err(err).Str("op", op).Str("kind", string(te.Kind)).Dur("elapsed", time.Since(start)).Msg("ajax call failed")
		return nil, te
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Msg("ajax call failed")
		return nil, &TransportError{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Kind: classify(err), Err: err}
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &TransportError{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	if fields == nil {
		return nil, &TransportError{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: errors.New("response is not a JSON object")}
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("ajax call")
	return &Response{Op: op, Raw: raw, Fields: fields}, nil
}

// GetBalanceInfo calls the getBalanceInfo operation.
func (c *Client) GetBalanceInfo(ctx context.Context, params map[string]any) (*Response, error) {
	return c.Call(ctx, "getBalanceInfo", params)
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
