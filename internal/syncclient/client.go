package syncclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/archmap/internal/report"
)

var (
	// ErrUnexpectedStatus is returned when the server answers with a status
	// the client does not expect.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrRejected is returned by Submit when the server refuses the payload.
	ErrRejected = errors.New("report rejected")
)

// Status describes the notification channel.
type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusLive
	StatusPolling
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusLive:
		return "live"
	case StatusPolling:
		return "polling"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for report requests.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithDialer sets the websocket dialer used for the subscription.
func WithDialer(d *websocket.Dialer) Option { return func(c *Client) { c.dialer = d } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// WithPolling sets how often the report is polled while the subscription
// is down, and for how long polling lasts before the subscription is tried
// again.
func WithPolling(interval, window time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.fallbackWindow = window
	}
}

// WithRequestTimeout bounds each report request.
func WithRequestTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// Client keeps a local copy of the server's latest report in sync.
type Client struct {
	base           *url.URL
	http           *http.Client
	dialer         *websocket.Dialer
	logger         *log.Logger
	pollInterval   time.Duration
	fallbackWindow time.Duration
	timeout        time.Duration

	mu        sync.Mutex
	current   *report.Report
	status    Status
	listeners []func(*report.Report)
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:           u,
		http:           http.DefaultClient,
		dialer:         websocket.DefaultDialer,
		logger:         log.Default(),
		pollInterval:   3 * time.Second,
		fallbackWindow: 30 * time.Second,
		timeout:        10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 3 * time.Second
	}
	if c.fallbackWindow < c.pollInterval {
		c.fallbackWindow = c.pollInterval
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	return c, nil
}

// Report returns the local copy, or nil.
func (c *Client) Report() *report.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Status returns the state of the notification channel.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// OnChange registers fn to be called with the new local copy every time it
// is replaced. fn runs on the goroutine that made the change.
func (c *Client) OnChange(fn func(*report.Report)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// replace swaps the local copy and notifies listeners. With onlyIfChanged
// an equal report is dropped.
func (c *Client) replace(r *report.Report, onlyIfChanged bool) bool {
	c.mu.Lock()
	if onlyIfChanged && report.Equal(c.current, r) {
		c.mu.Unlock()
		return false
	}
	c.current = r
	listeners := append([]func(*report.Report){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(r)
	}
	return true
}

// Load adopts r locally without contacting the server.
func (c *Client) Load(r *report.Report) {
	c.replace(r, false)
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), rd)
	if err != nil {
		return 0, envelope{}, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, envelope{}, fmt.Errorf("%s %s: decoding response (status %d): %w", method, path, resp.StatusCode, err)
	}
	return resp.StatusCode, env, nil
}

// Fetch reads the server's current report. A nil report with a nil error
// means the server holds none.
func (c *Client) Fetch(ctx context.Context) (*report.Report, error) {
	code, env, err := c.do(ctx, http.MethodGet, "/api/report", nil)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("%w: GET /api/report returned %d", ErrUnexpectedStatus, code)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	r, err := report.Parse(env.Data)
	if err != nil {
		return nil, fmt.Errorf("reading server report: %w", err)
	}
	return r, nil
}

// Refresh fetches the server's report and adopts it if it differs from the
// local copy. An empty server never clears the local copy. It reports
// whether the local copy changed.
func (c *Client) Refresh(ctx context.Context) (bool, error) {
	r, err := c.Fetch(ctx)
	if err != nil {
		return false, err
	}
	if r == nil {
		return false, nil
	}
	changed := c.replace(r, true)
	if changed {
		c.logger.Debug("report refreshed", "project", r.ProjectName)
	}
	return changed, nil
}

// Clear deletes the server's report and drops the local copy without
// waiting for a notification. The local copy is dropped even when the
// request fails; the error is still returned.
func (c *Client) Clear(ctx context.Context) error {
	code, env, err := c.do(ctx, http.MethodDelete, "/api/report", nil)
	c.replace(nil, false)
	if err != nil {
		return err
	}
	if code != http.StatusOK || !env.Success {
		return fmt.Errorf("%w: DELETE /api/report returned %d", ErrUnexpectedStatus, code)
	}
	return nil
}

// Submit sends payload as the new report.
func (c *Client) Submit(ctx context.Context, payload []byte) error {
	code, env, err := c.do(ctx, http.MethodPost, "/api/report", payload)
	if err != nil {
		return err
	}
	switch {
	case code == http.StatusOK && env.Success:
		return nil
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, env.Message)
	default:
		return fmt.Errorf("%w: POST /api/report returned %d: %s", ErrUnexpectedStatus, code, env.Message)
	}
}
