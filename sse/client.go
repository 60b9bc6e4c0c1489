// Package sse implements the AG-UI transport: an SSE client that POSTs a
// run's input to the agent endpoint and streams back `text/event-stream`
// frames, one reassembled data payload per protocol event.
package sse

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	agui "github.com/spetersoncode/agui"
)

const (
	// DefaultConnectTimeout bounds dialing and waiting for response headers.
	DefaultConnectTimeout = 30 * time.Second
	// DefaultReadTimeout bounds the gap between consecutive lines on an
	// established stream. Zero disables the timer.
	DefaultReadTimeout = 5 * time.Minute
	// DefaultBufferSize is the frame channel capacity.
	DefaultBufferSize = 100

	// maxLineSize caps a single SSE line.
	maxLineSize = 1 << 20
)

// TransportError wraps a connection, read, or timeout failure. Transport
// errors are fatal to the current run and are not retried by the client.
type TransportError struct {
	// Stage names where the failure happened: "encode", "request",
	// "connect", "status", "content-type", "read", or "timeout".
	Stage string
	Err   error
}

// Error formats the failure.
func (e *TransportError) Error() string {
	return fmt.Sprintf("sse: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// Category classifies transport failures as transient.
func (e *TransportError) Category() agui.ErrorCategory { return agui.ErrorTransient }

// ShouldReport reports transport failures to monitoring.
func (e *TransportError) ShouldReport() bool { return true }

// Frame is one reassembled SSE payload: the joined `data:` lines of one
// event, delivered to the verifier as one raw protocol event.
type Frame struct {
	Data []byte
}

// Config holds the transport settings for one agent endpoint.
type Config struct {
	// Endpoint is the agent URL the run input is POSTed to.
	Endpoint string
	// APIKey, when set, is attached to every request. By default it is
	// sent as "Authorization: <AuthScheme> <key>"; when AuthHeader names
	// a custom header the raw key is sent under it with no scheme.
	APIKey     string
	AuthHeader string
	AuthScheme string
	// ConnectTimeout bounds dialing plus response headers. Zero means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the wait for the next line on an open stream.
	// Zero disables it.
	ReadTimeout time.Duration
	// BufferSize is the frame channel capacity. Zero means
	// DefaultBufferSize.
	BufferSize int
	// HTTPClient overrides the client built from ConnectTimeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client streams protocol events from an AG-UI endpoint. One Client may
// serve many runs; each Stream call opens its own connection.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from cfg, filling in defaults.
func NewClient(cfg Config) *Client {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
				ResponseHeaderTimeout: cfg.ConnectTimeout,
			},
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// StreamOptions carries per-run request parameters.
type StreamOptions struct {
	// Context cancels the stream. The read loop checks it before every
	// read and aborts without emitting further frames.
	Context context.Context
	// Payload is serialized as the JSON request body.
	Payload any
	// Headers are added to the request after the defaults.
	Headers map[string]string
}

// Stream opens the connection and starts the background read loop. It
// fails immediately, returning nil channels, when the payload cannot be
// serialized, the request cannot be built or sent, the status is not 200,
// or the content type is not text/event-stream.
//
// On success both channels are owned by the read loop and closed when it
// exits: after EOF (no error), after emitting a read or timeout error, or
// after cancellation. The connection is always closed on loop exit.
func (c *Client) Stream(opts StreamOptions) (<-chan Frame, <-chan error, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := json.Marshal(opts.Payload)
	if err != nil {
		return nil, nil, &TransportError{Stage: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, &TransportError{Stage: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Stage: "connect", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, &TransportError{Stage: "status", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		return nil, nil, &TransportError{Stage: "content-type", Err: fmt.Errorf("unexpected content type %q", ct)}
	}

	frames := make(chan Frame, c.cfg.BufferSize)
	errs := make(chan error, 1)
	go c.readLoop(ctx, resp.Body, frames, errs)
	return frames, errs, nil
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.APIKey == "" {
		return
	}
	if c.cfg.AuthHeader != "" {
		req.Header.Set(c.cfg.AuthHeader, c.cfg.APIKey)
		return
	}
	req.Header.Set("Authorization", c.cfg.AuthScheme+" "+c.cfg.APIKey)
}

type lineResult struct {
	line string
	err  error
}

// readLoop drives a single persistent reader goroutine and selects over
// incoming lines, the read-timeout timer, and cancellation. It owns both
// output channels and the response body.
func (c *Client) readLoop(ctx context.Context, body io.ReadCloser, frames chan<- Frame, errs chan<- error) {
	defer close(frames)
	defer close(errs)
	defer body.Close()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan lineResult)
	go func() {
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- lineResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case lines <- lineResult{err: err}:
		case <-done:
		}
	}()

	var timeout <-chan time.Time
	var timer *time.Timer
	if c.cfg.ReadTimeout > 0 {
		timer = time.NewTimer(c.cfg.ReadTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var buf strings.Builder
	for {
		select {
		case <-ctx.Done():
			return

		case <-timeout:
			errs <- &TransportError{Stage: "timeout", Err: fmt.Errorf("no data within %s", c.cfg.ReadTimeout)}
			return

		case res := <-lines:
			if res.err != nil {
				if res.err != io.EOF {
					errs <- &TransportError{Stage: "read", Err: res.err}
				}
				return
			}
			if timer != nil {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(c.cfg.ReadTimeout)
			}
			line := strings.TrimRight(res.line, "\r")
			switch {
			case line == "":
				if buf.Len() > 0 {
					select {
					case frames <- Frame{Data: []byte(buf.String())}:
					case <-ctx.Done():
						return
					}
					buf.Reset()
				}
			case strings.HasPrefix(line, "data: "):
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(strings.TrimPrefix(line, "data: "))
			default:
				// event:, id:, retry:, comments: ignored.
			}
		}
	}
}
