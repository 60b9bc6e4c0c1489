package sse

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseServer(t *testing.T, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func collect(t *testing.T, frames <-chan Frame, errs <-chan error) ([]string, error) {
	t.Helper()
	var out []string
	var streamErr error
	for frames != nil || errs != nil {
		select {
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			out = append(out, string(f.Data))
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			streamErr = err
		case <-time.After(5 * time.Second):
			t.Fatal("stream did not terminate")
		}
	}
	return out, streamErr
}

func TestStreamFraming(t *testing.T) {
	t.Run("two frames then clean EOF", func(t *testing.T) {
		srv := sseServer(t, "data: hello\n\ndata: world\n\n", nil)
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		got, streamErr := collect(t, frames, errs)
		require.NoError(t, streamErr)
		assert.Equal(t, []string{"hello", "world"}, got)
	})

	t.Run("continuation lines join with newline", func(t *testing.T) {
		srv := sseServer(t, "data: line one\ndata: line two\n\n", nil)
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		got, streamErr := collect(t, frames, errs)
		require.NoError(t, streamErr)
		assert.Equal(t, []string{"line one\nline two"}, got)
	})

	t.Run("non-data fields and CRLF are tolerated", func(t *testing.T) {
		srv := sseServer(t, "event: message\r\nid: 7\r\ndata: payload\r\nretry: 100\r\n\r\n", nil)
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		got, streamErr := collect(t, frames, errs)
		require.NoError(t, streamErr)
		assert.Equal(t, []string{"payload"}, got)
	})

	t.Run("incomplete trailing event is discarded at EOF", func(t *testing.T) {
		srv := sseServer(t, "data: complete\n\ndata: partial", nil)
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		got, streamErr := collect(t, frames, errs)
		require.NoError(t, streamErr)
		assert.Equal(t, []string{"complete"}, got)
	})
}

func TestStreamRequest(t *testing.T) {
	t.Run("posts JSON payload", func(t *testing.T) {
		var gotBody map[string]any
		var gotAccept, gotContentType string
		srv := sseServer(t, "data: ok\n\n", func(r *http.Request) {
			gotAccept = r.Header.Get("Accept")
			gotContentType = r.Header.Get("Content-Type")
			json.NewDecoder(r.Body).Decode(&gotBody)
		})
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{Payload: map[string]string{"threadId": "t1"}})
		require.NoError(t, err)
		collect(t, frames, errs)
		assert.Equal(t, "text/event-stream", gotAccept)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "t1", gotBody["threadId"])
	})

	t.Run("bearer auth by default", func(t *testing.T) {
		var got string
		srv := sseServer(t, "data: ok\n\n", func(r *http.Request) {
			got = r.Header.Get("Authorization")
		})
		c := NewClient(Config{Endpoint: srv.URL, APIKey: "sk-123"})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		collect(t, frames, errs)
		assert.Equal(t, "Bearer sk-123", got)
	})

	t.Run("custom scheme", func(t *testing.T) {
		var got string
		srv := sseServer(t, "data: ok\n\n", func(r *http.Request) {
			got = r.Header.Get("Authorization")
		})
		c := NewClient(Config{Endpoint: srv.URL, APIKey: "sk-123", AuthScheme: "Token"})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		collect(t, frames, errs)
		assert.Equal(t, "Token sk-123", got)
	})

	t.Run("custom header carries raw key", func(t *testing.T) {
		var got, auth string
		srv := sseServer(t, "data: ok\n\n", func(r *http.Request) {
			got = r.Header.Get("X-Api-Key")
			auth = r.Header.Get("Authorization")
		})
		c := NewClient(Config{Endpoint: srv.URL, APIKey: "sk-123", AuthHeader: "X-Api-Key"})
		frames, errs, err := c.Stream(StreamOptions{})
		require.NoError(t, err)
		collect(t, frames, errs)
		assert.Equal(t, "sk-123", got)
		assert.Empty(t, auth)
	})
}

func TestStreamImmediateFailures(t *testing.T) {
	t.Run("unserializable payload", func(t *testing.T) {
		c := NewClient(Config{Endpoint: "http://localhost:0"})
		_, _, err := c.Stream(StreamOptions{Payload: make(chan int)})
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "encode", te.Stage)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		t.Cleanup(srv.Close)
		c := NewClient(Config{Endpoint: srv.URL})
		frames, errs, err := c.Stream(StreamOptions{})
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "status", te.Stage)
		assert.Contains(t, err.Error(), "403")
		assert.Nil(t, frames)
		assert.Nil(t, errs)
	})

	t.Run("wrong content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, "{}")
		}))
		t.Cleanup(srv.Close)
		c := NewClient(Config{Endpoint: srv.URL})
		_, _, err := c.Stream(StreamOptions{})
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "content-type", te.Stage)
	})

	t.Run("connection refused", func(t *testing.T) {
		c := NewClient(Config{Endpoint: "http://127.0.0.1:1"})
		_, _, err := c.Stream(StreamOptions{})
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "connect", te.Stage)
	})
}

func TestStreamReadTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{Endpoint: srv.URL, ReadTimeout: 50 * time.Millisecond})
	frames, errs, err := c.Stream(StreamOptions{})
	require.NoError(t, err)
	_, streamErr := collect(t, frames, errs)
	var te *TransportError
	require.True(t, errors.As(streamErr, &te))
	assert.Equal(t, "timeout", te.Stage)
}

func TestStreamCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "data: first\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(Config{Endpoint: srv.URL})
	frames, errs, err := c.Stream(StreamOptions{Context: ctx})
	require.NoError(t, err)

	select {
	case f := <-frames:
		assert.Equal(t, "first", string(f.Data))
	case <-time.After(5 * time.Second):
		t.Fatal("no frame before cancel")
	}

	cancel()
	_, streamErr := collect(t, frames, errs)
	assert.NoError(t, streamErr)
}

func TestClientClose(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://localhost:0"})
	c.Close()
	c.Close()
}
