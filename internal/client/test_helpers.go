package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	internalhttp "github.com/nimbus-cloud/nimbus-client/internal/http"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// fakeRequester records requests and plays back scripted responses without a
// network. Tests that only care about serialization and hydration use it;
// tests exercising the transport stack use newTestServer instead.
type fakeRequester struct {
	mu        sync.Mutex
	requests  []*nimbus.Request
	responses []*nimbus.Response
	err       error
}

func (f *fakeRequester) Do(ctx context.Context, req *nimbus.Request) (*nimbus.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)

	if f.err != nil {
		return nil, f.err
	}

	if len(f.responses) == 0 {
		return &nimbus.Response{StatusCode: http.StatusOK, Headers: http.Header{}}, nil
	}

	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}

	return resp, nil
}

func (f *fakeRequester) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeRequester) lastRequest() *nimbus.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.requests) == 0 {
		return nil
	}

	return f.requests[len(f.requests)-1]
}

func okJSON(body string) *nimbus.Response {
	return &nimbus.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

func errJSON(status int, body string) *nimbus.Response {
	return &nimbus.Response{
		StatusCode: status,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

// targetHandler routes JSON-target requests by their target header.
type targetHandler struct {
	t        *testing.T
	handlers map[string]http.HandlerFunc
}

func newTargetHandler(t *testing.T) *targetHandler {
	t.Helper()

	return &targetHandler{t: t, handlers: map[string]http.HandlerFunc{}}
}

func (h *targetHandler) on(target string, handler http.HandlerFunc) *targetHandler {
	h.handlers[target] = handler

	return h
}

func (h *targetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.Header.Get(nimbus.HeaderTarget)

	handler, ok := h.handlers[target]
	if !ok {
		h.t.Errorf("unexpected target %q", target)
		w.WriteHeader(http.StatusNotImplemented)

		return
	}

	handler(w, r)
}

// newTestServer starts an httptest server and a client wired to it through
// the real transport, with no caching.
func newTestServer(t *testing.T, handler http.Handler) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	requester := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	return server, NewWithRequester(requester, nil)
}

func decodeBody(t *testing.T, r *http.Request, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(r.Body).Decode(out))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}
