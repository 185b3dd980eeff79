package nimbus

import (
	"context"
	"net/http"
	"net/url"
)

// Request is the transport-level request descriptor produced by an input's
// Request method. It carries everything the transport needs to execute one
// operation: verb, path, query string, headers, and an encoded body.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	Body    []byte
}

// Response is the transport-level response descriptor handed back by the
// transport after executing a Request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Requester executes transport-level requests. The HTTP transport in
// internal/http implements it; tests substitute fakes.
type Requester interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// RequestID returns the request identifier the service attached to the
// response, or "" if none was sent.
func (r *Response) RequestID() string {
	if r == nil || r.Headers == nil {
		return ""
	}

	return r.Headers.Get(HeaderRequestID)
}

// Protocol header names fixed by the Nimbus wire contract.
const (
	// HeaderTarget selects the operation for JSON-target services.
	HeaderTarget = "X-Nimbus-Target"

	// HeaderRequestID carries the service-assigned request identifier.
	HeaderRequestID = "X-Nimbus-Request-Id"

	// HeaderErrorType carries the error discriminator for REST services.
	HeaderErrorType = "X-Nimbus-Error-Type"

	// ContentTypeJSONTarget is the body content type for JSON-target services.
	ContentTypeJSONTarget = "application/x-nimbus-json-1.0"

	// ContentTypeJSON is the body content type for REST services.
	ContentTypeJSON = "application/json"
)

// String returns a pointer to the given string value.
func String(v string) *string { return &v }

// Int64 returns a pointer to the given int64 value.
func Int64(v int64) *int64 { return &v }

// Int32 returns a pointer to the given int32 value.
func Int32(v int32) *int32 { return &v }

// Bool returns a pointer to the given bool value.
func Bool(v bool) *bool { return &v }
