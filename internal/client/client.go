// Package client implements the per-service Nimbus clients: each operation
// serializes its input, executes the transport request, and hydrates the
// typed output or decodes the typed service error.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nimbus-cloud/nimbus-client/internal/auth"
	internalhttp "github.com/nimbus-cloud/nimbus-client/internal/http"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// Client implements nimbus.Client.
type Client struct {
	requester nimbus.Requester
	cache     nimbus.Cache

	queues    *QueuesClient
	functions *FunctionsClient
	query     *QueryClient
}

// New assembles a client from config: token manager, transport, optional
// response cache, interceptor chain.
func New(config *nimbus.Config) (*Client, error) {
	if config == nil {
		return nil, nimbus.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, nimbus.ErrEndpointRequired
	}

	var tokenManager auth.TokenManager
	if config.APIToken != "" {
		tokenManager = auth.NewStaticTokenManager(config.APIToken)
	} else {
		tokenManager = auth.NewEnvTokenManager()
	}

	cache, err := nimbus.NewCacheFromConfig(cacheConfigOrNone(config.Cache))
	if err != nil {
		return nil, fmt.Errorf("building response cache: %w", err)
	}

	chain := nimbus.NewInterceptorChain()
	if config.Logger != nil && config.Debug {
		chain.AddRequestInterceptor(nimbus.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(nimbus.LoggingResponseInterceptor(config.Logger))
	}

	opts := []internalhttp.Option{
		internalhttp.WithInterceptors(chain),
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger), internalhttp.WithDebug(config.Debug))
	}

	requester := internalhttp.NewClient(config.Endpoint, tokenManager, opts...)

	return NewWithRequester(requester, cache), nil
}

// NewWithRequester wires the service clients over an existing transport.
// Tests use it to substitute fakes.
func NewWithRequester(requester nimbus.Requester, cache nimbus.Cache) *Client {
	if cache == nil {
		cache = nimbus.NewNoOpCache()
	}

	return &Client{
		requester: requester,
		cache:     cache,
		queues:    &QueuesClient{requester: requester, cache: cache},
		functions: &FunctionsClient{requester: requester, cache: cache},
		query:     &QueryClient{requester: requester, cache: cache},
	}
}

// cacheConfigOrNone defaults an absent cache config to no caching: callers
// opt in to the read-through cache.
func cacheConfigOrNone(config *nimbus.CacheConfig) *nimbus.CacheConfig {
	if config == nil {
		return &nimbus.CacheConfig{Type: nimbus.CacheTypeNone}
	}

	return config
}

// Queues implements nimbus.Client.Queues.
func (c *Client) Queues() nimbus.QueuesClient {
	return c.queues
}

// Functions implements nimbus.Client.Functions.
func (c *Client) Functions() nimbus.FunctionsClient {
	return c.functions
}

// Query implements nimbus.Client.Query.
func (c *Client) Query() nimbus.QueryClient {
	return c.query
}

// requestBuilder is satisfied by every input type.
type requestBuilder interface {
	Request() (*nimbus.Request, error)
}

// execute runs one operation end to end: serialize, send, hydrate or decode
// the error. Validation faults from Request surface unwrapped so callers see
// the exact typed error; transport faults get gerund-phrase context.
func execute[T any](ctx context.Context, requester nimbus.Requester, input requestBuilder, action string) (*T, error) {
	req, err := input.Request()
	if err != nil {
		return nil, err
	}

	resp, err := requester.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nimbus.DecodeErrorResponse(resp)
	}

	return hydrate[T](resp.Body)
}

// hydrate decodes a response body into the output type. Unknown keys are
// ignored, missing keys stay zero; an undecodable body is a
// MalformedResponseError.
func hydrate[T any](data []byte) (*T, error) {
	out := new(T)

	if len(data) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		var malformed *nimbus.MalformedResponseError
		if errors.As(err, &malformed) {
			return nil, malformed
		}

		return nil, &nimbus.MalformedResponseError{Err: err}
	}

	return out, nil
}

// executeCached is execute with a read-through cache for idempotent reads.
// The key is the operation target plus the serialized request, so distinct
// parameter sets cache separately.
func executeCached[T any](ctx context.Context, requester nimbus.Requester, cache nimbus.Cache, input requestBuilder, action string) (*T, error) {
	req, err := input.Request()
	if err != nil {
		return nil, err
	}

	key := cacheKey(req)

	if entry, err := cache.Get(ctx, key); err == nil {
		return hydrate[T](entry.Data)
	}

	resp, err := requester.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nimbus.DecodeErrorResponse(resp)
	}

	out, err := hydrate[T](resp.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_ = cache.Set(ctx, key, &nimbus.CacheEntry{
		Data:      resp.Body,
		CreatedAt: now,
		ExpiresAt: now.Add(cacheTTL),
	})

	return out, nil
}

// cacheTTL bounds staleness for cached reads.
const cacheTTL = 30 * time.Second

func cacheKey(req *nimbus.Request) string {
	target := ""
	if req.Headers != nil {
		target = req.Headers.Get(nimbus.HeaderTarget)
	}

	return req.Method + "|" + req.Path + "|" + req.Query.Encode() + "|" + target + "|" + string(req.Body)
}

// invalidate drops the whole response cache. Mutating operations call it so
// a local write is never followed by a stale local read; the TTL covers
// writes made elsewhere.
func invalidate(ctx context.Context, cache nimbus.Cache) {
	_ = cache.Clear(ctx)
}
