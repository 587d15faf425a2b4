package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/traveller-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultRate        = 5
	defaultBurst       = 10
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second

	// RequestIDHeader carries the dispatch correlation id
	RequestIDHeader = "X-Request-ID"
)

// errServerStatus marks a 5xx reply so the circuit breaker counts it
var errServerStatus = errors.New("server error status")

// ClientConfig configures a GameClient. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec int
	Burst          int
	MaxFailures    int
	OpenTimeout    time.Duration
	HTTPClient     *http.Client
	Clock          shared.Clock
}

// GameClient talks to the game-state service over HTTP/JSON. It implements
// ports.GameReader and ports.Transport. It never retries a request.
type GameClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	breaker     *CircuitBreaker
	reads       singleflight.Group
	validate    *validator.Validate
	clock       shared.Clock
}

var (
	_ ports.GameReader = (*GameClient)(nil)
	_ ports.Transport  = (*GameClient)(nil)
)

// NewGameClient creates a client for the service at cfg.BaseURL
func NewGameClient(cfg ClientConfig) *GameClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = defaultRate
	}
	if cfg.Burst == 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = shared.NewRealClock()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &GameClient{
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		breaker:     NewCircuitBreaker(cfg.MaxFailures, cfg.OpenTimeout, cfg.Clock),
		validate:    validator.New(),
		clock:       cfg.Clock,
	}
}

// Breaker exposes the client's circuit breaker state
func (c *GameClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// Send submits a mutation. Non-2xx replies are returned, not errored; an
// error means no reply was received.
func (c *GameClient) Send(ctx context.Context, method, path string, payload interface{}) (*ports.Reply, error) {
	return c.request(ctx, method, path, payload)
}

// request makes one rate-limited HTTP round trip behind the circuit breaker
func (c *GameClient) request(ctx context.Context, method, path string, body interface{}) (*ports.Reply, error) {
	endpoint := endpointName(path)

	waitStart := c.clock.Now()
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	metrics.RecordRateLimitWait(method, endpoint, c.clock.Now().Sub(waitStart).Seconds())

	var reply *ports.Reply
	err := c.breaker.Call(func() error {
		var err error
		reply, err = c.roundTrip(ctx, method, path, body)
		if err != nil {
			return err
		}
		if reply.StatusCode >= http.StatusInternalServerError {
			return errServerStatus
		}
		return nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, err
	}
	return reply, nil
}

func (c *GameClient) roundTrip(ctx context.Context, method, path string, body interface{}) (*ports.Reply, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if method == http.MethodGet {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/plain")
	}
	if id := mediator.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(method, endpointName(path), 0, c.clock.Now().Sub(start).Seconds())
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	metrics.RecordAPIRequest(method, endpointName(path), resp.StatusCode, c.clock.Now().Sub(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &ports.Reply{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// get fetches path, coalescing identical concurrent reads. The shared
// request runs detached from any one caller's cancellation; each caller
// stops waiting when its own ctx is done. Transport failures and non-2xx
// replies come back as *shared.TransportError.
func (c *GameClient) get(ctx context.Context, resource, path string) ([]byte, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.reads.DoChan(path, func() (interface{}, error) {
		reply, err := c.request(detached, http.MethodGet, path, nil)
		if err != nil {
			return nil, shared.NewTransportError(resource, 0, "", err)
		}
		if !reply.OK() {
			return nil, shared.NewTransportError(resource, reply.StatusCode, string(reply.Body), nil)
		}
		return reply.Body, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, shared.NewTransportError(resource, 0, "", ctx.Err())
	}
}

// endpointName is the first path segment, used as a low-cardinality metric label
func endpointName(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
