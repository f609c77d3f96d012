// Package backend is the HTTP client for the remote trends and content API.
// Every call forwards the session bearer token and runs behind a shared
// circuit breaker.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"trendboard/internal/adapters/auth"
	"trendboard/internal/config"
	"trendboard/internal/domain"
	"trendboard/internal/metrics"
	"trendboard/pkg/log"
)

const (
	breakerName = "backend-api"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
	// maxErrorBody caps the body excerpt kept on an UpstreamError.
	maxErrorBody = 256
)

// Client talks to the backend API on behalf of the current user.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New creates a Client for cfg. Tokens are resolved per call from tokens.
func New(cfg config.BackendConfig, tokens auth.TokenSource) *Client {
	return NewWithHTTPClient(cfg, tokens, &http.Client{Timeout: cfg.Timeout})
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(cfg config.BackendConfig, tokens auth.TokenSource, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		tokens:  tokens,
		breaker: newBreaker(cfg.Breaker),
	}
}

func newBreaker(cfg config.BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		// Client errors and cancellations say nothing about backend health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var upstream *domain.UpstreamError
			if errors.As(err, &upstream) {
				return upstream.StatusCode < http.StatusInternalServerError
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.GlobalWarn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// do sends one authenticated request. in, when non-nil, is encoded as the
// JSON body; out, when non-nil, receives the decoded response. The token is
// resolved before anything touches the network.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, endpoint, reqURL, token, payload)
	})
	metrics.UpstreamRequestDuration.WithLabelValues(method, endpoint, outcome(err)).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s %s: %w", method, endpoint, domain.ErrCircuitOpen)
		}
		return err
	}

	log.GlobalDebugCtx(ctx, "backend call succeeded", "method", method, "endpoint", endpoint,
		"latency_ms", time.Since(start).Milliseconds())

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, endpoint, domain.ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint, reqURL, token string, payload []byte) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if id := log.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Endpoint:   method + " " + endpoint,
			StatusCode: resp.StatusCode,
			Body:       excerpt(body),
		}
	}
	return body, nil
}

func errNoData(method, endpoint string) error {
	return fmt.Errorf("%s %s: %w: no data", method, endpoint, domain.ErrMalformedResponse)
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, domain.ErrUpstreamStatus):
		return "status"
	default:
		return "error"
	}
}
