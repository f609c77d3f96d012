package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when no session token is available.
	ErrMissingToken = errors.New("no authentication token available")

	// ErrTokenExpired is returned when the session token has expired.
	ErrTokenExpired = errors.New("authentication token expired")

	// ErrUpstreamStatus is returned when the backend answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("backend returned an error status")

	// ErrMalformedResponse is returned when the backend body does not match
	// the expected shape.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrNoTrends is returned when the backend answers with an empty trend list.
	ErrNoTrends = errors.New("backend returned no trends")

	// ErrCircuitOpen is returned while the backend circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("backend temporarily unavailable")

	// ErrInvalidPlatform is returned for an unknown platform name.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPeriod is returned for an unknown time period.
	ErrInvalidPeriod = errors.New("invalid time period")

	// ErrInvalidContentType is returned for an unknown content type.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidTag is returned when a trend tag is empty.
	ErrInvalidTag = errors.New("invalid trend tag")

	// ErrInvalidProfile is returned when a profile update fails validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrRateLimited is returned when a client exceeds its request budget.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// UpstreamError carries the HTTP status of a failed backend call.
// It matches ErrUpstreamStatus with errors.Is.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrUpstreamStatus) succeed.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
