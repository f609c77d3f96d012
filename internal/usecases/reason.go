package usecases

import (
	"context"
	"errors"

	"trendboard/internal/domain"
)

// fallbackReason is the metric label for why a fallback was served.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domain.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, domain.ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, domain.ErrNoTrends):
		return "empty"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
