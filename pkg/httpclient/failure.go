package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"talksy/pkg/failure"
)

// Failure maps a transport or status error from this client to a typed
// failure for op.
func Failure(op, subject string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return failure.NewWithSubject(failure.NotFound, op, subject, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return failure.New(failure.NotConfigured, op, err)
		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return failure.NewWithSubject(failure.Unavailable, op, subject, err)
		}
		return failure.NewWithSubject(failure.Upstream, op, subject, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return failure.NewWithSubject(failure.Unavailable, op, subject, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return failure.NewWithSubject(failure.Unavailable, op, subject, err)
	}

	return failure.NewWithSubject(failure.Upstream, op, subject, err)
}
