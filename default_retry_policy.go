package huntglitch

import (
	"context"
	"errors"
	"net"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the default retry condition used by [Client]. It
// retries on 5xx server errors, connection errors, and timeouts. It does
// not retry on context cancellation or DNS resolution failures, and any
// other response status is treated as definitive.
//
// A per-attempt timeout is retryable and consumes one retry slot; when the
// caller's own context expires, the transport stops the retry loop before
// the next attempt.
//
// Supply a custom function via [WithRetryPolicy] to override this behaviour.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}

		// Don't retry on DNS resolution errors
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return false
		}

		// Retry on timeouts and other connection errors
		return true
	}

	return r.StatusCode() >= 500
}
