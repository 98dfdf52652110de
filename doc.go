// Package huntglitch provides a client for forwarding captured exceptions
// and log records to the HuntGlitch error-tracking service.
//
// The client wraps [github.com/go-resty/resty/v2] with bounded retries,
// a per-attempt timeout, and a configurable silent-failure mode so that
// reporting an error never takes the application down with it.
//
// # Basic Usage
//
//	client, err := huntglitch.New("project-key", "deliverable-key",
//	    huntglitch.WithRetryCount(2),
//	    huntglitch.WithSilentFailures(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := doWork(); err != nil {
//	    client.CaptureException(ctx, err,
//	        huntglitch.WithTag("environment", "production"),
//	    )
//	}
//
// A process-wide default can be installed with [SetDefault]; the
// package-level [CaptureException] and [SendLog] functions delegate to it.
//
// # Configuration
//
// The two credential keys are required and validated by [New]. Everything
// else is supplied as [Option] functions; invalid values are silently
// ignored and the default is retained. [NewFromEnv] resolves the keys and
// settings from the environment (and optional .env files) via [FromEnv].
//
// # Retry Behaviour
//
// [DefaultRetryPolicy] retries on connection errors, timeouts, and 5xx
// server errors. A 4xx response is a definitive rejection and is never
// retried, nor is context cancellation or a DNS resolution failure.
// Between attempts the client applies resty's exponential backoff with
// jitter, bounded by the configured wait times. Supply a custom function
// via [WithRetryPolicy] to override this behaviour.
//
// # Timeouts
//
// The configured timeout applies per attempt, not cumulatively across
// retries; an attempt that times out consumes one retry slot. Callers
// wanting a cumulative budget should set a deadline on the context passed
// to [Client.Send], which is never retried past.
//
// # Failure Modes
//
// With [WithSilentFailures] enabled, delivery failures are swallowed: Send
// returns a failed [DeliveryResult] with a nil error, and the failure is
// only observable through the configured [RequestLogger]. With the mode
// disabled, delivery failures are returned to the caller. Configuration
// errors are always returned regardless of the mode.
package huntglitch
