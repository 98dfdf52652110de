package huntglitch

import "fmt"

// ConfigurationError reports integration misuse: a missing credential key,
// a nil client or event, or an unparseable environment value. It is always
// returned to the caller, even in silent-failure mode.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("huntglitch: configuration: %s %s", e.Field, e.Reason)
}

// TransientDeliveryError describes a single failed attempt that the retry
// policy considers retryable: a connection error, a timeout, or a 5xx
// response. StatusCode is zero when the failure happened below HTTP.
type TransientDeliveryError struct {
	StatusCode int
	Err        error
}

func (e *TransientDeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("huntglitch: transient delivery failure (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("huntglitch: transient delivery failure: %v", e.Err)
}

func (e *TransientDeliveryError) Unwrap() error { return e.Err }

// RejectedDeliveryError describes a definitive rejection that is never
// retried: a non-2xx, non-5xx response from the collector, or an event
// payload that could not be serialized. StatusCode is zero for
// serialization failures.
type RejectedDeliveryError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RejectedDeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("huntglitch: collector rejected event (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("huntglitch: %s: %v", e.Message, e.Err)
}

func (e *RejectedDeliveryError) Unwrap() error { return e.Err }

// ExhaustedRetriesError reports that every transmission attempt failed.
// Err holds the last attempt's TransientDeliveryError.
type ExhaustedRetriesError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("huntglitch: delivery failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Err }
