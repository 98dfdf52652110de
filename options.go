package huntglitch

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	endpoint         string
	timeout          time.Duration
	retryCount       int
	retryWaitTime    time.Duration
	retryMaxWaitTime time.Duration
	silentFailures   bool
	requestLogger    RequestLogger
	retryPolicy      func(*resty.Response, error) bool
	requestHeaders   map[string]string
}

func newClientOptions() *Options {
	return &Options{
		endpoint:         DefaultEndpoint,
		timeout:          10 * time.Second,
		retryCount:       3,
		retryWaitTime:    500 * time.Millisecond,
		retryMaxWaitTime: 3 * time.Second,
		requestLogger:    &NoopLogger{},
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// WithEndpoint overrides the collector base URL. Intended for on-premise
// collectors and tests.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			o.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithTimeout sets the per-attempt delivery timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetryCount sets how many times a transient failure is retried; the
// client performs at most retryCount+1 attempts per event.
func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

// WithSilentFailures controls whether delivery failures are swallowed
// (true) or returned to the caller (false, the default).
func WithSilentFailures(silent bool) Option {
	return func(o *Options) {
		o.silentFailures = silent
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}
