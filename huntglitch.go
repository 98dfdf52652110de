package huntglitch

import (
	"context"
	"strings"
	"sync"
)

// The process-wide default client. It is explicit state installed at
// startup via SetDefault, never created implicitly.
var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// SetDefault installs the client used by the package-level capture
// functions. Call it once during startup; passing nil uninstalls the
// default.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// Default returns the client installed with [SetDefault], or nil.
func Default() *Client {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

// CaptureException reports a caught error through the default client.
func CaptureException(ctx context.Context, err error, opts ...EventOption) (*DeliveryResult, error) {
	c := Default()
	if c == nil {
		return nil, &ConfigurationError{Field: "default client", Reason: "not installed - call SetDefault first"}
	}
	if err == nil {
		return nil, &ConfigurationError{Field: "error", Reason: "must not be nil"}
	}
	return c.Send(ctx, newExceptionEvent(3, err, opts))
}

// SendLog reports a log message through the default client.
func SendLog(ctx context.Context, message string, logType LogType, opts ...EventOption) (*DeliveryResult, error) {
	c := Default()
	if c == nil {
		return nil, &ConfigurationError{Field: "default client", Reason: "not installed - call SetDefault first"}
	}
	if strings.TrimSpace(message) == "" {
		return nil, &ConfigurationError{Field: "message", Reason: "must not be empty"}
	}
	return c.Send(ctx, newLogEvent(3, message, logType, opts))
}
