package huntglitch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the public HuntGlitch collector.
const DefaultEndpoint = "https://lighthouse.huntglitch.com"

const eventsPath = "/api/v1/events"

// DeliveryResult is the outcome of one [Client.Send] call. Attempts counts
// transmissions actually performed; it is zero when the event could not be
// serialized. Err carries the delivery failure even in silent-failure
// mode, where Send itself returns nil.
type DeliveryResult struct {
	Success    bool
	StatusCode int
	Attempts   int
	EventID    string
	Err        error
}

// Client delivers events to the HuntGlitch collector. It is bound to one
// pair of credential keys for its lifetime and is safe for concurrent use;
// nothing is mutated after construction apart from the lazily built
// transport.
type Client struct {
	projectKey     string
	deliverableKey string
	options        *Options

	httpOnce   sync.Once
	httpClient *resty.Client
}

// New creates a Client bound to the given credential keys. An empty key is
// a *ConfigurationError.
func New(projectKey, deliverableKey string, opts ...Option) (*Client, error) {
	projectKey = strings.TrimSpace(projectKey)
	deliverableKey = strings.TrimSpace(deliverableKey)

	if projectKey == "" {
		return nil, &ConfigurationError{Field: "project key", Reason: "must not be empty"}
	}
	if deliverableKey == "" {
		return nil, &ConfigurationError{Field: "deliverable key", Reason: "must not be empty"}
	}

	options := newClientOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return &Client{
		projectKey:     projectKey,
		deliverableKey: deliverableKey,
		options:        options,
	}, nil
}

// NewFromConfig creates a Client from a resolved [Config]. Options given
// here take precedence over the config's settings.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &ConfigurationError{Field: "config", Reason: "must not be nil"}
	}

	base := []Option{
		WithRetryCount(cfg.Retries),
		WithTimeout(cfg.Timeout),
		WithSilentFailures(cfg.SilentFailures),
	}

	return New(cfg.ProjectKey, cfg.DeliverableKey, append(base, opts...)...)
}

// NewFromEnv creates a Client from the environment via [FromEnv].
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

func (c *Client) transport() *resty.Client {
	c.httpOnce.Do(func() {
		c.httpClient = resty.New().
			SetBaseURL(c.options.endpoint).
			SetTimeout(c.options.timeout).
			SetRetryCount(c.options.retryCount).
			SetRetryWaitTime(c.options.retryWaitTime).
			SetRetryMaxWaitTime(c.options.retryMaxWaitTime).
			AddRetryCondition(c.options.retryPolicy).
			SetHeaders(c.options.requestHeaders).
			SetLogger(c.options.requestLogger)
	})
	return c.httpClient
}

// Send serializes the event and transmits it to the collector, applying
// the configured retry policy and per-attempt timeout. In silent-failure
// mode delivery failures are reported only through the returned
// DeliveryResult; configuration errors are always returned.
func (c *Client) Send(ctx context.Context, event *Event) (*DeliveryResult, error) {
	if c == nil {
		return nil, &ConfigurationError{Field: "client", Reason: "is nil"}
	}
	if c.projectKey == "" || c.deliverableKey == "" {
		return nil, &ConfigurationError{Field: "client", Reason: "constructed without credential keys - use New"}
	}
	if event == nil {
		return nil, &ConfigurationError{Field: "event", Reason: "must not be nil"}
	}

	body, err := json.Marshal(event.wire(c.projectKey, c.deliverableKey))
	if err != nil {
		result := &DeliveryResult{
			EventID: event.ID,
			Err:     &RejectedDeliveryError{Message: "event payload is not serializable", Err: err},
		}
		return c.finish(result)
	}

	resp, err := c.transport().R().
		SetContext(ctx).
		SetBody(body).
		Post(eventsPath)

	result := &DeliveryResult{EventID: event.ID, Attempts: 1}
	if resp != nil && resp.Request != nil {
		result.Attempts = resp.Request.Attempt
		result.StatusCode = resp.StatusCode()
	}

	switch {
	case err != nil:
		result.Err = &ExhaustedRetriesError{
			Attempts: result.Attempts,
			Err:      &TransientDeliveryError{StatusCode: result.StatusCode, Err: err},
		}
	case resp.IsSuccess():
		result.Success = true
		c.options.requestLogger.Debugf("huntglitch: delivered %s event %s in %d attempt(s)",
			event.Kind, event.ID, result.Attempts)
		return result, nil
	case resp.StatusCode() < 500:
		result.Err = &RejectedDeliveryError{
			StatusCode: resp.StatusCode(),
			Message:    apiErrorMessage(resp),
		}
	default:
		result.Err = &ExhaustedRetriesError{
			Attempts: result.Attempts,
			Err: &TransientDeliveryError{
				StatusCode: resp.StatusCode(),
				Err:        fmt.Errorf("server error: %s", apiErrorMessage(resp)),
			},
		}
	}

	return c.finish(result)
}

func (c *Client) finish(result *DeliveryResult) (*DeliveryResult, error) {
	if c.options.silentFailures {
		c.options.requestLogger.Warnf("huntglitch: dropping event %s: %v", result.EventID, result.Err)
		return result, nil
	}
	return result, result.Err
}

// CaptureException builds an exception event from a caught error, with the
// caller's source location and stack trace, and delivers it.
func (c *Client) CaptureException(ctx context.Context, err error, opts ...EventOption) (*DeliveryResult, error) {
	if c == nil {
		return nil, &ConfigurationError{Field: "client", Reason: "is nil"}
	}
	if err == nil {
		return nil, &ConfigurationError{Field: "error", Reason: "must not be nil"}
	}
	return c.Send(ctx, newExceptionEvent(3, err, opts))
}

// SendLog builds a log event carrying a message and severity and delivers it.
func (c *Client) SendLog(ctx context.Context, message string, logType LogType, opts ...EventOption) (*DeliveryResult, error) {
	if c == nil {
		return nil, &ConfigurationError{Field: "client", Reason: "is nil"}
	}
	if strings.TrimSpace(message) == "" {
		return nil, &ConfigurationError{Field: "message", Reason: "must not be empty"}
	}
	return c.Send(ctx, newLogEvent(3, message, logType, opts))
}

// Close releases idle transport connections. The client remains usable;
// a later Send will dial again.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.GetClient().CloseIdleConnections()
}

// apiErrorMessage extracts a human-readable message from the collector's
// error response: the JSON "error" field when present, the raw body
// otherwise.
func apiErrorMessage(resp *resty.Response) string {
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return "(empty error body)"
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &apiErr); err == nil && apiErr.Error != "" {
		return apiErr.Error
	}

	return body
}
