package huntglitch

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind discriminates the two record types accepted by the collector.
type EventKind string

const (
	KindException EventKind = "exception"
	KindLog       EventKind = "log"
)

// LogType is the severity attached to a log record. The collector accepts
// both the level name and its numeric code; [ParseLogType] handles either.
type LogType int

const (
	LogDebug LogType = iota + 1
	LogInfo
	LogWarning
	LogError
	LogCritical
)

func (t LogType) String() string {
	switch t {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogCritical:
		return "critical"
	default:
		return fmt.Sprintf("logtype(%d)", int(t))
	}
}

// ParseLogType converts a level name ("warning") or numeric code ("3")
// into a LogType. Names are matched case-insensitively.
func ParseLogType(s string) (LogType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogDebug, nil
	case "info":
		return LogInfo, nil
	case "warning", "warn":
		return LogWarning, nil
	case "error":
		return LogError, nil
	case "critical", "fatal":
		return LogCritical, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		t := LogType(n)
		if t >= LogDebug && t <= LogCritical {
			return t, nil
		}
	}
	return 0, fmt.Errorf("huntglitch: unknown log type %q", s)
}

// Event is one exception or log record to be delivered. Events are built
// by [NewExceptionEvent] or [NewLogEvent] and are not modified after
// construction.
type Event struct {
	ID             string
	Kind           EventKind
	Name           string
	Value          string
	File           string
	Line           int
	Stack          []string
	LogType        LogType
	AdditionalData map[string]any
	Tags           map[string]string
	IssuedAt       time.Time
}

// EventOption attaches optional metadata to an event under construction.
type EventOption func(*Event)

// WithData merges key/value pairs into the event's additional data.
func WithData(data map[string]any) EventOption {
	return func(e *Event) {
		if len(data) == 0 {
			return
		}
		if e.AdditionalData == nil {
			e.AdditionalData = make(map[string]any, len(data))
		}
		for k, v := range data {
			e.AdditionalData[k] = v
		}
	}
}

// WithTag attaches a single tag to the event.
func WithTag(key, value string) EventOption {
	return func(e *Event) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if e.Tags == nil {
			e.Tags = make(map[string]string)
		}
		e.Tags[key] = value
	}
}

// WithTags merges tags into the event.
func WithTags(tags map[string]string) EventOption {
	return func(e *Event) {
		for k, v := range tags {
			WithTag(k, v)(e)
		}
	}
}

// WithName overrides the event name. For exception events the default is
// the error's Go type; for log events it is "Log".
func WithName(name string) EventOption {
	return func(e *Event) {
		if name = strings.TrimSpace(name); name != "" {
			e.Name = name
		}
	}
}

// WithLocation overrides the source location captured for the event.
func WithLocation(file string, line int) EventOption {
	return func(e *Event) {
		if file != "" {
			e.File = file
		}
		if line > 0 {
			e.Line = line
		}
	}
}

// WithLogType overrides the severity. Exception events default to
// [LogError], log events to the level passed to [NewLogEvent].
func WithLogType(t LogType) EventOption {
	return func(e *Event) {
		if t >= LogDebug && t <= LogCritical {
			e.LogType = t
		}
	}
}

// NewExceptionEvent builds an exception event from a caught error. The
// event name is the error's Go type, the value its message, and the
// source location and stack trace are captured from the calling frame.
func NewExceptionEvent(err error, opts ...EventOption) *Event {
	return newExceptionEvent(3, err, opts)
}

func newExceptionEvent(skip int, err error, opts []EventOption) *Event {
	e := &Event{
		ID:       uuid.NewString(),
		Kind:     KindException,
		LogType:  LogError,
		IssuedAt: time.Now().UTC(),
	}
	if err != nil {
		e.Name = fmt.Sprintf("%T", err)
		e.Value = err.Error()
	}
	e.File, e.Line = callerLocation(skip)
	e.Stack = callStack(skip)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// NewLogEvent builds a log event carrying a message and severity, without
// a stack trace. The source location is captured from the calling frame.
func NewLogEvent(message string, logType LogType, opts ...EventOption) *Event {
	return newLogEvent(3, message, logType, opts)
}

func newLogEvent(skip int, message string, logType LogType, opts []EventOption) *Event {
	if logType < LogDebug || logType > LogCritical {
		logType = LogInfo
	}
	e := &Event{
		ID:       uuid.NewString(),
		Kind:     KindLog,
		Name:     "Log",
		Value:    message,
		LogType:  logType,
		IssuedAt: time.Now().UTC(),
	}
	e.File, e.Line = callerLocation(skip)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// callerLocation and callStack share runtime.Caller's skip convention:
// skip 0 is the helper itself.
func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0
	}
	return file, line
}

func callStack(skip int) []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	stack := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, fmt.Sprintf("%s\n\t%s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return stack
}

// wireEvent is the JSON body POSTed to the collector.
type wireEvent struct {
	ProjectKey     string            `json:"project_key"`
	DeliverableKey string            `json:"deliverable_key"`
	Kind           EventKind         `json:"kind"`
	EventID        string            `json:"event_id"`
	IssuedAt       time.Time         `json:"issued_at"`
	Payload        wirePayload       `json:"payload"`
	AdditionalData map[string]any    `json:"additional_data,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
}

type wirePayload struct {
	Name    string   `json:"name,omitempty"`
	Value   string   `json:"value"`
	File    string   `json:"file,omitempty"`
	Line    int      `json:"line,omitempty"`
	Stack   []string `json:"stack,omitempty"`
	LogType string   `json:"log_type"`
}

func (e *Event) wire(projectKey, deliverableKey string) *wireEvent {
	return &wireEvent{
		ProjectKey:     projectKey,
		DeliverableKey: deliverableKey,
		Kind:           e.Kind,
		EventID:        e.ID,
		IssuedAt:       e.IssuedAt,
		Payload: wirePayload{
			Name:    e.Name,
			Value:   e.Value,
			File:    e.File,
			Line:    e.Line,
			Stack:   e.Stack,
			LogType: e.LogType.String(),
		},
		AdditionalData: e.AdditionalData,
		Tags:           e.Tags,
	}
}
