package huntglitch

// RequestLogger is the interface used by [Client] for best-effort
// diagnostics: dropped events in silent-failure mode, retry activity, and
// transport errors. It matches resty's logger interface, so the
// implementation supplied via [WithRequestLogger] is also handed to the
// underlying transport. The core delivery contract never depends on it.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided.
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}
