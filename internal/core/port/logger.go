package port

// Fields - structured data attached to a log entry.
type Fields map[string]interface{}

// LoggerPort is the logging contract used by the core and the adapters.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error logs msg together with err.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger that adds fields to every entry (trace_id, component...).
	WithFields(fields Fields) LoggerPort
}
