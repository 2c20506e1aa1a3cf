package logger_adapter

import (
	"fmt"
	"maps"
	"rental-search-service/internal/core/port"
)

// MultiLoggerAdapter fans every record out to all wrapped sinks. Each sink gets its own
// copy of fields, so one sink cannot change what the next one receives.
type MultiLoggerAdapter struct {
	sinks []port.LoggerPort
}

// NewMultiloggerAdapter skips nil sinks; a single remaining sink is returned as is.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	sinks := make([]port.LoggerPort, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			sinks = append(sinks, l)
		}
	}
	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	case 1:
		return sinks[0], nil
	}
	return &MultiLoggerAdapter{sinks: sinks}, nil
}

func (m *MultiLoggerAdapter) each(fields port.Fields, emit func(sink port.LoggerPort, fields port.Fields)) {
	for _, sink := range m.sinks {
		emit(sink, maps.Clone(fields))
	}
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	m.each(fields, func(sink port.LoggerPort, f port.Fields) { sink.Info(msg, f) })
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	m.each(fields, func(sink port.LoggerPort, f port.Fields) { sink.Warn(msg, f) })
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	m.each(fields, func(sink port.LoggerPort, f port.Fields) { sink.Error(msg, err, f) })
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	m.each(fields, func(sink port.LoggerPort, f port.Fields) { sink.Debug(msg, f) })
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := make([]port.LoggerPort, len(m.sinks))
	for i, sink := range m.sinks {
		enriched[i] = sink.WithFields(maps.Clone(fields))
	}
	return &MultiLoggerAdapter{sinks: enriched}
}
