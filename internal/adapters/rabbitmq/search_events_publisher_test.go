package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
	err        error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	_, p.deadline = ctx.Deadline()
	p.routingKey = routingKey
	p.msg = msg
	return p.err
}

func event() domain.SearchPerformed {
	return domain.SearchPerformed{
		EventID:     uuid.MustParse("8b4b5d86-4d55-4a1e-9e5c-0c1f3c8de9a1"),
		TraceID:     "trace-1",
		OccurredAt:  time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		Dimensions:  []string{"price", "location"},
		CenterHash:  "w7er8",
		ResultCount: 3,
		DurationMs:  12,
	}
}

func TestNewSearchEventsAdapter(t *testing.T) {
	_, err := NewSearchEventsAdapter(nil, "search.performed")
	assert.Error(t, err)
	_, err = NewSearchEventsAdapter(&fakePublisher{}, "")
	assert.Error(t, err)
}

func TestPublishSearchPerformed(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(producer, "search.performed")
	require.NoError(t, err)

	require.NoError(t, adapter.PublishSearchPerformed(context.Background(), event()))

	assert.Equal(t, "search.performed", producer.routingKey)
	assert.True(t, producer.deadline)
	assert.Equal(t, "application/json", producer.msg.ContentType)
	assert.Equal(t, "ListingSearchPerformedEvent", producer.msg.Headers["event-type"])
	assert.Equal(t, "1.0.0", producer.msg.Headers["event-version"])
	assert.Equal(t, "trace-1", producer.msg.Headers["x-trace-id"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(producer.msg.Body, &body))
	assert.Equal(t, "8b4b5d86-4d55-4a1e-9e5c-0c1f3c8de9a1", body["event_id"])
	assert.Equal(t, []any{"price", "location"}, body["dimensions"])
	assert.NotContains(t, body, "location")
}

func TestPublishSearchPerformed_RejectsInvalidEvent(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(producer, "search.performed")
	require.NoError(t, err)

	bad := event()
	bad.Dimensions = []string{"name"}
	err = adapter.PublishSearchPerformed(context.Background(), bad)
	assert.ErrorContains(t, err, "invalid search event")
	assert.Empty(t, producer.routingKey, "nothing is published")
}

func TestPublishSearchPerformed_ProducerError(t *testing.T) {
	producer := &fakePublisher{err: errors.New("channel closed")}
	adapter, err := NewSearchEventsAdapter(producer, "search.performed")
	require.NoError(t, err)

	err = adapter.PublishSearchPerformed(context.Background(), event())
	assert.EqualError(t, err, "channel closed")
}

type recordingLogger struct {
	levels []string
	fields []port.Fields
}

func (l *recordingLogger) record(level string, fields port.Fields) {
	l.levels = append(l.levels, level)
	l.fields = append(l.fields, fields)
}
func (l *recordingLogger) Info(msg string, fields port.Fields)  { l.record("info", fields) }
func (l *recordingLogger) Warn(msg string, fields port.Fields)  { l.record("warn", fields) }
func (l *recordingLogger) Debug(msg string, fields port.Fields) { l.record("debug", fields) }
func (l *recordingLogger) Error(msg string, err error, fields port.Fields) {
	l.record("error", fields)
}
func (l *recordingLogger) WithFields(fields port.Fields) port.LoggerPort { return l }

func TestPkgLoggerBridge(t *testing.T) {
	internal := &recordingLogger{}
	bridge := NewPkgLoggerBridge(internal)

	bridge.Debug("declaring", "name", "listing_search_exchange", 42, "ignored", "dangling")
	bridge.Error(errors.New("boom"), "failed")

	assert.Equal(t, []string{"debug", "error"}, internal.levels)
	assert.Equal(t, port.Fields{"name": "listing_search_exchange"}, internal.fields[0])
	assert.Empty(t, internal.fields[1])
}

func TestPublishSearchPerformed_LogsThroughContext(t *testing.T) {
	internal := &recordingLogger{}
	ctx := contextkeys.ContextWithLogger(context.Background(), internal)
	adapter, err := NewSearchEventsAdapter(&fakePublisher{}, "search.performed")
	require.NoError(t, err)

	require.NoError(t, adapter.PublishSearchPerformed(ctx, event()))
	assert.Equal(t, []string{"debug"}, internal.levels)
}
