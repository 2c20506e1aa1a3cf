package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"rental-search-service/internal/constants"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/contracts"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// Publisher is satisfied by *rabbitmq_producer.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchEventsAdapter publishes search-performed events to the search exchange.
type SearchEventsAdapter struct {
	producer   Publisher
	routingKey string
}

func NewSearchEventsAdapter(producer Publisher, routingKey string) (*SearchEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &SearchEventsAdapter{producer: producer, routingKey: routingKey}, nil
}

func (a *SearchEventsAdapter) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformed) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "SearchEventsAdapter",
		"routing_key": a.routingKey,
		"event_id":    event.EventID.String(),
	})

	dimensions := event.Dimensions
	if dimensions == nil {
		dimensions = []string{}
	}
	body, err := json.Marshal(SearchPerformedEventDTO{
		EventID:     event.EventID,
		TraceID:     event.TraceID,
		OccurredAt:  event.OccurredAt,
		Dimensions:  dimensions,
		CenterHash:  event.CenterHash,
		Location:    event.Location,
		ResultCount: event.ResultCount,
		DurationMs:  event.DurationMs,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	err = contracts.ValidateEvent(constants.SearchPerformedEventType, constants.SearchPerformedEventVersion, body)
	if err != nil {
		adapterLogger.Error("Search event does not match its schema", err, nil)
		return fmt.Errorf("invalid search event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Transient,
		MessageId:    event.EventID.String(),
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"event-type":    constants.SearchPerformedEventType,
			"event-version": constants.SearchPerformedEventVersion,
		},
	}
	if event.TraceID != "" {
		msg.Headers["x-trace-id"] = event.TraceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return err
	}

	adapterLogger.Debug("Published search event", port.Fields{"result_count": event.ResultCount})
	return nil
}
