package usecase

import (
	"context"
	"errors"
	"fmt"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"time"
)

// SearchOptions - tunables of the search use case.
type SearchOptions struct {
	RadiusKm     float64
	QueryTimeout time.Duration // 0 disables the deadline
}

type SearchListingsUseCase struct {
	store  port.ListingStorePort
	events port.SearchEventsPort
	opts   SearchOptions
}

// NewSearchListingsUseCase - events may be nil when nothing subscribes to searches.
func NewSearchListingsUseCase(store port.ListingStorePort, events port.SearchEventsPort, opts SearchOptions) *SearchListingsUseCase {
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = domain.DefaultSearchRadiusKm
	}
	return &SearchListingsUseCase{store: store, events: events, opts: opts}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filter domain.Filter, page domain.Page) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"limit":    page.Limit,
		"offset":   page.Offset,
	})

	// Inverted ranges can never match, the store is not consulted.
	if filter.Contradictory() {
		ucLogger.Info("Filter has min greater than max, returning empty result", nil)
		return []domain.ListingRecord{}, nil
	}

	predicates := domain.BuildPredicates(filter, uc.opts.RadiusKm)
	ucLogger.Debug("Use case started", port.Fields{"predicates": len(predicates)})

	queryCtx := ctx
	if uc.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, uc.opts.QueryTimeout)
		defer cancel()
	}

	startTime := time.Now()
	records, err := uc.store.FindListings(queryCtx, predicates, page)
	took := time.Since(startTime)
	if err != nil {
		retrievalErr := asRetrievalError(err)
		if errors.Is(queryCtx.Err(), context.DeadlineExceeded) {
			retrievalErr = domain.NewRetrievalError(fmt.Errorf("query timed out after %s: %w", uc.opts.QueryTimeout, err))
		}
		ucLogger.Error("Storage returned an error", retrievalErr, port.Fields{"duration_ms": took.Milliseconds()})
		return nil, retrievalErr
	}
	if records == nil {
		records = []domain.ListingRecord{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": len(records),
		"duration_ms": took.Milliseconds(),
	})

	uc.publish(ctx, ucLogger, filter, predicates, len(records), took)
	return records, nil
}

// publish is best-effort: a broker outage must not fail the search.
func (uc *SearchListingsUseCase) publish(ctx context.Context, logger port.LoggerPort, filter domain.Filter, predicates []domain.Predicate, found int, took time.Duration) {
	if uc.events == nil {
		return
	}
	event := domain.NewSearchPerformed(contextkeys.TraceIDFromContext(ctx), filter, predicates, found, took)
	if err := uc.events.PublishSearchPerformed(ctx, event); err != nil {
		logger.Warn("Failed to publish search event", port.Fields{"error": err.Error(), "event_id": event.EventID.String()})
	}
}

func asRetrievalError(err error) *domain.RetrievalError {
	var retrievalErr *domain.RetrievalError
	if errors.As(err, &retrievalErr) {
		return retrievalErr
	}
	return domain.NewRetrievalError(err)
}
