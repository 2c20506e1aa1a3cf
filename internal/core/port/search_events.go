package port

import (
	"context"
	"rental-search-service/internal/core/domain"
)

// SearchEventsPort publishes facts about executed searches.
type SearchEventsPort interface {
	PublishSearchPerformed(ctx context.Context, event domain.SearchPerformed) error
}
