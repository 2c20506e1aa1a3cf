package port

import (
	"context"
	"rental-search-service/internal/core/domain"
)

// ListingStorePort is the read side of the listing storage.
type ListingStorePort interface {
	// FindListings returns listings satisfying every predicate, ordered by posted date (newest
	// first) then id. Records carry a nested "location" object and camelCase keys.
	FindListings(ctx context.Context, predicates []domain.Predicate, page domain.Page) ([]domain.ListingRecord, error)

	// GetListingDetails returns domain.ErrListingNotFound when no listing has the id.
	GetListingDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error)
}
