package usecase

import (
	"context"
	"errors"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	store port.ListingStorePort
}

func NewGetListingDetailsUseCase(store port.ListingStorePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{store: store}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": listingID,
	})

	details, err := uc.store.GetListingDetails(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Info("Listing not found", nil)
			return nil, err
		}
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, asRetrievalError(err)
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"leases": len(details.Leases)})
	return details, nil
}
