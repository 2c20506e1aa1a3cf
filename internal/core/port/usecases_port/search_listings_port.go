package usecases_port

import (
	"context"
	"rental-search-service/internal/core/domain"
)

type SearchListingsUseCase interface {
	Execute(ctx context.Context, filter domain.Filter, page domain.Page) ([]domain.ListingRecord, error)
}
