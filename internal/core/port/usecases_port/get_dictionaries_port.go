package usecases_port

import (
	"context"
	"rental-search-service/internal/core/domain"
)

type GetDictionariesUseCase interface {
	Execute(ctx context.Context) (domain.Dictionaries, error)
}
