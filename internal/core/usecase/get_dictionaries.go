package usecase

import (
	"context"
	"rental-search-service/internal/core/domain"
)

type GetDictionariesUseCase struct {
	dictionaries domain.Dictionaries
}

func NewGetDictionariesUseCase() *GetDictionariesUseCase {
	return &GetDictionariesUseCase{dictionaries: domain.BuildDictionaries()}
}

func (uc *GetDictionariesUseCase) Execute(ctx context.Context) (domain.Dictionaries, error) {
	return uc.dictionaries, nil
}
