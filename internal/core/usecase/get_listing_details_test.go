package usecase

import (
	"context"
	"errors"
	"rental-search-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetListingDetails(t *testing.T) {
	want := &domain.ListingDetails{Listing: domain.ListingRecord{"id": int64(3)}, Leases: []domain.Lease{}}
	uc := NewGetListingDetailsUseCase(&fakeStore{details: want})

	got, err := uc.Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestGetListingDetails_NotFoundPassesThrough(t *testing.T) {
	uc := NewGetListingDetailsUseCase(&fakeStore{err: domain.ErrListingNotFound})

	_, err := uc.Execute(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.NotErrorIs(t, err, domain.ErrRetrievalFailed)
}

func TestGetListingDetails_StorageError(t *testing.T) {
	uc := NewGetListingDetailsUseCase(&fakeStore{err: errors.New("connection reset")})

	_, err := uc.Execute(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrRetrievalFailed)
}

func TestGetDictionaries(t *testing.T) {
	uc := NewGetDictionariesUseCase()

	d, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BuildDictionaries(), d)
}
