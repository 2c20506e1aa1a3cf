package rest

import (
	"rental-search-service/internal/core/domain"
	"time"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type LeaseResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listingId"`
	TenantID  string    `json:"tenantId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Rent      float64   `json:"rent"`
	Deposit   float64   `json:"deposit"`
}

type ListingDetailsResponse struct {
	Listing domain.ListingRecord `json:"listing"`
	Leases  []LeaseResponse      `json:"leases"`
}

type DictionaryItemResponse struct {
	SystemName  string `json:"systemName"`
	DisplayName string `json:"displayName"`
}

type DictionariesResponse struct {
	PropertyTypes []DictionaryItemResponse `json:"propertyTypes"`
	Amenities     []DictionaryItemResponse `json:"amenities"`
	Highlights    []DictionaryItemResponse `json:"highlights"`
}

func toLeaseResponses(leases []domain.Lease) []LeaseResponse {
	out := make([]LeaseResponse, len(leases))
	for i, l := range leases {
		out[i] = LeaseResponse{
			ID:        l.ID,
			ListingID: l.ListingID,
			TenantID:  l.TenantID,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			Rent:      l.Rent,
			Deposit:   l.Deposit,
		}
	}
	return out
}

func toDictionaryItems(items []domain.DictionaryItem) []DictionaryItemResponse {
	out := make([]DictionaryItemResponse, len(items))
	for i, item := range items {
		out[i] = DictionaryItemResponse{SystemName: item.SystemName, DisplayName: item.DisplayName}
	}
	return out
}
