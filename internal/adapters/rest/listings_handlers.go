package rest

import (
	"errors"
	"net/http"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"rental-search-service/internal/core/port/usecases_port"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PagingConfig bounds the limit query parameter.
type PagingConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type ListingsHandler struct {
	searchListingsUC    usecases_port.SearchListingsUseCase
	getListingDetailsUC usecases_port.GetListingDetailsUseCase
	paging              PagingConfig
}

func NewListingsHandler(searchListingsUC usecases_port.SearchListingsUseCase,
	getListingDetailsUC usecases_port.GetListingDetailsUseCase,
	paging PagingConfig) *ListingsHandler {
	if paging.DefaultLimit <= 0 {
		paging.DefaultLimit = 100
	}
	if paging.MaxLimit < paging.DefaultLimit {
		paging.MaxLimit = paging.DefaultLimit
	}
	return &ListingsHandler{
		searchListingsUC:    searchListingsUC,
		getListingDetailsUC: getListingDetailsUC,
		paging:              paging,
	}
}

// SearchListings handles GET /api/v1/listings
func (h *ListingsHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	limit, err := GetLimitOrDefault(r, h.paging.DefaultLimit, h.paging.MaxLimit)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := GetOffsetOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, anomalies := domain.NormalizeFilter(r.URL.Query())

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "SearchListings",
		"limit":   limit,
		"offset":  offset,
	})
	for _, a := range anomalies {
		handlerLogger.Debug("Ignoring filter value", port.Fields{"field": a.Field, "value": a.Value, "reason": a.Reason})
	}

	records, err := h.searchListingsUC.Execute(r.Context(), filter, domain.Page{Limit: limit, Offset: offset})
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Error retrieving properties: "+retrievalCause(err))
		return
	}

	handlerLogger.Info("Successfully found listings", port.Fields{"items_on_page": len(records)})
	RespondWithJSON(w, http.StatusOK, records)
}

// GetListingDetails handles GET /api/v1/listings/{listingID}
func (h *ListingsHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingIDStr := chi.URLParam(r, "listingID")
	listingID, err := strconv.ParseInt(listingIDStr, 10, 64)
	if err != nil || listingID <= 0 {
		logger.Warn("Invalid listing ID format", port.Fields{"listing_id": listingIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "GetListingDetails",
		"listing_id": listingID,
	})

	details, err := h.getListingDetailsUC.Execute(r.Context(), listingID)
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, http.StatusNotFound, "Listing not found")
		return
	case err != nil:
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Error retrieving property: "+retrievalCause(err))
		return
	}

	RespondWithJSON(w, http.StatusOK, ListingDetailsResponse{
		Listing: details.Listing,
		Leases:  toLeaseResponses(details.Leases),
	})
}

// retrievalCause is the storage message behind err.
func retrievalCause(err error) string {
	var retrievalErr *domain.RetrievalError
	if errors.As(err, &retrievalErr) && retrievalErr.Cause() != "" {
		return retrievalErr.Cause()
	}
	return err.Error()
}
