package rest

import (
	"net/http"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/port/usecases_port"
)

type DictionariesHandler struct {
	getDictionariesUC usecases_port.GetDictionariesUseCase
}

func NewDictionariesHandler(getDictionariesUC usecases_port.GetDictionariesUseCase) *DictionariesHandler {
	return &DictionariesHandler{getDictionariesUC: getDictionariesUC}
}

// GetDictionaries handles GET /api/v1/dictionaries
func (h *DictionariesHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	dictionaries, err := h.getDictionariesUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get dictionaries")
		return
	}

	RespondWithJSON(w, http.StatusOK, DictionariesResponse{
		PropertyTypes: toDictionaryItems(dictionaries.PropertyTypes),
		Amenities:     toDictionaryItems(dictionaries.Amenities),
		Highlights:    toDictionaryItems(dictionaries.Highlights),
	})
}
