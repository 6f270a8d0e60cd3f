package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coveradvisor/internal/model"
	"coveradvisor/internal/service"
)

// IngestHandler handles raw product ingestion endpoints
type IngestHandler struct {
	ingestSvc *service.IngestService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestSvc *service.IngestService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc}
}

// IngestRaw handles POST /v1/ingest/raw
func (h *IngestHandler) IngestRaw(w http.ResponseWriter, r *http.Request) {
	var payload model.RawProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ingestSvc.IngestRaw(r.Context(), payload)
	if errors.Is(err, service.ErrInvalidPayload) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
