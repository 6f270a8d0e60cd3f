package handler

import (
	"net/http"

	"coveradvisor/internal/service"
)

// ScrapeHandler handles scrape pipeline endpoints
type ScrapeHandler struct {
	scrapeSvc *service.ScrapeService
}

// NewScrapeHandler creates a new scrape handler
func NewScrapeHandler(scrapeSvc *service.ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{scrapeSvc: scrapeSvc}
}

// Trigger handles POST /v1/scrape/companies
func (h *ScrapeHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scrapeSvc.ScrapeActiveCompanies(r.Context())
	if err == service.ErrScrapeInProgress {
		writeError(w, http.StatusConflict, "a scrape run is already in progress")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Status handles GET /v1/scrape/status
func (h *ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scrapeSvc.LastRun(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "no scrape has completed yet")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
