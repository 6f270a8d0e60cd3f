package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"coveradvisor/internal/model"
	"coveradvisor/internal/service"
)

// RecommendHandler handles recommendation endpoints
type RecommendHandler struct {
	recommendSvc *service.RecommendService
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(recommendSvc *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendSvc: recommendSvc}
}

// Recommend handles POST /v1/recommendations
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.recommendSvc.RecommendForProfile(r.Context(), profile)
	if err != nil {
		log.Printf("[Recommend Handler] rule fetch failed: %v", err)
		writeError(w, http.StatusBadGateway, "rule source unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profileSummary":      profile.Normalized(),
		"recommendedPolicies": recs,
	})
}
