package handler

import (
	"encoding/json"
	"net/http"

	"coveradvisor/internal/model"
	"coveradvisor/internal/service"

	"github.com/gorilla/mux"
)

// RuleHandler handles rule store endpoints
type RuleHandler struct {
	ruleSvc *service.RuleService
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(ruleSvc *service.RuleService) *RuleHandler {
	return &RuleHandler{ruleSvc: ruleSvc}
}

// List handles GET /v1/rules
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// Get handles GET /v1/rules/{policyType}
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	policyType := mux.Vars(r)["policyType"]

	rule, err := h.ruleSvc.Get(r.Context(), policyType)
	if err == service.ErrRuleNotFound {
		writeError(w, http.StatusNotFound, "rule not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// Create handles POST /v1/rules
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rule model.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.ruleSvc.Create(r.Context(), &rule)
	if err == service.ErrRuleExists {
		writeError(w, http.StatusConflict, "rule already exists for this policy type")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"policyType": rule.PolicyType})
}

// Update handles PUT /v1/rules/{policyType}
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	policyType := mux.Vars(r)["policyType"]

	var rule model.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The path segment names the rule; the body cannot rename it
	rule.PolicyType = policyType

	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.ruleSvc.Update(r.Context(), &rule)
	if err == service.ErrRuleNotFound {
		writeError(w, http.StatusNotFound, "rule not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// Delete handles DELETE /v1/rules/{policyType}
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	policyType := mux.Vars(r)["policyType"]

	err := h.ruleSvc.Delete(r.Context(), policyType)
	if err == service.ErrRuleNotFound {
		writeError(w, http.StatusNotFound, "rule not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
