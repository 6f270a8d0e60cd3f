package handler

import (
	"encoding/json"
	"net/http"

	"coveradvisor/internal/model"
	"coveradvisor/internal/service"
)

// CatalogHandler handles company and product catalogue endpoints
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// AddCompanyRequest is the request body for registering a scrape target
type AddCompanyRequest struct {
	Name           string `json:"name"`
	Website        string `json:"website,omitempty"`
	ProductPageURL string `json:"productPageUrl,omitempty"`
}

// ListCompanies handles GET /v1/companies
func (h *CatalogHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.catalogSvc.ListCompanies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

// AddCompany handles POST /v1/companies
func (h *CatalogHandler) AddCompany(w http.ResponseWriter, r *http.Request) {
	var req AddCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	company := &model.Company{
		Name:           req.Name,
		Website:        req.Website,
		ProductPageURL: req.ProductPageURL,
		Active:         true,
	}

	id, err := h.catalogSvc.AddCompany(r.Context(), company)
	if err == service.ErrCompanyExists {
		writeError(w, http.StatusConflict, "company already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"companyId": id})
}

// ListProducts handles GET /v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}
