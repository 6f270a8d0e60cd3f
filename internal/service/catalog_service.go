package service

import (
	"context"
	"errors"
	"log"

	"coveradvisor/internal/model"
	"coveradvisor/internal/repository"
)

var ErrCompanyExists = errors.New("company already exists")

// CatalogService manages scrape targets and exposes the ingested catalogue
// for admin inspection.
type CatalogService struct {
	companies repository.CompanyRepo
	products  repository.ProductRepo
}

// NewCatalogService creates a new catalog service
func NewCatalogService(companies repository.CompanyRepo, products repository.ProductRepo) *CatalogService {
	return &CatalogService{
		companies: companies,
		products:  products,
	}
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.companies.List(ctx)
}

// AddCompany registers a new scrape target.
func (s *CatalogService) AddCompany(ctx context.Context, company *model.Company) (string, error) {
	existing, err := s.companies.GetByName(ctx, company.Name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrCompanyExists
	}

	id, err := s.companies.Create(ctx, company)
	if err != nil {
		return "", err
	}
	log.Printf("[Catalog] added company %q", company.Name)
	return id, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]model.InsuranceProduct, error) {
	return s.products.List(ctx)
}
