package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coveradvisor/internal/model"
	"coveradvisor/internal/repository"
)

var ErrInvalidPayload = errors.New("invalid ingestion payload")

// IngestResult reports what one ingestion run stored.
type IngestResult struct {
	Status          string `json:"status"`
	ProductID       string `json:"productId"`
	PolicyType      string `json:"policyType"`
	FeaturesCreated int    `json:"featuresCreated"`
}

// IngestService turns raw product payloads into companies, products, and
// extracted features.
type IngestService struct {
	companies repository.CompanyRepo
	products  repository.ProductRepo
	features  repository.FeatureRepo
}

// NewIngestService creates a new ingestion service
func NewIngestService(companies repository.CompanyRepo, products repository.ProductRepo, features repository.FeatureRepo) *IngestService {
	return &IngestService{
		companies: companies,
		products:  products,
		features:  features,
	}
}

// IngestRaw normalizes one payload, gets or creates its company, upserts the
// product, and replaces the product's extracted features.
func (s *IngestService) IngestRaw(ctx context.Context, payload model.RawProductPayload) (*IngestResult, error) {
	normalized := NormalizeProduct(payload)
	if normalized.CompanyName == "" {
		return nil, fmt.Errorf("%w: companyName is required", ErrInvalidPayload)
	}
	if normalized.ProductName == "" {
		return nil, fmt.Errorf("%w: productName is required", ErrInvalidPayload)
	}

	company, err := s.companies.GetOrCreate(ctx, normalized.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company %q: %w", normalized.CompanyName, err)
	}

	product := &model.InsuranceProduct{
		CompanyID:  company.ID,
		Name:       normalized.ProductName,
		PolicyType: normalized.PolicyType,
		SourceURL:  payload.SourceURL,
		RawText:    payload.RawText,
	}
	stored, err := s.products.Upsert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product %q: %w", normalized.ProductName, err)
	}

	extracted := ExtractFeatures(payload.RawText)
	count, err := s.features.ReplaceForProduct(ctx, stored.ID, extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to store features for %q: %w", normalized.ProductName, err)
	}

	log.Printf("[Ingest] %s / %s -> %s, %d features", normalized.CompanyName, normalized.ProductName, normalized.PolicyType, count)
	return &IngestResult{
		Status:          "ingested",
		ProductID:       stored.ID.Hex(),
		PolicyType:      normalized.PolicyType,
		FeaturesCreated: count,
	}, nil
}
