package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"coveradvisor/internal/cache"
	"coveradvisor/internal/model"
	"coveradvisor/internal/repository"
)

// Scrape progress event types pushed over the WebSocket hub.
const (
	EventScrapeStarted   = "scrape_started"
	EventCompanyScraped  = "company_scraped"
	EventScrapeCompleted = "scrape_completed"
)

var ErrScrapeInProgress = errors.New("a scrape run is already in progress")

// ScrapeService runs the scrape pipeline over the active companies. Per
// company failures are captured into the run summary and never abort the
// run.
type ScrapeService struct {
	companies   repository.CompanyRepo
	ingest      *IngestService
	scraper     *ScraperClient
	cache       cache.ScrapeCache
	broadcaster Broadcaster
}

// NewScrapeService creates a new scrape service
func NewScrapeService(companies repository.CompanyRepo, ingest *IngestService, scraper *ScraperClient, scrapeCache cache.ScrapeCache) *ScrapeService {
	return &ScrapeService{
		companies: companies,
		ingest:    ingest,
		scraper:   scraper,
		cache:     scrapeCache,
	}
}

// SetBroadcaster wires the WebSocket hub in after construction
func (s *ScrapeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ScrapeActiveCompanies fetches every active company's product page and
// ingests what it finds, reporting per-company outcomes. Only one run may be
// in flight at a time.
func (s *ScrapeService) ScrapeActiveCompanies(ctx context.Context) (*model.ScrapeSummary, error) {
	if s.cache != nil {
		running, err := s.cache.GetRunning(ctx)
		if err != nil {
			log.Printf("[Scrape] running-state check failed: %v", err)
		}
		if running != "" {
			return nil, ErrScrapeInProgress
		}
	}

	companies, err := s.companies.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	jobID := "job_" + uuid.New().String()[:8]
	if s.cache != nil {
		if err := s.cache.SetRunning(ctx, jobID); err != nil {
			log.Printf("[Scrape] failed to mark run %s in flight: %v", jobID, err)
		}
		defer func() {
			if err := s.cache.ClearRunning(context.Background()); err != nil {
				log.Printf("[Scrape] failed to clear running marker: %v", err)
			}
		}()
	}

	log.Printf("[Scrape] run %s starting over %d companies", jobID, len(companies))
	s.broadcast(EventScrapeStarted, map[string]interface{}{
		"jobId":     jobID,
		"companies": len(companies),
	})

	summary := &model.ScrapeSummary{
		JobID:     jobID,
		Status:    "completed",
		Results:   make([]model.ScrapeResult, 0, len(companies)),
		StartedAt: time.Now(),
	}
	for _, company := range companies {
		result := s.scrapeCompany(ctx, company)
		summary.Results = append(summary.Results, result)
		summary.ItemsProcessed += result.Products

		s.broadcast(EventCompanyScraped, map[string]interface{}{
			"jobId":    jobID,
			"company":  result.Company,
			"products": result.Products,
			"features": result.Features,
			"error":    result.Error,
		})
	}
	summary.FinishedAt = time.Now()

	if s.cache != nil {
		if err := s.cache.SetLast(ctx, summary); err != nil {
			log.Printf("[Scrape] failed to store run summary: %v", err)
		}
	}

	s.broadcast(EventScrapeCompleted, map[string]interface{}{
		"jobId":          jobID,
		"itemsProcessed": summary.ItemsProcessed,
	})
	log.Printf("[Scrape] run %s completed, %d products", jobID, summary.ItemsProcessed)
	return summary, nil
}

// LastRun returns the most recent run summary, or nil if none is recorded.
func (s *ScrapeService) LastRun(ctx context.Context) (*model.ScrapeSummary, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache.GetLast(ctx)
}

func (s *ScrapeService) scrapeCompany(ctx context.Context, company model.Company) model.ScrapeResult {
	result := model.ScrapeResult{Company: company.Name}

	payloads, err := s.scraper.FetchCompanyProducts(ctx, company)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	for _, payload := range payloads {
		ingested, err := s.ingest.IngestRaw(ctx, payload)
		if err != nil {
			log.Printf("[Scrape] %s: ingest %q failed: %v", company.Name, payload.ProductName, err)
			result.Error = err.Error()
			continue
		}
		result.Products++
		result.Features += ingested.FeaturesCreated
	}
	return result
}

func (s *ScrapeService) broadcast(msgType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastScrape(msgType, payload)
}
