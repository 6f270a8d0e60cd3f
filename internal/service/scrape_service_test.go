package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coveradvisor/internal/model"
)

type fakeScrapeCache struct {
	running string
	last    *model.ScrapeSummary
}

func (f *fakeScrapeCache) SetRunning(ctx context.Context, jobID string) error {
	f.running = jobID
	return nil
}

func (f *fakeScrapeCache) GetRunning(ctx context.Context) (string, error) {
	return f.running, nil
}

func (f *fakeScrapeCache) ClearRunning(ctx context.Context) error {
	f.running = ""
	return nil
}

func (f *fakeScrapeCache) SetLast(ctx context.Context, summary *model.ScrapeSummary) error {
	f.last = summary
	return nil
}

func (f *fakeScrapeCache) GetLast(ctx context.Context) (*model.ScrapeSummary, error) {
	return f.last, nil
}

type recordingBroadcaster struct {
	events []string
}

func (r *recordingBroadcaster) BroadcastScrape(msgType string, payload interface{}) {
	r.events = append(r.events, msgType)
}

func newScrapeFixture(t *testing.T, pageURL string) (*ScrapeService, *fakeScrapeCache, *recordingBroadcaster) {
	t.Helper()

	companies := newFakeCompanyRepo()
	if _, err := companies.Create(context.Background(), &model.Company{
		Name:           "AVBOB",
		ProductPageURL: pageURL,
		Active:         true,
	}); err != nil {
		t.Fatal(err)
	}

	ingest := NewIngestService(companies, newFakeProductRepo(), newFakeFeatureRepo())
	scraper := NewScraperClient(2*time.Second, 1)
	scrapeCache := &fakeScrapeCache{}
	svc := NewScrapeService(companies, ingest, scraper, scrapeCache)

	broadcaster := &recordingBroadcaster{}
	svc.SetBroadcaster(broadcaster)
	return svc, scrapeCache, broadcaster
}

func TestScrapeActiveCompaniesPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<h2>Family Funeral Plan</h2><p>Cash back benefit after 5 years. Immediate cover on accidental death.</p>`))
	}))
	defer srv.Close()

	svc, scrapeCache, broadcaster := newScrapeFixture(t, srv.URL)

	summary, err := svc.ScrapeActiveCompanies(context.Background())
	if err != nil {
		t.Fatalf("ScrapeActiveCompanies() error = %v", err)
	}

	if summary.Status != "completed" {
		t.Errorf("Status = %q, want completed", summary.Status)
	}
	if !strings.HasPrefix(summary.JobID, "job_") {
		t.Errorf("JobID = %q, want job_ prefix", summary.JobID)
	}
	if summary.ItemsProcessed != 1 {
		t.Errorf("ItemsProcessed = %d, want 1", summary.ItemsProcessed)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(summary.Results))
	}
	result := summary.Results[0]
	if result.Company != "AVBOB" || result.Products != 1 || result.Error != "" {
		t.Errorf("result = %+v", result)
	}
	if result.Features == 0 {
		t.Error("expected extracted features from the product text")
	}

	wantEvents := []string{EventScrapeStarted, EventCompanyScraped, EventScrapeCompleted}
	if strings.Join(broadcaster.events, "|") != strings.Join(wantEvents, "|") {
		t.Errorf("broadcast events = %v, want %v", broadcaster.events, wantEvents)
	}

	if scrapeCache.running != "" {
		t.Errorf("running marker not cleared: %q", scrapeCache.running)
	}
	last, err := svc.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last == nil || last.JobID != summary.JobID {
		t.Errorf("LastRun() = %+v, want the stored summary", last)
	}
}

func TestScrapeRefusedWhileRunning(t *testing.T) {
	svc, scrapeCache, _ := newScrapeFixture(t, "http://unused.invalid")
	scrapeCache.running = "job_elsewhere"

	if _, err := svc.ScrapeActiveCompanies(context.Background()); err != ErrScrapeInProgress {
		t.Errorf("error = %v, want ErrScrapeInProgress", err)
	}
}

func TestScrapeCapturesPerCompanyErrors(t *testing.T) {
	// No product page configured, so the fetch fails for this company.
	svc, _, _ := newScrapeFixture(t, "")

	summary, err := svc.ScrapeActiveCompanies(context.Background())
	if err != nil {
		t.Fatalf("ScrapeActiveCompanies() error = %v", err)
	}

	if summary.Status != "completed" {
		t.Errorf("Status = %q, a failed company must not abort the run", summary.Status)
	}
	if len(summary.Results) != 1 || summary.Results[0].Error == "" {
		t.Errorf("results = %+v, want one result carrying the error", summary.Results)
	}
	if summary.ItemsProcessed != 0 {
		t.Errorf("ItemsProcessed = %d, want 0", summary.ItemsProcessed)
	}
}
