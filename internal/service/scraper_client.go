package service

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"coveradvisor/internal/model"
)

// maxPageBytes bounds how much of a product page is read.
const maxPageBytes = 1 << 20

// maxProductsPerPage caps how many headings one page may contribute.
const maxProductsPerPage = 10

var (
	scriptRe  = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	headingRe = regexp.MustCompile(`(?is)<h[23][^>]*>(.*?)</h[23]>`)
)

// productWords gates which page headings count as product names.
var productWords = []string{
	"insurance", "cover", "plan", "policy",
	"funeral", "life", "vehicle", "car", "home", "accident",
}

// ScraperClient fetches insurers' public product pages over plain HTTP with
// bounded retries. No headless browser, no search engine.
type ScraperClient struct {
	httpClient *http.Client
	maxRetries int
	userAgent  string
}

// NewScraperClient creates a new scraper client
func NewScraperClient(timeout time.Duration, maxRetries int) *ScraperClient {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &ScraperClient{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		userAgent:  "CoverAdvisorBot/1.0 (product catalogue sync)",
	}
}

// FetchCompanyProducts downloads the company's product page and splits it
// into raw product payloads, one per recognizable product heading. A page
// with no such headings still yields a single whole-page payload.
func (c *ScraperClient) FetchCompanyProducts(ctx context.Context, company model.Company) ([]model.RawProductPayload, error) {
	if company.ProductPageURL == "" {
		return nil, fmt.Errorf("company %q has no product page configured", company.Name)
	}

	page, err := c.fetch(ctx, company.ProductPageURL)
	if err != nil {
		return nil, err
	}

	payloads := extractProducts(company, page)
	if len(payloads) == 0 {
		payloads = append(payloads, model.RawProductPayload{
			CompanyName: company.Name,
			ProductName: company.Name + " Insurance Products",
			RawText:     stripHTML(page),
			SourceURL:   company.ProductPageURL,
		})
	}
	log.Printf("[Scraper] %s: %d product payloads", company.Name, len(payloads))
	return payloads, nil
}

// fetch performs the HTTP request with retry logic
func (c *ScraperClient) fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Scraper] Retry attempt %d/%d for %s", attempt, c.maxRetries, url)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Printf("[Scraper] rate limited by %s, backing off %v", url, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("rate limited")
			continue
		}
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		return string(body), nil
	}
	return "", fmt.Errorf("max retries exceeded for %s: %w", url, lastErr)
}

// extractProducts splits a page into per-heading payloads. Only headings that
// read like product names are kept.
func extractProducts(company model.Company, page string) []model.RawProductPayload {
	matches := headingRe.FindAllStringSubmatchIndex(page, -1)

	var payloads []model.RawProductPayload
	for i, m := range matches {
		if len(payloads) >= maxProductsPerPage {
			break
		}
		title := collapseWhitespace(stripHTML(page[m[2]:m[3]]))
		if !looksLikeProduct(title) {
			continue
		}

		sectionEnd := len(page)
		if i+1 < len(matches) {
			sectionEnd = matches[i+1][0]
		}
		text := stripHTML(page[m[1]:sectionEnd])

		payloads = append(payloads, model.RawProductPayload{
			CompanyName: company.Name,
			ProductName: title,
			RawText:     text,
			SourceURL:   company.ProductPageURL,
		})
	}
	return payloads
}

func looksLikeProduct(title string) bool {
	if title == "" || len(title) > 80 {
		return false
	}
	lowered := strings.ToLower(title)
	for _, w := range productWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	return collapseWhitespace(html.UnescapeString(s))
}
