package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"coveradvisor/internal/model"
)

const (
	scrapeLastKey    = "scrape:last"
	scrapeRunningKey = "scrape:running"
)

// ScrapeCache handles Redis operations for scrape run state: a running
// marker so overlapping runs can be refused, and the last run's summary.
type ScrapeCache interface {
	SetRunning(ctx context.Context, jobID string) error
	GetRunning(ctx context.Context) (string, error)
	ClearRunning(ctx context.Context) error
	SetLast(ctx context.Context, summary *model.ScrapeSummary) error
	GetLast(ctx context.Context) (*model.ScrapeSummary, error)
}

type scrapeCache struct {
	client     *redis.Client
	runningTTL time.Duration
}

// NewScrapeCache creates a new scrape state cache
func NewScrapeCache(client *redis.Client) ScrapeCache {
	return &scrapeCache{
		client: client,
		// A run that outlives this is assumed dead.
		runningTTL: 30 * time.Minute,
	}
}

func (c *scrapeCache) SetRunning(ctx context.Context, jobID string) error {
	return c.client.Set(ctx, scrapeRunningKey, jobID, c.runningTTL).Err()
}

// GetRunning returns the running job id, or "" when no run is in flight.
func (c *scrapeCache) GetRunning(ctx context.Context) (string, error) {
	jobID, err := c.client.Get(ctx, scrapeRunningKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return jobID, nil
}

func (c *scrapeCache) ClearRunning(ctx context.Context) error {
	return c.client.Del(ctx, scrapeRunningKey).Err()
}

func (c *scrapeCache) SetLast(ctx context.Context, summary *model.ScrapeSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scrapeLastKey, data, 0).Err()
}

// GetLast returns the last run summary, or nil if none is recorded.
func (c *scrapeCache) GetLast(ctx context.Context) (*model.ScrapeSummary, error) {
	data, err := c.client.Get(ctx, scrapeLastKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.ScrapeSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
