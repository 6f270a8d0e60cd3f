package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"coveradvisor/internal/model"
)

const activeRulesKey = "rules:active"

// RuleSetCache handles Redis operations for the active rule set. It fronts
// the rule store only; callers treat cache errors as misses and fall back to
// the store.
type RuleSetCache interface {
	GetActive(ctx context.Context) ([]model.Rule, error)
	SetActive(ctx context.Context, rules []model.Rule) error
	Invalidate(ctx context.Context) error
}

type ruleSetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRuleSetCache creates a new rule set cache
func NewRuleSetCache(client *redis.Client, ttl time.Duration) RuleSetCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ruleSetCache{
		client: client,
		ttl:    ttl,
	}
}

// GetActive returns the cached rule set, or nil on a miss.
func (c *ruleSetCache) GetActive(ctx context.Context) ([]model.Rule, error) {
	data, err := c.client.Get(ctx, activeRulesKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rules []model.Rule
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (c *ruleSetCache) SetActive(ctx context.Context, rules []model.Rule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeRulesKey, data, c.ttl).Err()
}

func (c *ruleSetCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, activeRulesKey).Err()
}
