package service

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"coveradvisor/internal/cache"
	"coveradvisor/internal/model"
	"coveradvisor/internal/repository"
)

var (
	ErrRuleNotFound = errors.New("rule not found")
	ErrRuleExists   = errors.New("rule already exists")
)

// RuleService manages the rule store and serves its active rule set with a
// Redis cache in front. The store stays authoritative: cache failures are
// logged and treated as misses, and every mutation invalidates the cache.
type RuleService struct {
	repo  repository.RuleRepo
	cache cache.RuleSetCache
}

// NewRuleService creates a new rule service
func NewRuleService(repo repository.RuleRepo, ruleCache cache.RuleSetCache) *RuleService {
	return &RuleService{
		repo:  repo,
		cache: ruleCache,
	}
}

// FetchActiveRules returns the active rules in serving order, from cache when
// warm. Store errors propagate unmodified.
func (s *RuleService) FetchActiveRules(ctx context.Context) ([]model.Rule, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			log.Printf("[Rules] cache read failed, falling back to store: %v", err)
		}
		if len(cached) > 0 {
			return cached, nil
		}
	}

	rules, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(rules) > 0 {
		if err := s.cache.SetActive(ctx, rules); err != nil {
			log.Printf("[Rules] cache write failed: %v", err)
		}
	}
	return rules, nil
}

// Create stores a new rule and invalidates the cached rule set.
func (s *RuleService) Create(ctx context.Context, rule *model.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetByPolicyType(ctx, rule.PolicyType)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrRuleExists
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return err
	}
	s.invalidate(ctx)
	log.Printf("[Rules] created rule %q", rule.PolicyType)
	return nil
}

// Get returns one rule by policy type.
func (s *RuleService) Get(ctx context.Context, policyType string) (*model.Rule, error) {
	rule, err := s.repo.GetByPolicyType(ctx, policyType)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// List returns every stored rule, active or not.
func (s *RuleService) List(ctx context.Context) ([]model.Rule, error) {
	return s.repo.List(ctx)
}

// Update replaces the rule with the same policy type and invalidates the
// cached rule set.
func (s *RuleService) Update(ctx context.Context, rule *model.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	err := s.repo.Update(ctx, rule)
	if err == mongo.ErrNoDocuments {
		return ErrRuleNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	log.Printf("[Rules] updated rule %q", rule.PolicyType)
	return nil
}

// Delete removes a rule and invalidates the cached rule set.
func (s *RuleService) Delete(ctx context.Context, policyType string) error {
	err := s.repo.Delete(ctx, policyType)
	if err == mongo.ErrNoDocuments {
		return ErrRuleNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	log.Printf("[Rules] deleted rule %q", policyType)
	return nil
}

func (s *RuleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[Rules] cache invalidation failed: %v", err)
	}
}
