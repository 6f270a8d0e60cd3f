package service

import (
	"context"
	"log"

	"coveradvisor/internal/engine"
	"coveradvisor/internal/model"
)

// RecommendService runs the evaluation engine over whatever rule source the
// deployment is configured with.
type RecommendService struct {
	source RuleSource
	engine *engine.Engine
}

// NewRecommendService creates a new recommendation service
func NewRecommendService(source RuleSource, eng *engine.Engine) *RecommendService {
	return &RecommendService{
		source: source,
		engine: eng,
	}
}

// RecommendForProfile fetches the active rules and evaluates the profile
// against them. A fetch failure is returned unmodified, with nothing
// evaluated; the evaluation itself cannot fail.
func (s *RecommendService) RecommendForProfile(ctx context.Context, profile model.Profile) ([]model.Recommendation, error) {
	rules, err := s.source.FetchActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	recs := s.engine.Recommend(profile, rules)
	log.Printf("[Recommend] %d of %d rules qualified", len(recs), len(rules))
	return recs, nil
}
