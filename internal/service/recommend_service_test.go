package service

import (
	"context"
	"errors"
	"testing"

	"coveradvisor/internal/engine"
	"coveradvisor/internal/model"
)

type failingRuleSource struct {
	err error
}

func (s *failingRuleSource) FetchActiveRules(ctx context.Context) ([]model.Rule, error) {
	return nil, s.err
}

func TestRecommendForProfilePropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("store is down")
	svc := NewRecommendService(&failingRuleSource{err: fetchErr}, engine.New(engine.DefaultConfig()))

	recs, err := svc.RecommendForProfile(context.Background(), model.Profile{Age: 30})
	if err != fetchErr {
		t.Errorf("error = %v, want the source error unmodified", err)
	}
	if recs != nil {
		t.Errorf("recommendations = %v, want nil on fetch failure", recs)
	}
}

func TestRecommendForProfileEvaluates(t *testing.T) {
	source := NewStaticRuleSource(engine.BuiltinRules())
	svc := NewRecommendService(source, engine.New(engine.DefaultConfig()))

	recs, err := svc.RecommendForProfile(context.Background(), model.Profile{
		Age:           30,
		MonthlyIncome: 20000,
		Dependants:    2,
		OwnsCar:       true,
		OwnsHome:      true,
	})
	if err != nil {
		t.Fatalf("RecommendForProfile() error = %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(recs))
	}
	if recs[0].PolicyType != "Life Insurance" {
		t.Errorf("first recommendation = %q, want rule order preserved", recs[0].PolicyType)
	}
}
