package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"coveradvisor/internal/model"
)

type fakeRuleRepo struct {
	rules       map[string]*model.Rule
	listActives int
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*model.Rule)}
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *model.Rule) error {
	stored := *rule
	f.rules[rule.PolicyType] = &stored
	return nil
}

func (f *fakeRuleRepo) GetByPolicyType(ctx context.Context, policyType string) (*model.Rule, error) {
	r, ok := f.rules[policyType]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

func (f *fakeRuleRepo) ListActive(ctx context.Context) ([]model.Rule, error) {
	f.listActives++
	var out []model.Rule
	for _, r := range f.rules {
		if r.Active {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeRuleRepo) List(ctx context.Context) ([]model.Rule, error) {
	var out []model.Rule
	for _, r := range f.rules {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeRuleRepo) Update(ctx context.Context, rule *model.Rule) error {
	if _, ok := f.rules[rule.PolicyType]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *rule
	f.rules[rule.PolicyType] = &stored
	return nil
}

func (f *fakeRuleRepo) Delete(ctx context.Context, policyType string) error {
	if _, ok := f.rules[policyType]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.rules, policyType)
	return nil
}

type fakeRuleSetCache struct {
	rules  []model.Rule
	getErr error
}

func (f *fakeRuleSetCache) GetActive(ctx context.Context) ([]model.Rule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rules, nil
}

func (f *fakeRuleSetCache) SetActive(ctx context.Context, rules []model.Rule) error {
	f.rules = rules
	return nil
}

func (f *fakeRuleSetCache) Invalidate(ctx context.Context) error {
	f.rules = nil
	return nil
}

func storeRule(policyType string, sortOrder int) *model.Rule {
	return &model.Rule{
		PolicyType:     policyType,
		BaseConfidence: 50,
		SortOrder:      sortOrder,
		Active:         true,
	}
}

func TestFetchActiveRulesWarmsAndUsesCache(t *testing.T) {
	repo := newFakeRuleRepo()
	ruleCache := &fakeRuleSetCache{}
	svc := NewRuleService(repo, ruleCache)

	if err := svc.Create(context.Background(), storeRule("Life Insurance", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := svc.FetchActiveRules(context.Background())
	if err != nil {
		t.Fatalf("FetchActiveRules() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d rules, want 1", len(first))
	}
	if repo.listActives != 1 {
		t.Fatalf("store reads = %d, want 1", repo.listActives)
	}

	// Second fetch must come from the cache.
	if _, err := svc.FetchActiveRules(context.Background()); err != nil {
		t.Fatalf("FetchActiveRules() error = %v", err)
	}
	if repo.listActives != 1 {
		t.Errorf("store reads = %d, want the warm cache to absorb the second fetch", repo.listActives)
	}
}

func TestFetchActiveRulesFallsBackOnCacheError(t *testing.T) {
	repo := newFakeRuleRepo()
	repo.rules["Funeral Cover"] = storeRule("Funeral Cover", 1)
	svc := NewRuleService(repo, &fakeRuleSetCache{getErr: errors.New("redis down")})

	rules, err := svc.FetchActiveRules(context.Background())
	if err != nil {
		t.Fatalf("FetchActiveRules() error = %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("got %d rules, want the store to serve despite the cache error", len(rules))
	}
}

func TestRuleMutationsInvalidateCache(t *testing.T) {
	repo := newFakeRuleRepo()
	ruleCache := &fakeRuleSetCache{}
	svc := NewRuleService(repo, ruleCache)

	if err := svc.Create(context.Background(), storeRule("Life Insurance", 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FetchActiveRules(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(ruleCache.rules) == 0 {
		t.Fatal("cache not warmed by fetch")
	}

	updated := storeRule("Life Insurance", 1)
	updated.BaseConfidence = 60
	if err := svc.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ruleCache.rules != nil {
		t.Error("update did not invalidate the cached rule set")
	}

	if _, err := svc.FetchActiveRules(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), "Life Insurance"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ruleCache.rules != nil {
		t.Error("delete did not invalidate the cached rule set")
	}
}

func TestRuleServiceSentinels(t *testing.T) {
	svc := NewRuleService(newFakeRuleRepo(), &fakeRuleSetCache{})

	if _, err := svc.Get(context.Background(), "Nope"); err != ErrRuleNotFound {
		t.Errorf("Get(missing) error = %v, want ErrRuleNotFound", err)
	}
	if err := svc.Update(context.Background(), storeRule("Nope", 1)); err != ErrRuleNotFound {
		t.Errorf("Update(missing) error = %v, want ErrRuleNotFound", err)
	}
	if err := svc.Delete(context.Background(), "Nope"); err != ErrRuleNotFound {
		t.Errorf("Delete(missing) error = %v, want ErrRuleNotFound", err)
	}

	if err := svc.Create(context.Background(), storeRule("Life Insurance", 1)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(context.Background(), storeRule("Life Insurance", 2)); err != ErrRuleExists {
		t.Errorf("Create(duplicate) error = %v, want ErrRuleExists", err)
	}

	bad := storeRule("Broken", 1)
	bad.BaseConfidence = 200
	if err := svc.Create(context.Background(), bad); err == nil {
		t.Error("Create(invalid rule) = nil, want validation error")
	}
}
