package service

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"coveradvisor/internal/model"
)

// RuleSource supplies the active rule set for an evaluation pass. A fetch
// failure is surfaced to the caller unmodified; sources never retry or mask
// it, and the engine itself never fetches.
type RuleSource interface {
	FetchActiveRules(ctx context.Context) ([]model.Rule, error)
}

// StaticRuleSource serves a fixed in-memory rule set. It backs the default
// deployment, where the built-in rules are the whole catalogue.
type StaticRuleSource struct {
	rules []model.Rule
}

// NewStaticRuleSource creates a rule source over the given rules
func NewStaticRuleSource(rules []model.Rule) *StaticRuleSource {
	return &StaticRuleSource{rules: rules}
}

func (s *StaticRuleSource) FetchActiveRules(ctx context.Context) ([]model.Rule, error) {
	out := make([]model.Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

// FileRuleSource loads the rule set from a YAML document on every fetch, so
// edits to the file take effect without a restart. Only rules marked active
// are served; document order is serving order.
type FileRuleSource struct {
	path string
}

// NewFileRuleSource creates a rule source reading from the given path
func NewFileRuleSource(path string) *FileRuleSource {
	return &FileRuleSource{path: path}
}

type ruleFile struct {
	Rules []model.Rule `yaml:"rules"`
}

func (s *FileRuleSource) FetchActiveRules(ctx context.Context) ([]model.Rule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var doc ruleFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", s.path, err)
	}

	rules := make([]model.Rule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		if !r.Active {
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}
