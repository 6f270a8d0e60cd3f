package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"coveradvisor/internal/config"
	"coveradvisor/internal/model"
)

// RuleAPIClient fetches the active rule set from an external rule-management
// API. One attempt per fetch: a failure belongs to the caller, not to a retry
// loop here.
type RuleAPIClient struct {
	cfg        *config.RuleAPIConfig
	httpClient *http.Client
}

// NewRuleAPIClient creates a client for the external rule API
func NewRuleAPIClient(cfg *config.RuleAPIConfig) *RuleAPIClient {
	return &RuleAPIClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// ruleDTO is the wire form of a rule. Required fields are pointers so an
// omitted field is distinguishable from a zero and rejected as malformed.
type ruleDTO struct {
	PolicyType   *string `json:"policyType"`
	ProviderName string  `json:"providerName"`

	MinAge             *int     `json:"minAge"`
	MaxAge             *int     `json:"maxAge"`
	MinMonthlyIncome   *float64 `json:"minMonthlyIncome"`
	RequiresDependants bool     `json:"requiresDependants"`
	RequiresCar        bool     `json:"requiresCar"`
	RequiresHome       bool     `json:"requiresHome"`

	BaseConfidence       *int     `json:"baseConfidence"`
	DependantsBonus      int      `json:"dependantsBonus"`
	PerDependantBonus    int      `json:"perDependantBonus"`
	IncomeBonusThreshold *float64 `json:"incomeBonusThreshold"`
	IncomeBonus          int      `json:"incomeBonus"`
	CarBonus             int      `json:"carBonus"`
	HomeBonus            int      `json:"homeBonus"`
	MinConfidenceToShow  *int     `json:"minConfidenceToShow"`

	FixedCover        *float64 `json:"fixedCover"`
	CoverPerDependant *float64 `json:"coverPerDependant"`
	CoverText         string   `json:"coverText"`
	CoverMultiplier   *float64 `json:"coverMultiplier"`

	FixedPremium      *float64 `json:"fixedPremium"`
	PremiumRate       *float64 `json:"premiumRate"`
	PremiumIncomeRate *float64 `json:"premiumIncomeRate"`

	PriorityBand string   `json:"priorityBand"`
	BestFor      []string `json:"bestFor"`
	WhyItMatters []string `json:"whyItMatters"`

	SortOrder int  `json:"sortOrder"`
	Active    bool `json:"active"`
}

type ruleListResponse struct {
	Rules []ruleDTO `json:"rules"`
}

// toModel converts a wire rule, rejecting ones with required fields missing.
func (d ruleDTO) toModel() (model.Rule, error) {
	if d.PolicyType == nil || *d.PolicyType == "" {
		return model.Rule{}, fmt.Errorf("rule missing policyType")
	}
	if d.BaseConfidence == nil {
		return model.Rule{}, fmt.Errorf("rule %q missing baseConfidence", *d.PolicyType)
	}
	if d.MinConfidenceToShow == nil {
		return model.Rule{}, fmt.Errorf("rule %q missing minConfidenceToShow", *d.PolicyType)
	}

	rule := model.Rule{
		PolicyType:   *d.PolicyType,
		ProviderName: d.ProviderName,

		MinAge:             d.MinAge,
		MaxAge:             d.MaxAge,
		MinMonthlyIncome:   d.MinMonthlyIncome,
		RequiresDependants: d.RequiresDependants,
		RequiresCar:        d.RequiresCar,
		RequiresHome:       d.RequiresHome,

		BaseConfidence:       *d.BaseConfidence,
		DependantsBonus:      d.DependantsBonus,
		PerDependantBonus:    d.PerDependantBonus,
		IncomeBonusThreshold: d.IncomeBonusThreshold,
		IncomeBonus:          d.IncomeBonus,
		CarBonus:             d.CarBonus,
		HomeBonus:            d.HomeBonus,
		MinConfidenceToShow:  *d.MinConfidenceToShow,

		FixedCover:        d.FixedCover,
		CoverPerDependant: d.CoverPerDependant,
		CoverText:         d.CoverText,
		CoverMultiplier:   d.CoverMultiplier,

		FixedPremium:      d.FixedPremium,
		PremiumRate:       d.PremiumRate,
		PremiumIncomeRate: d.PremiumIncomeRate,

		PriorityBand:     model.PriorityBand(d.PriorityBand),
		BestFor:          d.BestFor,
		BaseWhyItMatters: d.WhyItMatters,

		SortOrder: d.SortOrder,
		Active:    d.Active,
	}
	if err := rule.Validate(); err != nil {
		return model.Rule{}, err
	}
	return rule, nil
}

// FetchActiveRules retrieves the active rules from the external API in its
// serving order. Individually malformed rules are logged and skipped; a
// transport or decode failure fails the whole fetch.
func (c *RuleAPIClient) FetchActiveRules(ctx context.Context) ([]model.Rule, error) {
	if !c.cfg.IsEnabled() {
		return nil, fmt.Errorf("rule API not configured")
	}

	url := c.cfg.BaseURL + "/v1/rules/active"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rule API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule API response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("rule API error %d: %s", resp.StatusCode, string(body))
	}

	var list ruleListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse rule API response: %w", err)
	}

	rules := make([]model.Rule, 0, len(list.Rules))
	for _, dto := range list.Rules {
		rule, err := dto.toModel()
		if err != nil {
			log.Printf("[Rule API] skipping malformed rule: %v", err)
			continue
		}
		if !rule.Active {
			continue
		}
		rules = append(rules, rule)
	}

	log.Printf("[Rule API] fetched %d active rules", len(rules))
	return rules, nil
}
