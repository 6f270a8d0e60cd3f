package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriorityBand is the coarse display tier of a recommendation.
type PriorityBand string

const (
	BandBest     PriorityBand = "best"
	BandMedium   PriorityBand = "medium"
	BandOptional PriorityBand = "optional"
)

// Rule is a declarative record describing one insurance policy type: who it
// applies to, how confidence is scored, how cover and premium are derived,
// and the messaging shown with it. Rules are read-only at evaluation time;
// their lifecycle is owned by the rule store and admin API.
type Rule struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty" yaml:"-"`
	PolicyType   string             `json:"policyType" bson:"policyType" yaml:"policyType"`
	ProviderName string             `json:"providerName" bson:"providerName" yaml:"providerName"`

	// Eligibility. A nil constraint is unconstrained; a false flag requires nothing.
	MinAge             *int     `json:"minAge,omitempty" bson:"minAge,omitempty" yaml:"minAge,omitempty"`
	MaxAge             *int     `json:"maxAge,omitempty" bson:"maxAge,omitempty" yaml:"maxAge,omitempty"`
	MinMonthlyIncome   *float64 `json:"minMonthlyIncome,omitempty" bson:"minMonthlyIncome,omitempty" yaml:"minMonthlyIncome,omitempty"`
	RequiresDependants bool     `json:"requiresDependants" bson:"requiresDependants" yaml:"requiresDependants"`
	RequiresCar        bool     `json:"requiresCar" bson:"requiresCar" yaml:"requiresCar"`
	RequiresHome       bool     `json:"requiresHome" bson:"requiresHome" yaml:"requiresHome"`

	// Confidence. Additive bonuses on top of BaseConfidence, clamped to [0,100].
	BaseConfidence       int      `json:"baseConfidence" bson:"baseConfidence" yaml:"baseConfidence"`
	DependantsBonus      int      `json:"dependantsBonus,omitempty" bson:"dependantsBonus,omitempty" yaml:"dependantsBonus,omitempty"`
	PerDependantBonus    int      `json:"perDependantBonus,omitempty" bson:"perDependantBonus,omitempty" yaml:"perDependantBonus,omitempty"`
	IncomeBonusThreshold *float64 `json:"incomeBonusThreshold,omitempty" bson:"incomeBonusThreshold,omitempty" yaml:"incomeBonusThreshold,omitempty"`
	IncomeBonus          int      `json:"incomeBonus,omitempty" bson:"incomeBonus,omitempty" yaml:"incomeBonus,omitempty"`
	CarBonus             int      `json:"carBonus,omitempty" bson:"carBonus,omitempty" yaml:"carBonus,omitempty"`
	HomeBonus            int      `json:"homeBonus,omitempty" bson:"homeBonus,omitempty" yaml:"homeBonus,omitempty"`
	MinConfidenceToShow  int      `json:"minConfidenceToShow" bson:"minConfidenceToShow" yaml:"minConfidenceToShow"`

	// Cover derivation, at most one mode. CoverPerDependant extends FixedCover.
	FixedCover        *float64 `json:"fixedCover,omitempty" bson:"fixedCover,omitempty" yaml:"fixedCover,omitempty"`
	CoverPerDependant *float64 `json:"coverPerDependant,omitempty" bson:"coverPerDependant,omitempty" yaml:"coverPerDependant,omitempty"`
	CoverText         string   `json:"coverText,omitempty" bson:"coverText,omitempty" yaml:"coverText,omitempty"`
	CoverMultiplier   *float64 `json:"coverMultiplier,omitempty" bson:"coverMultiplier,omitempty" yaml:"coverMultiplier,omitempty"`

	// Premium derivation, at most one mode.
	FixedPremium      *float64 `json:"fixedPremium,omitempty" bson:"fixedPremium,omitempty" yaml:"fixedPremium,omitempty"`
	PremiumRate       *float64 `json:"premiumRate,omitempty" bson:"premiumRate,omitempty" yaml:"premiumRate,omitempty"`
	PremiumIncomeRate *float64 `json:"premiumIncomeRate,omitempty" bson:"premiumIncomeRate,omitempty" yaml:"premiumIncomeRate,omitempty"`

	// PriorityBand is trusted verbatim when set; empty means derive from confidence.
	PriorityBand PriorityBand `json:"priorityBand,omitempty" bson:"priorityBand,omitempty" yaml:"priorityBand,omitempty"`

	BestFor          []string `json:"bestFor,omitempty" bson:"bestFor,omitempty" yaml:"bestFor,omitempty"`
	BaseWhyItMatters []string `json:"baseWhyItMatters,omitempty" bson:"baseWhyItMatters,omitempty" yaml:"baseWhyItMatters,omitempty"`

	// SortOrder fixes the serving order of store-backed rule sets.
	SortOrder int `json:"sortOrder,omitempty" bson:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`

	Active    bool      `json:"active" bson:"active" yaml:"active"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" yaml:"-"`
}

// Validate reports whether the rule is well formed enough to evaluate. A bad
// rule is a data defect: callers log and skip it rather than abort the run.
func (r *Rule) Validate() error {
	if r.PolicyType == "" {
		return fmt.Errorf("rule missing policyType")
	}
	if r.BaseConfidence < 0 || r.BaseConfidence > 100 {
		return fmt.Errorf("rule %q: baseConfidence %d out of range [0,100]", r.PolicyType, r.BaseConfidence)
	}
	if r.MinConfidenceToShow < 0 || r.MinConfidenceToShow > 100 {
		return fmt.Errorf("rule %q: minConfidenceToShow %d out of range [0,100]", r.PolicyType, r.MinConfidenceToShow)
	}
	coverModes := 0
	if r.FixedCover != nil {
		coverModes++
	}
	if r.CoverText != "" {
		coverModes++
	}
	if r.CoverMultiplier != nil {
		coverModes++
	}
	if coverModes > 1 {
		return fmt.Errorf("rule %q: more than one cover mode set", r.PolicyType)
	}
	if r.CoverPerDependant != nil && r.FixedCover == nil {
		return fmt.Errorf("rule %q: coverPerDependant requires fixedCover", r.PolicyType)
	}
	premiumModes := 0
	if r.FixedPremium != nil {
		premiumModes++
	}
	if r.PremiumRate != nil {
		premiumModes++
	}
	if r.PremiumIncomeRate != nil {
		premiumModes++
	}
	if premiumModes > 1 {
		return fmt.Errorf("rule %q: more than one premium mode set", r.PolicyType)
	}
	switch r.PriorityBand {
	case "", BandBest, BandMedium, BandOptional:
	default:
		return fmt.Errorf("rule %q: unknown priorityBand %q", r.PolicyType, r.PriorityBand)
	}
	return nil
}
