package engine

import "coveradvisor/internal/model"

// confidenceFor computes the applicability confidence of a rule for a
// profile. The model is linear and additive: a base plus independent bonuses,
// with no interactions between terms and no rule-to-rule comparison. The
// result is clamped to [0,100].
func confidenceFor(r model.Rule, p model.Profile) int {
	score := r.BaseConfidence
	if p.Dependants > 0 {
		score += r.DependantsBonus
	}
	score += p.Dependants * r.PerDependantBonus
	if r.IncomeBonusThreshold != nil && p.MonthlyIncome >= *r.IncomeBonusThreshold {
		score += r.IncomeBonus
	}
	if p.OwnsCar {
		score += r.CarBonus
	}
	if p.OwnsHome {
		score += r.HomeBonus
	}
	return clampScore(score)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
