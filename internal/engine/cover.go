package engine

import (
	"math"

	"coveradvisor/internal/model"
)

// coverFor derives the recommended cover. Resolution order: fixed amount
// (plus any per-dependant addition), descriptive text, multiplier on annual
// income, otherwise undefined.
func coverFor(r model.Rule, p model.Profile) model.CoverValue {
	switch {
	case r.FixedCover != nil:
		cover := *r.FixedCover
		if r.CoverPerDependant != nil {
			cover += float64(p.Dependants) * *r.CoverPerDependant
		}
		return model.CoverAmount(cover)
	case r.CoverText != "":
		return model.CoverNote(r.CoverText)
	case r.CoverMultiplier != nil:
		return model.CoverAmount(p.AnnualIncome() * *r.CoverMultiplier)
	default:
		return model.CoverValue{}
	}
}

// premiumFor derives the estimated monthly premium. Resolution order: fixed
// amount verbatim, rate on a numeric cover, rate on monthly income, otherwise
// nil. Derived premiums are rounded to cents.
func premiumFor(r model.Rule, p model.Profile, cover model.CoverValue) *float64 {
	switch {
	case r.FixedPremium != nil:
		v := *r.FixedPremium
		return &v
	case r.PremiumRate != nil:
		amt, ok := cover.Amount()
		if !ok {
			return nil
		}
		v := round2(amt * *r.PremiumRate)
		return &v
	case r.PremiumIncomeRate != nil:
		v := round2(p.MonthlyIncome * *r.PremiumIncomeRate)
		return &v
	default:
		return nil
	}
}

// round2 rounds half away from zero to two decimals. Display precision only.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
