package engine

import "coveradvisor/internal/model"

// applies reports whether every eligibility constraint of the rule holds for
// the profile. Omitted constraints pass automatically; any unmet constraint
// excludes the rule outright. Pure predicate, no partial matches.
func applies(r model.Rule, p model.Profile) bool {
	if r.MinAge != nil && p.Age < *r.MinAge {
		return false
	}
	if r.MaxAge != nil && p.Age > *r.MaxAge {
		return false
	}
	if r.MinMonthlyIncome != nil && p.MonthlyIncome < *r.MinMonthlyIncome {
		return false
	}
	if r.RequiresDependants && p.Dependants == 0 {
		return false
	}
	if r.RequiresCar && !p.OwnsCar {
		return false
	}
	if r.RequiresHome && !p.OwnsHome {
		return false
	}
	return true
}
