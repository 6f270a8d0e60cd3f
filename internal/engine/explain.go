package engine

import "coveradvisor/internal/model"

// personalize builds the profile-specific reasons appended to every
// recommendation of an evaluation pass: exactly one age reason followed by
// one income reason. Computed once per profile, not once per rule.
func personalize(p model.Profile) []string {
	reasons := make([]string, 0, 2)

	switch {
	case p.Age <= 25:
		reasons = append(reasons, "Well suited to your age group")
	case p.Age <= 40:
		reasons = append(reasons, "Relevant for your current life stage")
	default:
		reasons = append(reasons, "Important protection as responsibilities grow")
	}

	switch {
	case p.MonthlyIncome <= 10000:
		reasons = append(reasons, "Designed to fit a tight budget")
	case p.MonthlyIncome <= 30000:
		reasons = append(reasons, "Fits comfortably within your budget")
	default:
		reasons = append(reasons, "Provides strong cover without straining your budget")
	}

	return reasons
}
