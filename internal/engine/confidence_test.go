package engine

import (
	"testing"

	"coveradvisor/internal/model"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		name    string
		rule    model.Rule
		profile model.Profile
		want    int
	}{
		{
			name:    "base only",
			rule:    model.Rule{BaseConfidence: 50},
			profile: model.Profile{},
			want:    50,
		},
		{
			name:    "flat dependants bonus fires once",
			rule:    model.Rule{BaseConfidence: 50, DependantsBonus: 30},
			profile: model.Profile{Dependants: 3},
			want:    80,
		},
		{
			name:    "flat dependants bonus needs at least one",
			rule:    model.Rule{BaseConfidence: 50, DependantsBonus: 30},
			profile: model.Profile{Dependants: 0},
			want:    50,
		},
		{
			name:    "per dependant bonus scales",
			rule:    model.Rule{BaseConfidence: 40, PerDependantBonus: 5},
			profile: model.Profile{Dependants: 3},
			want:    55,
		},
		{
			name:    "income bonus inclusive at threshold",
			rule:    model.Rule{BaseConfidence: 50, IncomeBonusThreshold: fptr(20000), IncomeBonus: 5},
			profile: model.Profile{MonthlyIncome: 20000},
			want:    55,
		},
		{
			name:    "income bonus below threshold",
			rule:    model.Rule{BaseConfidence: 50, IncomeBonusThreshold: fptr(20000), IncomeBonus: 5},
			profile: model.Profile{MonthlyIncome: 19999.99},
			want:    50,
		},
		{
			name:    "car and home bonuses",
			rule:    model.Rule{BaseConfidence: 20, CarBonus: 40, HomeBonus: 35},
			profile: model.Profile{OwnsCar: true, OwnsHome: true},
			want:    95,
		},
		{
			name:    "asset bonuses need the asset",
			rule:    model.Rule{BaseConfidence: 20, CarBonus: 40, HomeBonus: 35},
			profile: model.Profile{},
			want:    20,
		},
		{
			name: "all terms combine additively",
			rule: model.Rule{
				BaseConfidence:       10,
				DependantsBonus:      15,
				PerDependantBonus:    5,
				IncomeBonusThreshold: fptr(1000),
				IncomeBonus:          10,
				CarBonus:             20,
			},
			profile: model.Profile{Dependants: 2, MonthlyIncome: 5000, OwnsCar: true},
			want:    10 + 15 + 10 + 10 + 20,
		},
		{
			name:    "clamped to 100",
			rule:    model.Rule{BaseConfidence: 90, DependantsBonus: 30},
			profile: model.Profile{Dependants: 1},
			want:    100,
		},
		{
			name:    "clamped to 0 on negative bonuses",
			rule:    model.Rule{BaseConfidence: 10, PerDependantBonus: -20},
			profile: model.Profile{Dependants: 4},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confidenceFor(tt.rule, tt.profile); got != tt.want {
				t.Errorf("confidenceFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
