package engine

import (
	"testing"

	"coveradvisor/internal/model"
)

func TestApplies(t *testing.T) {
	iptr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		rule    model.Rule
		profile model.Profile
		want    bool
	}{
		{
			name:    "no constraints always applies",
			rule:    model.Rule{PolicyType: "open"},
			profile: model.Profile{},
			want:    true,
		},
		{
			name:    "min age met on the boundary",
			rule:    model.Rule{MinAge: iptr(18)},
			profile: model.Profile{Age: 18},
			want:    true,
		},
		{
			name:    "min age unmet",
			rule:    model.Rule{MinAge: iptr(18)},
			profile: model.Profile{Age: 17},
			want:    false,
		},
		{
			name:    "max age met on the boundary",
			rule:    model.Rule{MaxAge: iptr(65)},
			profile: model.Profile{Age: 65},
			want:    true,
		},
		{
			name:    "max age exceeded",
			rule:    model.Rule{MaxAge: iptr(65)},
			profile: model.Profile{Age: 66},
			want:    false,
		},
		{
			name:    "min income met exactly",
			rule:    model.Rule{MinMonthlyIncome: fptr(5000)},
			profile: model.Profile{MonthlyIncome: 5000},
			want:    true,
		},
		{
			name:    "min income unmet",
			rule:    model.Rule{MinMonthlyIncome: fptr(5000)},
			profile: model.Profile{MonthlyIncome: 4999.99},
			want:    false,
		},
		{
			name:    "requires dependants with none",
			rule:    model.Rule{RequiresDependants: true},
			profile: model.Profile{Dependants: 0},
			want:    false,
		},
		{
			name:    "requires dependants with one",
			rule:    model.Rule{RequiresDependants: true},
			profile: model.Profile{Dependants: 1},
			want:    true,
		},
		{
			name:    "requires car without car",
			rule:    model.Rule{RequiresCar: true},
			profile: model.Profile{},
			want:    false,
		},
		{
			name:    "requires home without home",
			rule:    model.Rule{RequiresHome: true},
			profile: model.Profile{OwnsCar: true},
			want:    false,
		},
		{
			name: "one unmet constraint fails the whole rule",
			rule: model.Rule{MinAge: iptr(18), MaxAge: iptr(65), RequiresCar: true},
			profile: model.Profile{
				Age:     30,
				OwnsCar: false,
			},
			want: false,
		},
		{
			name: "all constraints met",
			rule: model.Rule{
				MinAge:             iptr(18),
				MaxAge:             iptr(65),
				MinMonthlyIncome:   fptr(1000),
				RequiresDependants: true,
				RequiresCar:        true,
				RequiresHome:       true,
			},
			profile: model.Profile{
				Age:           40,
				MonthlyIncome: 25000,
				Dependants:    2,
				OwnsCar:       true,
				OwnsHome:      true,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applies(tt.rule, tt.profile); got != tt.want {
				t.Errorf("applies() = %v, want %v", got, tt.want)
			}
		})
	}
}
