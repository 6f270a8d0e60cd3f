package engine

import "coveradvisor/internal/model"

// BuiltinRules returns the default in-memory rule set for the South African
// market, used when no external rule source is configured. Slice order is
// serving order.
func BuiltinRules() []model.Rule {
	return []model.Rule{
		{
			PolicyType:           "Life Insurance",
			ProviderName:         "Sanlam",
			RequiresDependants:   true,
			BaseConfidence:       50,
			DependantsBonus:      30,
			IncomeBonusThreshold: fptr(15000),
			IncomeBonus:          10,
			CoverMultiplier:      fptr(10),
			PremiumRate:          fptr(0.0015),
			BestFor: []string{
				"People with dependants",
				"Households relying on a main income",
			},
			BaseWhyItMatters: []string{
				"Provides long-term financial protection",
				"Helps cover living costs, debt, and education",
			},
			Active: true,
		},
		{
			PolicyType:   "Funeral Cover",
			ProviderName: "AVBOB",
			// Base 80 carries the flat uplift every household gets.
			BaseConfidence:    80,
			DependantsBonus:   10,
			FixedCover:        fptr(50000),
			CoverPerDependant: fptr(25000),
			PremiumRate:       fptr(0.002),
			BestFor: []string{
				"All households",
				"Families with dependants",
			},
			BaseWhyItMatters: []string{
				"Covers immediate funeral expenses",
				"Pays out quickly when cash is needed",
			},
			Active: true,
		},
		{
			PolicyType:   "Accidental Cover",
			ProviderName: "Old Mutual",
			// One cent floor stands in for a strict income > 0 gate.
			MinMonthlyIncome:     fptr(0.01),
			BaseConfidence:       50,
			IncomeBonusThreshold: fptr(0.01),
			IncomeBonus:          25,
			CoverMultiplier:      fptr(5),
			PremiumRate:          fptr(0.002),
			BestFor: []string{
				"Young professionals",
				"Active individuals",
			},
			BaseWhyItMatters: []string{
				"Covers accidental injury and disability",
				"Protects your income if you cannot work",
			},
			Active: true,
		},
		{
			PolicyType:        "Vehicle Insurance",
			ProviderName:      "OUTsurance",
			RequiresCar:       true,
			BaseConfidence:    50,
			CarBonus:          40,
			CoverText:         "Market value of the vehicle",
			PremiumIncomeRate: fptr(0.03),
			BestFor: []string{
				"Vehicle owners",
				"Daily commuters",
			},
			BaseWhyItMatters: []string{
				"Protects against accidents and theft",
				"Avoids large, unexpected repair costs",
			},
			Active: true,
		},
		{
			PolicyType:           "Home & Contents Insurance",
			ProviderName:         "Santam",
			RequiresHome:         true,
			BaseConfidence:       50,
			HomeBonus:            35,
			IncomeBonusThreshold: fptr(20000),
			IncomeBonus:          5,
			CoverText:            "Replacement value of home and contents",
			PremiumIncomeRate:    fptr(0.02),
			BestFor: []string{
				"Homeowners",
				"Property investors",
			},
			BaseWhyItMatters: []string{
				"Protects your home and belongings",
				"Safeguards your biggest financial asset",
			},
			Active: true,
		},
	}
}

func fptr(v float64) *float64 {
	return &v
}
