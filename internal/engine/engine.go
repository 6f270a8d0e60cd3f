package engine

import "coveradvisor/internal/model"

// defaultProvider labels rules that carry no provider of their own.
const defaultProvider = "Insurance Provider"

// Config holds the tunable thresholds of the engine. Zero values fall back to
// the defaults.
type Config struct {
	// BestThreshold is the inclusive confidence floor of the "best" band.
	BestThreshold int
	// MediumThreshold is the inclusive confidence floor of the "medium" band.
	MediumThreshold int
}

// DefaultConfig returns the standard band thresholds.
func DefaultConfig() Config {
	return Config{BestThreshold: 85, MediumThreshold: 70}
}

// Engine scores profiles against rule sets. Safe for concurrent use.
type Engine struct {
	cfg Config
}

// New builds an engine, filling unset thresholds from DefaultConfig.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.BestThreshold == 0 {
		cfg.BestThreshold = def.BestThreshold
	}
	if cfg.MediumThreshold == 0 {
		cfg.MediumThreshold = def.MediumThreshold
	}
	return &Engine{cfg: cfg}
}

// Recommend evaluates rules in their given order and returns one
// recommendation per qualifying rule, preserving that order. Rules that do
// not apply, score below their own display threshold, or fail validation are
// skipped. An empty result is a valid outcome, never an error.
func (e *Engine) Recommend(profile model.Profile, rules []model.Rule) []model.Recommendation {
	profile = profile.Normalized()
	personal := personalize(profile)

	recs := make([]model.Recommendation, 0, len(rules))
	for i := range rules {
		rule := rules[i]
		if err := rule.Validate(); err != nil {
			// One bad rule must not block the rest.
			continue
		}
		if !applies(rule, profile) {
			continue
		}
		score := confidenceFor(rule, profile)
		if score < rule.MinConfidenceToShow {
			continue
		}
		cover := coverFor(rule, profile)

		band := rule.PriorityBand
		if band == "" {
			band = e.band(score)
		}
		provider := rule.ProviderName
		if provider == "" {
			provider = defaultProvider
		}

		why := make([]string, 0, len(rule.BaseWhyItMatters)+len(personal))
		why = append(why, rule.BaseWhyItMatters...)
		why = append(why, personal...)

		recs = append(recs, model.Recommendation{
			PolicyType:              rule.PolicyType,
			ProviderName:            provider,
			ConfidenceScore:         score,
			PriorityBand:            band,
			RecommendedCover:        cover,
			EstimatedMonthlyPremium: premiumFor(rule, profile, cover),
			BestFor:                 rule.BestFor,
			WhyItMatters:            why,
		})
	}
	return recs
}

// band maps a confidence score to its display tier. Inclusive lower bounds,
// highest band first.
func (e *Engine) band(score int) model.PriorityBand {
	switch {
	case score >= e.cfg.BestThreshold:
		return model.BandBest
	case score >= e.cfg.MediumThreshold:
		return model.BandMedium
	default:
		return model.BandOptional
	}
}
