package service

import (
	"strings"

	"coveradvisor/internal/model"
)

// NormalizedProduct is the cleaned form of a raw payload, ready for storage.
type NormalizedProduct struct {
	CompanyName string
	ProductName string
	PolicyType  string
}

// policyKeywords maps detection keywords to canonical policy types, checked
// in order. The first match wins.
var policyKeywords = []struct {
	keyword    string
	policyType string
}{
	{"funeral", "Funeral Cover"},
	{"life", "Life Insurance"},
	{"vehicle", "Vehicle Insurance"},
	{"car", "Vehicle Insurance"},
	{"motor", "Vehicle Insurance"},
	{"home", "Home & Contents Insurance"},
	{"household", "Home & Contents Insurance"},
	{"content", "Home & Contents Insurance"},
	{"building", "Home & Contents Insurance"},
	{"accident", "Accidental Cover"},
	{"disability", "Accidental Cover"},
}

// NormalizeProduct trims and collapses the raw naming fields and categorizes
// the product into a policy type. Deterministic; unknown products categorize
// as "Other".
func NormalizeProduct(payload model.RawProductPayload) NormalizedProduct {
	return NormalizedProduct{
		CompanyName: collapseWhitespace(payload.CompanyName),
		ProductName: collapseWhitespace(payload.ProductName),
		PolicyType:  CategorizePolicyType(payload.ProductName, payload.RawText),
	}
}

// CategorizePolicyType picks a canonical policy type from the product name,
// falling back to the raw text when the name alone is inconclusive.
func CategorizePolicyType(name, rawText string) string {
	loweredName := strings.ToLower(name)
	for _, pk := range policyKeywords {
		if strings.Contains(loweredName, pk.keyword) {
			return pk.policyType
		}
	}
	loweredText := strings.ToLower(rawText)
	for _, pk := range policyKeywords {
		if strings.Contains(loweredText, pk.keyword) {
			return pk.policyType
		}
	}
	return "Other"
}

// featureKeywords maps benefit keywords to canonical feature names, scanned
// in order so extraction output is stable.
var featureKeywords = []struct {
	keyword string
	name    string
}{
	{"cash back", "Cash back benefit"},
	{"premium waiver", "Premium waiver"},
	{"waiver of premium", "Premium waiver"},
	{"accidental death", "Accidental death benefit"},
	{"repatriation", "Repatriation of remains"},
	{"no medical", "No medical examination"},
	{"immediate cover", "Immediate cover"},
	{"grocery benefit", "Grocery benefit"},
	{"airtime", "Airtime benefit"},
	{"double payout", "Double payout"},
	{"roadside assistance", "Roadside assistance"},
	{"car hire", "Car hire benefit"},
}

// snippetRadius is how much surrounding text a feature snippet keeps.
const snippetRadius = 60

// ExtractFeatures scans raw product text for known benefit keywords and
// returns one feature per distinct benefit, in dictionary order, each with a
// snippet of the text around the first match.
func ExtractFeatures(rawText string) []model.ProductFeature {
	if rawText == "" {
		return nil
	}
	lowered := strings.ToLower(rawText)

	var features []model.ProductFeature
	seen := make(map[string]bool)
	for _, fk := range featureKeywords {
		idx := strings.Index(lowered, fk.keyword)
		if idx < 0 || seen[fk.name] {
			continue
		}
		seen[fk.name] = true
		features = append(features, model.ProductFeature{
			Name:    fk.name,
			Snippet: snippetAround(rawText, idx, len(fk.keyword)),
		})
	}
	return features
}

func snippetAround(text string, idx, matchLen int) string {
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + snippetRadius
	if end > len(text) {
		end = len(text)
	}
	return collapseWhitespace(text[start:end])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
