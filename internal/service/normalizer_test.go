package service

import (
	"strings"
	"testing"

	"coveradvisor/internal/model"
)

func TestCategorizePolicyType(t *testing.T) {
	tests := []struct {
		name    string
		product string
		rawText string
		want    string
	}{
		{"funeral in name", "Family Funeral Plan", "", "Funeral Cover"},
		{"life in name", "Life Cover Plus", "", "Life Insurance"},
		{"car in name", "Comprehensive Car Insurance", "", "Vehicle Insurance"},
		{"motor in name", "Motor Plan", "", "Vehicle Insurance"},
		{"home in name", "Home Contents Protect", "", "Home & Contents Insurance"},
		{"accident in name", "Personal Accident Plan", "", "Accidental Cover"},
		{"disability in text", "FlexProtect", "covers death and disability benefits", "Accidental Cover"},
		{"name beats text", "Funeral Plan", "covers your car and home", "Funeral Cover"},
		{"funeral beats life", "Funeral and Life Plan", "", "Funeral Cover"},
		{"nothing known", "Gadget Protect", "covers phones and tablets", "Other"},
		{"case insensitive", "FUNERAL COVER", "", "Funeral Cover"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizePolicyType(tt.product, tt.rawText); got != tt.want {
				t.Errorf("CategorizePolicyType(%q, %q) = %q, want %q", tt.product, tt.rawText, got, tt.want)
			}
		})
	}
}

func TestNormalizeProductCollapsesWhitespace(t *testing.T) {
	got := NormalizeProduct(model.RawProductPayload{
		CompanyName: "  Old\t Mutual ",
		ProductName: " Life \n Cover ",
	})

	if got.CompanyName != "Old Mutual" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if got.ProductName != "Life Cover" {
		t.Errorf("ProductName = %q", got.ProductName)
	}
	if got.PolicyType != "Life Insurance" {
		t.Errorf("PolicyType = %q", got.PolicyType)
	}
}

func TestExtractFeatures(t *testing.T) {
	text := "Our plan includes a cash back benefit every 5 years. " +
		"Roadside assistance is included on all tiers, and roadside assistance " +
		"also covers towing. No medical examination required."

	features := ExtractFeatures(text)

	var names []string
	for _, f := range features {
		names = append(names, f.Name)
	}
	want := []string{"Cash back benefit", "No medical examination", "Roadside assistance"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("feature names = %v, want %v", names, want)
	}

	for _, f := range features {
		if f.Snippet == "" {
			t.Errorf("feature %q has empty snippet", f.Name)
		}
	}
}

func TestExtractFeaturesEmptyText(t *testing.T) {
	if got := ExtractFeatures(""); got != nil {
		t.Errorf("ExtractFeatures(\"\") = %v, want nil", got)
	}
}
