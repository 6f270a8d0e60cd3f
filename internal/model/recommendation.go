package model

import (
	"encoding/json"
	"fmt"
)

// Recommendation is one scored, explained policy suggestion. The output list
// keeps rule evaluation order and is never re-sorted.
type Recommendation struct {
	PolicyType              string       `json:"policyType"`
	ProviderName            string       `json:"providerName"`
	ConfidenceScore         int          `json:"confidenceScore"`
	PriorityBand            PriorityBand `json:"priorityBand"`
	RecommendedCover        CoverValue   `json:"recommendedCover"`
	EstimatedMonthlyPremium *float64     `json:"estimatedMonthlyPremium"`
	BestFor                 []string     `json:"bestFor"`
	WhyItMatters            []string     `json:"whyItMatters"`
}

type coverKind int

const (
	coverUndefined coverKind = iota
	coverAmount
	coverNote
)

// CoverValue is a recommended cover: a monetary amount, a descriptive
// placeholder ("Market value of the vehicle"), or undefined. It marshals to a
// JSON number, string, or null respectively. The zero value is undefined.
type CoverValue struct {
	kind   coverKind
	amount float64
	note   string
}

// CoverAmount builds a numeric cover value.
func CoverAmount(v float64) CoverValue {
	return CoverValue{kind: coverAmount, amount: v}
}

// CoverNote builds a descriptive cover value.
func CoverNote(s string) CoverValue {
	return CoverValue{kind: coverNote, note: s}
}

// Amount returns the numeric cover and whether one is set.
func (c CoverValue) Amount() (float64, bool) {
	return c.amount, c.kind == coverAmount
}

// Note returns the descriptive cover and whether one is set.
func (c CoverValue) Note() (string, bool) {
	return c.note, c.kind == coverNote
}

// IsUndefined reports whether no cover applies.
func (c CoverValue) IsUndefined() bool {
	return c.kind == coverUndefined
}

// Equal reports value equality. go-cmp picks this up for diffing.
func (c CoverValue) Equal(o CoverValue) bool {
	return c == o
}

func (c CoverValue) String() string {
	switch c.kind {
	case coverAmount:
		return fmt.Sprintf("%.2f", c.amount)
	case coverNote:
		return c.note
	default:
		return ""
	}
}

func (c CoverValue) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case coverAmount:
		return json.Marshal(c.amount)
	case coverNote:
		return json.Marshal(c.note)
	default:
		return []byte("null"), nil
	}
}

func (c *CoverValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = CoverValue{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*c = CoverAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("cover must be a number, a string, or null: %w", err)
	}
	*c = CoverNote(s)
	return nil
}
