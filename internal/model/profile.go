package model

import "fmt"

// Profile describes the person a recommendation run is for. It is built per
// request and never persisted.
type Profile struct {
	Age            int     `json:"age"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
	Dependants     int     `json:"dependants"`
	EmploymentType string  `json:"employmentType,omitempty"` // advisory only, never scored
	OwnsCar        bool    `json:"ownsCar"`
	OwnsHome       bool    `json:"ownsHome"`
}

// Validate rejects out-of-domain fields. Callers must validate before
// evaluation; the engine additionally zero-floors negatives on its own.
func (p Profile) Validate() error {
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative, got %d", p.Age)
	}
	if p.MonthlyIncome < 0 {
		return fmt.Errorf("monthlyIncome must not be negative, got %.2f", p.MonthlyIncome)
	}
	if p.Dependants < 0 {
		return fmt.Errorf("dependants must not be negative, got %d", p.Dependants)
	}
	return nil
}

// Normalized returns a copy with negative numeric fields floored to zero, so
// scoring stays total even on an unvalidated profile.
func (p Profile) Normalized() Profile {
	if p.Age < 0 {
		p.Age = 0
	}
	if p.MonthlyIncome < 0 {
		p.MonthlyIncome = 0
	}
	if p.Dependants < 0 {
		p.Dependants = 0
	}
	return p
}

// AnnualIncome is MonthlyIncome over twelve months.
func (p Profile) AnnualIncome() float64 {
	return p.MonthlyIncome * 12
}
