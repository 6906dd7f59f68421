package domain

import "errors"

// PropertyData holds the consolidated numeric attributes of a property.
// Upstream data-gathering collaborators are responsible for resolving
// multi-source conflicts and missing values before building one of these.
type PropertyData struct {
	ListedPrice        float64 `json:"listed_price"`
	MonthlyRent        float64 `json:"monthly_rent"`
	MonthlyPropertyTax float64 `json:"monthly_property_tax"`
	MonthlyInsurance   float64 `json:"monthly_insurance"`
	MonthlyHOAFee      float64 `json:"monthly_hoa_fee"`
	MonthlyOtherFees   float64 `json:"monthly_other_fees"`
	ARV                float64 `json:"arv"`
}

var (
	ErrInvalidListedPrice = errors.New("listed price must be positive")
	ErrInvalidMonthlyRent = errors.New("monthly rent must be positive")
	ErrInvalidARV         = errors.New("arv must be positive")
	ErrNegativeExpense    = errors.New("monthly expenses must be non-negative")
	ErrNegativeSqft       = errors.New("repair square footage must be non-negative")
)

// Validate checks the construction invariants: price, rent and ARV are
// strictly positive, expense fields non-negative.
func (p PropertyData) Validate() error {
	if p.ListedPrice <= 0 {
		return ErrInvalidListedPrice
	}
	if p.MonthlyRent <= 0 {
		return ErrInvalidMonthlyRent
	}
	if p.ARV <= 0 {
		return ErrInvalidARV
	}
	if p.MonthlyPropertyTax < 0 || p.MonthlyInsurance < 0 ||
		p.MonthlyHOAFee < 0 || p.MonthlyOtherFees < 0 {
		return ErrNegativeExpense
	}
	return nil
}

// FixedMonthlyExpenses is the non-debt carrying cost before the
// rent-relative rates (vacancy, capex, management) are added.
func (p PropertyData) FixedMonthlyExpenses() float64 {
	return p.MonthlyPropertyTax + p.MonthlyInsurance + p.MonthlyHOAFee + p.MonthlyOtherFees
}

// RepairSet is the renovation scope, square footage per intensity tier.
type RepairSet struct {
	LightSqft  float64 `json:"light"`
	MediumSqft float64 `json:"medium"`
	HeavySqft  float64 `json:"heavy"`
}

func (r RepairSet) Validate() error {
	if r.LightSqft < 0 || r.MediumSqft < 0 || r.HeavySqft < 0 {
		return ErrNegativeSqft
	}
	return nil
}
