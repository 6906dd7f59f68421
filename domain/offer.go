package domain

import "fmt"

// OfferType identifies one of the three financing scenarios.
type OfferType int

const (
	OfferOwnerFavored OfferType = iota
	OfferBuyerFavored
	OfferBalanced
)

// Label is the display name used in rendered output.
func (t OfferType) Label() string {
	switch t {
	case OfferOwnerFavored:
		return "Max Owner Favored"
	case OfferBuyerFavored:
		return "Max Buyer Favored"
	case OfferBalanced:
		return "Balanced"
	}
	return "Unknown"
}

func (t OfferType) String() string { return t.Label() }

func (t OfferType) MarshalText() ([]byte, error) {
	return []byte(t.Label()), nil
}

func (t *OfferType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Max Owner Favored":
		*t = OfferOwnerFavored
	case "Max Buyer Favored":
		*t = OfferBuyerFavored
	case "Balanced":
		*t = OfferBalanced
	default:
		return fmt.Errorf("unknown offer type %q", text)
	}
	return nil
}

// OfferResult is the fully derived outcome of one scenario. It is built
// once per calculation and never mutated afterwards.
//
// When a scenario fails the rehab buyability gate (or the balanced
// prerequisite), every numeric field except FinalOfferPrice, RehabCost,
// BalloonPeriod and AppreciationProfit is zero. The balanced cash-flow
// floor and the assembler's final viability check instead leave the
// numbers populated alongside IsBuyable=false.
type OfferResult struct {
	OfferType            OfferType `json:"offer_type"`
	IsBuyable            bool      `json:"is_buyable"`
	UnbuyableReason      string    `json:"unbuyable_reason"`
	FinalOfferPrice      float64   `json:"final_offer_price"`
	FinalCoCPercent      float64   `json:"final_coc_percent"`
	FinalMonthlyCashFlow float64   `json:"final_monthly_cash_flow"`
	FinalEntryFeePercent float64   `json:"final_entry_fee_percent"`
	FinalEntryFeeAmount  float64   `json:"final_entry_fee_amount"`
	DownPayment          float64   `json:"down_payment"`
	DownPaymentPercent   float64   `json:"down_payment_percent"`
	LoanAmount           float64   `json:"loan_amount"`
	MonthlyPayment       float64   `json:"monthly_payment"`
	BalloonPeriod        int       `json:"balloon_period"`
	AppreciationProfit   float64   `json:"appreciation_profit"`
	RehabCost            float64   `json:"rehab_cost"`
	AmortizationYears    float64   `json:"amortization_years"`
	PrincipalPaid        float64   `json:"principal_paid"`
	BalloonPayment       float64   `json:"balloon_payment"`
}
