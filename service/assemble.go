package service

import (
	"math"

	"offer-agent/domain"
)

// offerDraft carries a solver's resolved terms into assembly.
type offerDraft struct {
	Type               domain.OfferType
	IsBuyable          bool
	UnbuyableReason    string
	OfferPrice         float64
	MonthlyCashFlow    float64
	EntryFeePercent    float64
	MonthlyPayment     float64
	BalloonPeriod      int
	AppreciationProfit float64
	RehabCost          float64
}

// ReasonPrerequisite is reported on the balanced offer when either
// upstream scenario is unbuyable.
const ReasonPrerequisite = "Prerequisite offer(s) are unbuyable."

const (
	reasonPaymentNotPositive = "Monthly payment is not positive."
	reasonNegativeDown       = "Down payment is negative."
)

// assembleOffer derives the remaining financial fields from a solver's
// terms and applies the final viability re-check. The re-check is the
// last line of defense: a non-positive payment or negative down payment
// overrides any upstream buyable determination.
func (s *CalculatorService) assembleOffer(draft offerDraft) domain.OfferResult {
	entryFeeAmount := draft.OfferPrice * draft.EntryFeePercent / 100
	downPayment := s.downPayment(draft.OfferPrice, entryFeeAmount, draft.RehabCost)

	downPaymentPercent := 0.0
	if draft.OfferPrice > 0 {
		downPaymentPercent = downPayment / draft.OfferPrice * 100
	}
	loanAmount := draft.OfferPrice - downPayment

	coc := s.calculateCoC(draft.MonthlyCashFlow, entryFeeAmount)

	// The cap is a hard ceiling on the reported term, even when the
	// solver under- or over-shot.
	amortization := math.Min(
		s.amortizationYears(loanAmount, draft.MonthlyPayment),
		s.config.MaxAmortizationYears,
	)

	principalPaid := draft.MonthlyPayment * 12 * float64(draft.BalloonPeriod)
	balloonPayment := 0.0
	if loanAmount > principalPaid {
		balloonPayment = loanAmount - principalPaid
	}

	isBuyable, reason := draft.IsBuyable, draft.UnbuyableReason
	if isBuyable {
		if draft.MonthlyPayment <= 0 {
			isBuyable, reason = false, reasonPaymentNotPositive
		}
		if downPayment < 0 {
			isBuyable, reason = false, reasonNegativeDown
		}
	}

	return domain.OfferResult{
		OfferType:            draft.Type,
		IsBuyable:            isBuyable,
		UnbuyableReason:      reason,
		FinalOfferPrice:      draft.OfferPrice,
		FinalCoCPercent:      coc,
		FinalMonthlyCashFlow: draft.MonthlyCashFlow,
		FinalEntryFeePercent: draft.EntryFeePercent,
		FinalEntryFeeAmount:  entryFeeAmount,
		DownPayment:          downPayment,
		DownPaymentPercent:   downPaymentPercent,
		LoanAmount:           loanAmount,
		MonthlyPayment:       draft.MonthlyPayment,
		BalloonPeriod:        draft.BalloonPeriod,
		AppreciationProfit:   draft.AppreciationProfit,
		RehabCost:            draft.RehabCost,
		AmortizationYears:    amortization,
		PrincipalPaid:        principalPaid,
		BalloonPayment:       balloonPayment,
	}
}

// unbuyableResult is the standardized record for offers rejected before
// financial solving: everything except price, rehab cost, balloon term
// and appreciation profit stays zero.
func (s *CalculatorService) unbuyableResult(
	offerType domain.OfferType,
	reason string,
	offerPrice, rehabCost float64,
	balloonPeriod int,
	appreciationProfit float64,
) domain.OfferResult {
	return domain.OfferResult{
		OfferType:          offerType,
		IsBuyable:          false,
		UnbuyableReason:    reason,
		FinalOfferPrice:    offerPrice,
		RehabCost:          rehabCost,
		BalloonPeriod:      balloonPeriod,
		AppreciationProfit: appreciationProfit,
	}
}
