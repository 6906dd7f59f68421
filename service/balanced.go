package service

import (
	"fmt"

	"offer-agent/domain"
)

// balancedOffer averages the owner- and buyer-favored terms. Both
// upstream results must already be buyable; the orchestrator enforces
// that precondition and never calls this otherwise.
func (s *CalculatorService) balancedOffer(
	ownerOffer, buyerOffer domain.OfferResult,
	property domain.PropertyData,
	repairs domain.RepairSet,
) domain.OfferResult {

	params := s.config.Balanced

	offerPrice := (ownerOffer.FinalOfferPrice + buyerOffer.FinalOfferPrice) / 2
	entryFeePercent := (ownerOffer.FinalEntryFeePercent + buyerOffer.FinalEntryFeePercent) / 2

	rehabCost := s.rehabCost(repairs)
	appreciatedValue := s.appreciatedValue(property.ListedPrice, params.BalloonPeriod)
	appreciationProfit := appreciatedValue - offerPrice

	buyable, reason := s.checkRehabBuyability(rehabCost, property.ARV, offerPrice)
	if !buyable {
		return s.unbuyableResult(domain.OfferBalanced, reason,
			offerPrice, rehabCost, params.BalloonPeriod, appreciationProfit)
	}

	entryFeeAmount := offerPrice * entryFeePercent / 100
	cashFlow := params.TargetCoCPercent / 100 * entryFeeAmount / 12

	// The floor breach marks the offer unbuyable but, unlike the rehab
	// gate, the remaining fields are still derived and reported.
	if cashFlow < params.MonthlyCashFlowMin {
		buyable = false
		reason = fmt.Sprintf("Calculated cash flow ($%.2f) is below minimum of $%.2f.",
			cashFlow, params.MonthlyCashFlowMin)
	}

	nonDebt := s.nonDebtExpenses(property)
	monthlyPayment := property.MonthlyRent - nonDebt - cashFlow

	loanAmount := s.loanAmount(offerPrice, entryFeeAmount, rehabCost)
	if monthlyPayment > 0 {
		monthlyPayment, cashFlow = s.capToMaxAmortization(
			loanAmount, monthlyPayment, cashFlow, property.MonthlyRent, nonDebt)
	}

	return s.assembleOffer(offerDraft{
		Type:               domain.OfferBalanced,
		IsBuyable:          buyable,
		UnbuyableReason:    reason,
		OfferPrice:         offerPrice,
		MonthlyCashFlow:    cashFlow,
		EntryFeePercent:    entryFeePercent,
		MonthlyPayment:     monthlyPayment,
		BalloonPeriod:      params.BalloonPeriod,
		AppreciationProfit: appreciationProfit,
		RehabCost:          rehabCost,
	})
}
