package service

import (
	"offer-agent/domain"
)

// buyerFavoredOffer solves the scenario that maximizes the buyer's
// position: the offer price is the listing price, the entry fee is fixed
// at its target, and the cash flow follows directly from the target CoC.
// No search is involved; the amortization cap is the single correction.
func (s *CalculatorService) buyerFavoredOffer(
	property domain.PropertyData,
	repairs domain.RepairSet,
) domain.OfferResult {

	params := s.config.BuyerFavored

	offerPrice := property.ListedPrice
	appreciatedValue := s.appreciatedValue(property.ListedPrice, params.BalloonPeriod)
	appreciationProfit := appreciatedValue - offerPrice

	rehabCost := s.rehabCost(repairs)

	buyable, reason := s.checkRehabBuyability(rehabCost, property.ARV, offerPrice)
	if !buyable {
		return s.unbuyableResult(domain.OfferBuyerFavored, reason,
			offerPrice, rehabCost, params.BalloonPeriod, appreciationProfit)
	}

	entryFeeAmount := offerPrice * params.EntryFeePercent / 100
	cashFlow := params.TargetCoCPercent / 100 * entryFeeAmount / 12

	nonDebt := s.nonDebtExpenses(property)
	monthlyPayment := property.MonthlyRent - nonDebt - cashFlow

	// Unlike the other scenarios the cap runs unconditionally here: a
	// non-positive payment implies an unbounded term and is re-derived
	// at the cap as well.
	loanAmount := s.loanAmount(offerPrice, entryFeeAmount, rehabCost)
	monthlyPayment, cashFlow = s.capToMaxAmortization(
		loanAmount, monthlyPayment, cashFlow, property.MonthlyRent, nonDebt)

	return s.assembleOffer(offerDraft{
		Type:               domain.OfferBuyerFavored,
		IsBuyable:          true,
		OfferPrice:         offerPrice,
		MonthlyCashFlow:    cashFlow,
		EntryFeePercent:    params.EntryFeePercent,
		MonthlyPayment:     monthlyPayment,
		BalloonPeriod:      params.BalloonPeriod,
		AppreciationProfit: appreciationProfit,
		RehabCost:          rehabCost,
	})
}
