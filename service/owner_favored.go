package service

import (
	"offer-agent/domain"
)

// ownerFavoredOffer solves the scenario that maximizes the seller's
// position. The offer price is fixed up front at the appreciated value
// minus the seller's appreciation profit; the adjustment loop then
// searches for the smallest entry fee / largest cash flow combination
// meeting the CoC threshold.
func (s *CalculatorService) ownerFavoredOffer(
	property domain.PropertyData,
	repairs domain.RepairSet,
) domain.OfferResult {

	params := s.config.OwnerFavored

	appreciationProfit := property.ListedPrice * params.AppreciationProfitRate
	appreciatedValue := s.appreciatedValue(property.ListedPrice, params.BalloonPeriod)
	offerPrice := appreciatedValue - appreciationProfit

	rehabCost := s.rehabCost(repairs)

	buyable, reason := s.checkRehabBuyability(rehabCost, property.ARV, offerPrice)
	if !buyable {
		return s.unbuyableResult(domain.OfferOwnerFavored, reason,
			offerPrice, rehabCost, params.BalloonPeriod, appreciationProfit)
	}

	nonDebt := s.nonDebtExpenses(property)
	cashFlow, entryFeePercent := s.runOwnerAdjustmentLoop(offerPrice)

	monthlyPayment := property.MonthlyRent - nonDebt - cashFlow

	entryFeeAmount := offerPrice * entryFeePercent / 100
	loanAmount := s.loanAmount(offerPrice, entryFeeAmount, rehabCost)
	if monthlyPayment > 0 {
		monthlyPayment, cashFlow = s.capToMaxAmortization(
			loanAmount, monthlyPayment, cashFlow, property.MonthlyRent, nonDebt)
	}

	return s.assembleOffer(offerDraft{
		Type:               domain.OfferOwnerFavored,
		IsBuyable:          true,
		OfferPrice:         offerPrice,
		MonthlyCashFlow:    cashFlow,
		EntryFeePercent:    entryFeePercent,
		MonthlyPayment:     monthlyPayment,
		BalloonPeriod:      params.BalloonPeriod,
		AppreciationProfit: appreciationProfit,
		RehabCost:          rehabCost,
	})
}

// runOwnerAdjustmentLoop is the bounded fixed-point search over the two
// free variables. Per iteration: check CoC, then bump cash flow and
// recheck, then decrement the entry fee (clamped at its lower bound) and
// recheck. That order is the tie-break rule between the two adjustments
// and must not change. Exhausting the iteration budget is not a failure;
// the last values are kept as a best-effort answer.
func (s *CalculatorService) runOwnerAdjustmentLoop(
	offerPrice float64,
) (monthlyCashFlow, entryFeePercent float64) {

	params := s.config.OwnerFavored
	adjustments := s.config.Adjustments

	entryFeePercent = params.EntryFeeMaxPercent
	monthlyCashFlow = params.MonthlyCashFlowStart

	iterations := 0
	for i := 0; i < s.config.MaxIterations; i++ {
		iterations = i + 1

		entryFeeAmount := offerPrice * entryFeePercent / 100
		if s.calculateCoC(monthlyCashFlow, entryFeeAmount) >= params.CoCThreshold {
			break
		}

		monthlyCashFlow *= 1 + adjustments.CashFlowIncreaseRate
		if s.calculateCoC(monthlyCashFlow, entryFeeAmount) >= params.CoCThreshold {
			break
		}

		entryFeePercent -= adjustments.EntryFeeReductionStep
		if entryFeePercent < params.EntryFeeMinPercent {
			entryFeePercent = params.EntryFeeMinPercent
		}
		entryFeeAmount = offerPrice * entryFeePercent / 100
		if s.calculateCoC(monthlyCashFlow, entryFeeAmount) >= params.CoCThreshold ||
			entryFeePercent == params.EntryFeeMinPercent {
			break
		}
	}

	s.logger.Debug("owner adjustment loop finished",
		"iterations", iterations,
		"cash_flow", monthlyCashFlow,
		"entry_fee_percent", entryFeePercent,
	)

	return monthlyCashFlow, entryFeePercent
}
