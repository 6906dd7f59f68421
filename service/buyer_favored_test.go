package service

import (
	"testing"

	"offer-agent/domain"
)

// Reference scenario: 87k listing, 1150 rent, 1525 rehab. With the stock
// parameters the buyer-favored offer keeps the listing price, a 15%
// entry fee (13050) and a 17% target CoC giving 184.875/mo cash flow.
func TestBuyerFavoredOffer_ReferenceScenario(t *testing.T) {

	service, _ := newTestService()

	offer := service.buyerFavoredOffer(testProperty(), testRepairs())

	if !offer.IsBuyable {
		t.Fatalf("expected buyable offer, got reason %q", offer.UnbuyableReason)
	}
	if offer.OfferType != domain.OfferBuyerFavored {
		t.Fatalf("expected buyer-favored type, got %s", offer.OfferType)
	}

	inDelta(t, 87000, offer.FinalOfferPrice, 1e-9, "offer price")
	inDelta(t, 1525, offer.RehabCost, 1e-9, "rehab cost")
	inDelta(t, 15.0, offer.FinalEntryFeePercent, 1e-9, "entry fee percent")
	inDelta(t, 13050, offer.FinalEntryFeeAmount, 1e-6, "entry fee amount")
	inDelta(t, 184.875, offer.FinalMonthlyCashFlow, 1e-6, "monthly cash flow")

	// payment = rent - non-debt expenses - cash flow
	// = 1150 - (95+80 + 1150*0.20) - 184.875 = 560.125
	inDelta(t, 560.125, offer.MonthlyPayment, 1e-6, "monthly payment")
	inDelta(t, 17.0, offer.FinalCoCPercent, 1e-6, "coc percent")

	// down payment = 13050 - 1525 - 1740 - 5000
	inDelta(t, 4785, offer.DownPayment, 1e-6, "down payment")
	inDelta(t, 4785.0/87000*100, offer.DownPaymentPercent, 1e-6, "down payment percent")
	inDelta(t, 82215, offer.LoanAmount, 1e-6, "loan amount")

	if offer.BalloonPeriod != 7 {
		t.Errorf("expected 7 year balloon, got %d", offer.BalloonPeriod)
	}
	inDelta(t, 560.125*12*7, offer.PrincipalPaid, 1e-6, "principal paid")
	inDelta(t, 82215-560.125*12*7, offer.BalloonPayment, 1e-6, "balloon payment")

	if offer.AmortizationYears > service.config.MaxAmortizationYears {
		t.Errorf("amortization %.2f exceeds cap", offer.AmortizationYears)
	}
	// appreciation profit is the 7-year appreciated value over the price
	if offer.AppreciationProfit <= 0 {
		t.Errorf("expected positive appreciation profit, got %.2f", offer.AppreciationProfit)
	}
}

// A rent low enough to leave a long implied term must be corrected to
// the 45-year cap, re-deriving payment and cash flow.
func TestBuyerFavoredOffer_AmortizationCapApplied(t *testing.T) {

	service, _ := newTestService()

	property := testProperty()
	property.MonthlyRent = 300
	property.MonthlyPropertyTax = 0
	property.MonthlyInsurance = 0

	offer := service.buyerFavoredOffer(property, domain.RepairSet{})

	if !offer.IsBuyable {
		t.Fatalf("expected buyable offer, got reason %q", offer.UnbuyableReason)
	}

	inDelta(t, 45, offer.AmortizationYears, 1e-6, "amortization years")
	// payment re-derived at the cap: loan / (45*12)
	inDelta(t, offer.LoanAmount/(45*12), offer.MonthlyPayment, 1e-6, "capped payment")
	// cash flow recomputed from the capped payment
	nonDebt := service.nonDebtExpenses(property)
	inDelta(t, property.MonthlyRent-nonDebt-offer.MonthlyPayment, offer.FinalMonthlyCashFlow, 1e-6, "recomputed cash flow")
}

func TestBuyerFavoredOffer_GateRejection(t *testing.T) {

	service, _ := newTestService()

	property := testProperty()
	property.ARV = 90000
	repairs := domain.RepairSet{LightSqft: 300, MediumSqft: 100, HeavySqft: 100}

	offer := service.buyerFavoredOffer(property, repairs)

	if offer.IsBuyable {
		t.Fatalf("expected gate rejection")
	}
	if offer.UnbuyableReason == "" {
		t.Errorf("expected a rejection reason")
	}
	inDelta(t, 87000, offer.FinalOfferPrice, 1e-9, "offer price survives rejection")
	if offer.MonthlyPayment != 0 || offer.LoanAmount != 0 || offer.FinalEntryFeeAmount != 0 {
		t.Errorf("expected zeroed financial fields on gate rejection, got %+v", offer)
	}
}
