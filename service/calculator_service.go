package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"

	gocache "github.com/patrickmn/go-cache"

	"offer-agent/config"
	"offer-agent/domain"
	"offer-agent/repository"
)

// CalculatorService derives the three seller-finance offer scenarios for
// a property. The engine itself is deterministic and side-effect free;
// the repository and cache are shell concerns layered around it.
type CalculatorService struct {
	config config.Engine
	repo   repository.OfferRepository
	cache  repository.CacheRepository
	logger *slog.Logger

	// memo holds rehab-cost and appreciated-value results keyed by their
	// exact input tuple. It is owned by this instance so entries never
	// leak across engine configurations.
	memo *gocache.Cache
}

// NewCalculatorService creates a new CalculatorService. A nil logger
// disables diagnostics.
func NewCalculatorService(
	cfg config.Engine,
	repo repository.OfferRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *CalculatorService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CalculatorService{
		config: cfg,
		repo:   repo,
		cache:  cache,
		logger: logger,
		memo:   gocache.New(gocache.NoExpiration, 0),
	}
}

// CalculateAllOffers runs the three solvers for one property and returns
// their results in fixed order: owner-favored, buyer-favored, balanced.
// The balanced scenario requires both upstream results to be buyable;
// otherwise it is substituted with a standard prerequisite failure.
func (s *CalculatorService) CalculateAllOffers(
	property domain.PropertyData,
	repairs domain.RepairSet,
) ([]domain.OfferResult, error) {

	if err := s.validateInput(property, repairs); err != nil {
		return nil, err
	}

	key := resultCacheKey(property, repairs)
	if cached, ok := s.lookupCachedOffers(key); ok {
		return cached, nil
	}

	ownerOffer := s.ownerFavoredOffer(property, repairs)
	buyerOffer := s.buyerFavoredOffer(property, repairs)

	var balancedOffer domain.OfferResult
	if !ownerOffer.IsBuyable || !buyerOffer.IsBuyable {
		balancedOffer = s.unbuyableResult(domain.OfferBalanced, ReasonPrerequisite, 0, 0, 0, 0)
	} else {
		balancedOffer = s.balancedOffer(ownerOffer, buyerOffer, property, repairs)
	}

	offers := []domain.OfferResult{ownerOffer, buyerOffer, balancedOffer}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(property, repairs, offers); err != nil {
		s.logger.Warn("failed to save offer calculation", "error", err)
	}

	s.storeCachedOffers(key, offers)

	return offers, nil
}

func (s *CalculatorService) validateInput(property domain.PropertyData, repairs domain.RepairSet) error {
	if err := property.Validate(); err != nil {
		return err
	}
	if property.ListedPrice > MaxListedPrice {
		return fmt.Errorf("listed price exceeds maximum of $%.2f", MaxListedPrice)
	}
	if property.MonthlyRent > MaxMonthlyRent {
		return fmt.Errorf("monthly rent exceeds maximum of $%.2f", MaxMonthlyRent)
	}
	if property.ARV > MaxARV {
		return fmt.Errorf("arv exceeds maximum of $%.2f", MaxARV)
	}
	if err := repairs.Validate(); err != nil {
		return err
	}
	if repairs.LightSqft > MaxRepairSqft || repairs.MediumSqft > MaxRepairSqft || repairs.HeavySqft > MaxRepairSqft {
		return fmt.Errorf("repair square footage exceeds maximum of %.0f sqft", MaxRepairSqft)
	}
	return nil
}

// calculateCoC is the cash-on-cash return in percent: annualized cash
// flow over cash invested. A non-positive entry fee yields 0.
func (s *CalculatorService) calculateCoC(monthlyCashFlow, entryFeeAmount float64) float64 {
	if entryFeeAmount <= 0 {
		return 0
	}
	return monthlyCashFlow * 12 / entryFeeAmount * 100
}

// rehabCost converts a repair scope to dollars using the per-tier rates.
func (s *CalculatorService) rehabCost(repairs domain.RepairSet) float64 {
	key := fmt.Sprintf("rehab:%g:%g:%g", repairs.LightSqft, repairs.MediumSqft, repairs.HeavySqft)
	if v, ok := s.memo.Get(key); ok {
		return v.(float64)
	}

	rates := s.config.RehabRates
	cost := repairs.LightSqft*rates.Light + repairs.MediumSqft*rates.Medium + repairs.HeavySqft*rates.Heavy
	s.memo.SetDefault(key, cost)
	return cost
}

// appreciatedValue projects a price forward by the configured annual
// appreciation rate over a balloon term.
func (s *CalculatorService) appreciatedValue(basePrice float64, balloonYears int) float64 {
	key := fmt.Sprintf("appr:%g:%d", basePrice, balloonYears)
	if v, ok := s.memo.Get(key); ok {
		return v.(float64)
	}

	value := basePrice * math.Pow(1+s.config.AppreciationPerYear, float64(balloonYears))
	s.memo.SetDefault(key, value)
	return value
}

// checkRehabBuyability applies the two rehab caps in order; the first
// failing check wins.
func (s *CalculatorService) checkRehabBuyability(rehabCost, arv, offerPrice float64) (bool, string) {
	caps := s.config.RehabCaps

	maxRehabARV := caps.ARVCapRate * arv
	if rehabCost > maxRehabARV {
		return false, fmt.Sprintf("Rehab cost ($%.2f) exceeds %.0f%% of ARV ($%.2f).",
			rehabCost, caps.ARVCapRate*100, maxRehabARV)
	}

	maxRehabBudget := caps.BudgetCapRate * offerPrice
	if rehabCost > maxRehabBudget {
		return false, fmt.Sprintf("Rehab cost ($%.2f) exceeds %.0f%% of Offer Price ($%.2f).",
			rehabCost, caps.BudgetCapRate*100, maxRehabBudget)
	}

	return true, ""
}

// nonDebtExpenses is the monthly carrying cost before debt service:
// fixed expenses plus the rent-relative vacancy, capex and management
// rates. Computed once per scenario and passed down.
func (s *CalculatorService) nonDebtExpenses(property domain.PropertyData) float64 {
	rent := property.MonthlyRent
	return property.FixedMonthlyExpenses() +
		rent*s.config.VacancyRate + rent*s.config.CapexRate + rent*s.config.PropMgmtRate
}

// amortizationYears is the time to fully repay the loan at the given
// payment, ignoring the balloon date. Non-positive payments never repay.
func (s *CalculatorService) amortizationYears(loanAmount, monthlyPayment float64) float64 {
	if monthlyPayment <= 0 {
		return math.Inf(1)
	}
	return loanAmount / (monthlyPayment * 12)
}

// capToMaxAmortization enforces the maximum amortization term. When the
// implied term exceeds the cap, the payment is re-derived at the cap and
// the cash flow recomputed from it. Applied at most once per solve path.
func (s *CalculatorService) capToMaxAmortization(
	loanAmount, monthlyPayment, cashFlow, rent, nonDebtExpenses float64,
) (float64, float64) {
	if s.amortizationYears(loanAmount, monthlyPayment) > s.config.MaxAmortizationYears {
		monthlyPayment = loanAmount / (s.config.MaxAmortizationYears * 12)
		cashFlow = rent - nonDebtExpenses - monthlyPayment
	}
	return monthlyPayment, cashFlow
}

// downPayment nets the entry fee down to cash at closing. May be
// negative, which the assembler treats as non-viable.
func (s *CalculatorService) downPayment(offerPrice, entryFeeAmount, rehabCost float64) float64 {
	closingCost := offerPrice * s.config.ClosingCostRate
	return entryFeeAmount - rehabCost - closingCost - s.config.AssignmentFee
}

func (s *CalculatorService) loanAmount(offerPrice, entryFeeAmount, rehabCost float64) float64 {
	return offerPrice - s.downPayment(offerPrice, entryFeeAmount, rehabCost)
}

func (s *CalculatorService) lookupCachedOffers(key string) ([]domain.OfferResult, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	raw, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	var offers []domain.OfferResult
	if err := json.Unmarshal([]byte(raw), &offers); err != nil || len(offers) != offerCount {
		return nil, false
	}
	s.logger.Debug("offer cache hit", "key", key)
	return offers, true
}

func (s *CalculatorService) storeCachedOffers(key string, offers []domain.OfferResult) {
	if s.cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(offers)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, string(raw)); err != nil {
		s.logger.Warn("failed to cache offer results", "error", err)
	}
}

func resultCacheKey(property domain.PropertyData, repairs domain.RepairSet) string {
	raw, err := json.Marshal(struct {
		Property domain.PropertyData `json:"property"`
		Repairs  domain.RepairSet    `json:"repairs"`
	}{property, repairs})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return resultCachePrefix + hex.EncodeToString(sum[:])
}
