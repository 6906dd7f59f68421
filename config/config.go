package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   Server
	Cache    Cache
	Engine   Engine
	LogLevel string `env:"OFFER_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

type Server struct {
	Addr         string        `env:"OFFER_HTTP_ADDR" validate:"required"`
	ReadTimeout  time.Duration `env:"OFFER_HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"OFFER_HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `env:"OFFER_HTTP_IDLE_TIMEOUT"`
}

type Cache struct {
	// RedisAddr selects the redis-backed result cache when non-empty;
	// otherwise the in-process cache is used.
	RedisAddr string        `env:"OFFER_REDIS_ADDR"`
	TTL       time.Duration `env:"OFFER_CACHE_TTL" validate:"gt=0"`
}

// Engine holds every tunable of the offer computation. It is read-only
// for the lifetime of a CalculatorService.
type Engine struct {
	// AnnualInterestRate is carried for future payment math; the current
	// derivation treats seller financing as zero-interest.
	AnnualInterestRate   float64 `env:"OFFER_ANNUAL_INTEREST_RATE" validate:"gte=0"`
	AssignmentFee        float64 `env:"OFFER_ASSIGNMENT_FEE" validate:"gte=0"`
	ClosingCostRate      float64 `env:"OFFER_CLOSING_COST_RATE" validate:"gte=0,lte=1"`
	VacancyRate          float64 `env:"OFFER_VACANCY_RATE" validate:"gte=0,lte=1"`
	CapexRate            float64 `env:"OFFER_CAPEX_RATE" validate:"gte=0,lte=1"`
	PropMgmtRate         float64 `env:"OFFER_PROP_MGMT_RATE" validate:"gte=0,lte=1"`
	AppreciationPerYear  float64 `env:"OFFER_APPRECIATION_PER_YEAR" validate:"gte=0"`
	MaxAmortizationYears float64 `env:"OFFER_MAX_AMORTIZATION_YEARS" validate:"gt=0"`
	MaxIterations        int     `env:"OFFER_MAX_ITERATIONS" validate:"gt=0"`

	RehabRates   RehabRates
	RehabCaps    RehabCaps
	OwnerFavored OwnerFavored
	BuyerFavored BuyerFavored
	Balanced     Balanced
	Adjustments  Adjustments
}

// RehabRates are dollar costs per square foot of renovation.
type RehabRates struct {
	Light  float64 `env:"OFFER_REHAB_RATE_LIGHT" validate:"gte=0"`
	Medium float64 `env:"OFFER_REHAB_RATE_MEDIUM" validate:"gte=0"`
	Heavy  float64 `env:"OFFER_REHAB_RATE_HEAVY" validate:"gte=0"`
}

// RehabCaps bound the rehab cost relative to ARV and to the offer price.
type RehabCaps struct {
	ARVCapRate    float64 `env:"OFFER_REHAB_ARV_CAP" validate:"gt=0,lte=1"`
	BudgetCapRate float64 `env:"OFFER_REHAB_BUDGET_CAP" validate:"gt=0,lte=1"`
}

type OwnerFavored struct {
	MonthlyCashFlowStart   float64 `env:"OFFER_OWNER_CASH_FLOW_START" validate:"gt=0"`
	CoCThreshold           float64 `env:"OFFER_OWNER_COC_THRESHOLD" validate:"gt=0"`
	EntryFeeMinPercent     float64 `env:"OFFER_OWNER_ENTRY_FEE_MIN" validate:"gt=0"`
	EntryFeeMaxPercent     float64 `env:"OFFER_OWNER_ENTRY_FEE_MAX" validate:"gt=0"`
	AppreciationProfitRate float64 `env:"OFFER_OWNER_APPRECIATION_PROFIT_RATE" validate:"gte=0"`
	BalloonPeriod          int     `env:"OFFER_OWNER_BALLOON_PERIOD" validate:"gt=0"`
}

type BuyerFavored struct {
	TargetCoCPercent float64 `env:"OFFER_BUYER_TARGET_COC" validate:"gt=0"`
	EntryFeePercent  float64 `env:"OFFER_BUYER_ENTRY_FEE" validate:"gt=0"`
	BalloonPeriod    int     `env:"OFFER_BUYER_BALLOON_PERIOD" validate:"gt=0"`
}

type Balanced struct {
	TargetCoCPercent   float64 `env:"OFFER_BALANCED_TARGET_COC" validate:"gt=0"`
	MonthlyCashFlowMin float64 `env:"OFFER_BALANCED_CASH_FLOW_MIN" validate:"gte=0"`
	BalloonPeriod      int     `env:"OFFER_BALANCED_BALLOON_PERIOD" validate:"gt=0"`
}

// Adjustments drive the owner-favored search loop.
type Adjustments struct {
	CashFlowIncreaseRate  float64 `env:"OFFER_ADJ_CASH_FLOW_INCREASE" validate:"gt=0"`
	EntryFeeReductionStep float64 `env:"OFFER_ADJ_ENTRY_FEE_STEP" validate:"gt=0"`
}

// Default returns the stock parameter set.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Cache: Cache{
			TTL: 10 * time.Minute,
		},
		Engine:   DefaultEngine(),
		LogLevel: "info",
	}
}

// DefaultEngine returns the stock engine tunables.
func DefaultEngine() Engine {
	return Engine{
		AnnualInterestRate:   0.0,
		AssignmentFee:        5000.0,
		ClosingCostRate:      0.02,
		VacancyRate:          0.0,
		CapexRate:            0.10,
		PropMgmtRate:         0.10,
		AppreciationPerYear:  0.045,
		MaxAmortizationYears: 45.0,
		MaxIterations:        100,
		RehabRates:           RehabRates{Light: 20.0, Medium: 35.0, Heavy: 60.0},
		RehabCaps:            RehabCaps{ARVCapRate: 0.15, BudgetCapRate: 0.35},
		OwnerFavored: OwnerFavored{
			MonthlyCashFlowStart:   200.0,
			CoCThreshold:           11.0,
			EntryFeeMinPercent:     21.0,
			EntryFeeMaxPercent:     23.0,
			AppreciationProfitRate: 0.15,
			BalloonPeriod:          5,
		},
		BuyerFavored: BuyerFavored{
			TargetCoCPercent: 17.0,
			EntryFeePercent:  15.0,
			BalloonPeriod:    7,
		},
		Balanced: Balanced{
			TargetCoCPercent:   14.0,
			MonthlyCashFlowMin: 200.0,
			BalloonPeriod:      6,
		},
		Adjustments: Adjustments{
			CashFlowIncreaseRate:  0.02,
			EntryFeeReductionStep: 0.5,
		},
	}
}

// Load builds the config from defaults, .env and OFFER_* environment
// overrides, then validates it.
func Load() (Config, error) {
	_ = godotenv.Load()

	config := Default()

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate applies the struct tags plus the cross-field checks the tags
// cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Engine.OwnerFavored.EntryFeeMinPercent > c.Engine.OwnerFavored.EntryFeeMaxPercent {
		return fmt.Errorf("config validation: owner entry fee min %.2f exceeds max %.2f",
			c.Engine.OwnerFavored.EntryFeeMinPercent, c.Engine.OwnerFavored.EntryFeeMaxPercent)
	}
	return nil
}
