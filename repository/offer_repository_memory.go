package repository

import (
	"sync"
	"time"

	"offer-agent/domain"
)

// CalculationRecord is one stored calculation: the inputs alongside the
// three offers derived from them.
type CalculationRecord struct {
	Property     domain.PropertyData
	Repairs      domain.RepairSet
	Offers       []domain.OfferResult
	CalculatedAt time.Time
}

// OfferRepositoryMemory is an in-memory implementation of OfferRepository.
type OfferRepositoryMemory struct {
	mu      sync.Mutex
	records []CalculationRecord
}

// NewOfferRepositoryMemory creates a new in-memory offer repository.
func NewOfferRepositoryMemory() *OfferRepositoryMemory {
	return &OfferRepositoryMemory{
		records: []CalculationRecord{},
	}
}

// Save stores the calculation in memory.
func (r *OfferRepositoryMemory) Save(
	property domain.PropertyData,
	repairs domain.RepairSet,
	offers []domain.OfferResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, CalculationRecord{
		Property:     property,
		Repairs:      repairs,
		Offers:       offers,
		CalculatedAt: time.Now(),
	})
	return nil
}

// Len reports how many calculations have been stored.
func (r *OfferRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
