package service

const (
	MaxListedPrice = 1_000_000_000.0 // 1 billón
	MaxMonthlyRent = 10_000_000.0
	MaxARV         = 1_000_000_000.0
	MaxRepairSqft  = 1_000_000.0 // por tier de intensidad

	// offerCount is the fixed shape of one calculation: owner-favored,
	// buyer-favored, balanced.
	offerCount = 3

	resultCachePrefix = "offers:"
)
