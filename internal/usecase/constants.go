package usecase

import "time"

const (
	// DefaultBatchLimit caps how many unmatched transactions one
	// classification run picks up.
	DefaultBatchLimit = 1000

	// DefaultClassifyWorkers is the fallback worker-pool size for a batch
	// run when config does not say otherwise.
	DefaultClassifyWorkers = 4

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
