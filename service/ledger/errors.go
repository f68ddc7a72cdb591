package ledger

import "errors"

// Mutation error kinds. Callers branch with errors.Is; the API layer maps
// each kind to its own status code.
var (
	// ErrValidation — rejected before any write (negative target quantity,
	// zero delta).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound — the item does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrConflict — the optimistic-concurrency retry budget was exhausted.
	// No partial state is left behind.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrInsufficientBatchStock — FIFO consumption could not cover the
	// requested decrease; the whole mutation was rolled back.
	ErrInsufficientBatchStock = errors.New("insufficient batch stock")

	// ErrStorageUnavailable — the backing store failed or is unreachable.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
