package ledger

import "errors"

// Sentinel errors for cross-layer signaling. Operations wrap them with
// context; callers match with errors.Is. Every validation failure aborts the
// whole operation with no partial write.
var (
	// Structural transaction failures.
	ErrEmptyTransaction  = errors.New("transaction needs at least two entries")
	ErrNoDebit           = errors.New("transaction has no debit entry")
	ErrNoCredit          = errors.New("transaction has no credit entry")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrUnbalanced        = errors.New("debits do not equal credits")
	ErrInvalidSide       = errors.New("side must be debit or credit")
	ErrEmptyID           = errors.New("id is required")
	ErrEmptyDescription  = errors.New("description is required")
	ErrInvalidName       = errors.New("name is required")
	ErrInvalidType       = errors.New("invalid account type")

	// Referential failures.
	ErrNotFound             = errors.New("not found")
	ErrUnknownAccount       = errors.New("unknown account")
	ErrUnknownParent        = errors.New("unknown parent account")
	ErrParentCycle          = errors.New("account may not be its own ancestor")
	ErrDuplicateAccount     = errors.New("account id already exists")
	ErrDuplicateTransaction = errors.New("transaction id already exists")

	// ErrImmutableType signals an attempt to change an account's type after
	// creation. Normal-balance logic depends on the type never moving.
	ErrImmutableType = errors.New("account type is immutable")

	// ErrOutOfBalance reports an internal consistency violation detected
	// while generating a statement. It indicates corrupted ledger state, not
	// caller error, and is surfaced instead of an approximate report.
	ErrOutOfBalance = errors.New("ledger out of balance")
)
