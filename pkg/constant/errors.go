package constant

import "errors"

// Ledger policy errors. A rejected event never mutates account state; the
// worker logs these at warn and keeps consuming.
var (
	// ErrAccountLocked is returned for any event targeting an account that
	// has been locked by a chargeback.
	ErrAccountLocked = errors.New("errAccountLocked")

	// ErrDuplicateTransaction is returned when a deposit reuses a
	// transaction id already recorded on the account ledger.
	ErrDuplicateTransaction = errors.New("errDuplicateTransaction")

	// ErrDuplicateDispute is returned when a transaction id is disputed a
	// second time, regardless of how the first dispute ended.
	ErrDuplicateDispute = errors.New("errDuplicateDispute")

	// ErrTransactionNotFound is returned when a dispute-family event
	// references a transaction id with no recorded deposit.
	ErrTransactionNotFound = errors.New("errTransactionNotFound")

	// ErrDisputeNotFound is returned when a resolve or chargeback references
	// a transaction id that was never disputed.
	ErrDisputeNotFound = errors.New("errDisputeNotFound")

	// ErrDisputeNotInProgress is returned when a resolve or chargeback
	// references a dispute that already reached a terminal status.
	ErrDisputeNotInProgress = errors.New("errDisputeNotInProgress")

	// ErrAmountRequired is returned when a deposit or withdrawal carries no
	// amount.
	ErrAmountRequired = errors.New("errAmountRequired")

	// ErrNegativeAmount is returned when a deposit or withdrawal carries a
	// negative amount.
	ErrNegativeAmount = errors.New("errNegativeAmount")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available balance.
	ErrInsufficientFunds = errors.New("errInsufficientFunds")
)

// Arithmetic and parse errors.
var (
	// ErrMonetaryOverflow is returned when a checked monetary operation
	// would exceed the representable range.
	ErrMonetaryOverflow = errors.New("errMonetaryOverflow")

	// ErrInvalidMonetary is returned when a textual amount cannot be parsed
	// into a monetary value.
	ErrInvalidMonetary = errors.New("errInvalidMonetary")

	// ErrUnknownTransactionType is returned when a record carries a
	// transaction type outside the supported set.
	ErrUnknownTransactionType = errors.New("errUnknownTransactionType")
)
