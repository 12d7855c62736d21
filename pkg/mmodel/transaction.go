package mmodel

import (
	"fmt"
	"strings"

	"github.com/CedrusPay/sluice/pkg/constant"
)

// TransactionType is the operation carried by an event on the stream.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType normalizes a wire value into a TransactionType.
// Matching is case-insensitive; unknown values are ErrUnknownTransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(value))) {
	case TransactionTypeDeposit:
		return TransactionTypeDeposit, nil
	case TransactionTypeWithdrawal:
		return TransactionTypeWithdrawal, nil
	case TransactionTypeDispute:
		return TransactionTypeDispute, nil
	case TransactionTypeResolve:
		return TransactionTypeResolve, nil
	case TransactionTypeChargeback:
		return TransactionTypeChargeback, nil
	default:
		return "", fmt.Errorf("%w: %q", constant.ErrUnknownTransactionType, value)
	}
}

// DisputeStatus records where a dispute on a deposit ended up. A transaction
// id gets at most one dispute over its lifetime.
type DisputeStatus uint8

const (
	DisputeStatusInProgress DisputeStatus = iota
	DisputeStatusResolved
	DisputeStatusChargeback
)

// Transaction is one event on the input stream. Amount is present for
// deposits and withdrawals and absent for the dispute family, where
// TransactionID references the disputed deposit instead.
type Transaction struct {
	Type          TransactionType `json:"type"`
	AccountID     uint16          `json:"client"`
	TransactionID uint32          `json:"tx"`
	Amount        *Monetary       `json:"amount,omitempty"`
}
