package mmodel

import (
	"fmt"

	"github.com/CedrusPay/sluice/pkg/constant"
)

// Account is the state of a single client: spendable funds, funds held under
// dispute, the lock flag set by a chargeback, and the bookkeeping needed for
// the dispute lifecycle. An account is owned by exactly one worker while
// live; concurrent access is never required.
type Account struct {
	AccountID uint16
	Available Monetary
	Held      Monetary
	Locked    bool

	// ledger records every successfully applied deposit by transaction id.
	// Withdrawals are deliberately absent, which is what makes them
	// undisputable.
	ledger map[uint32]Monetary

	// disputes records the current or terminal status per disputed deposit.
	disputes map[uint32]DisputeStatus
}

// NewAccount creates an empty, unlocked account for the given client id.
func NewAccount(accountID uint16) *Account {
	return &Account{
		AccountID: accountID,
		ledger:    map[uint32]Monetary{},
		disputes:  map[uint32]DisputeStatus{},
	}
}

// Total returns available + held using checked arithmetic.
func (a *Account) Total() (Monetary, error) {
	return a.Available.CheckedAdd(a.Held)
}

// Apply runs a single transaction against the account.
//
// A locked account rejects every event before the body is inspected. All
// other rejections (policy or overflow) leave the account exactly as it was;
// there is no partial mutation.
func (a *Account) Apply(transaction *Transaction) error {
	if a.Locked {
		return fmt.Errorf("%w: client [%d]", constant.ErrAccountLocked, a.AccountID)
	}

	switch transaction.Type {
	case TransactionTypeDeposit:
		return a.deposit(transaction)
	case TransactionTypeWithdrawal:
		return a.withdrawal(transaction)
	case TransactionTypeDispute:
		return a.dispute(transaction)
	case TransactionTypeResolve:
		return a.resolve(transaction)
	case TransactionTypeChargeback:
		return a.chargeback(transaction)
	default:
		return fmt.Errorf("%w: %q", constant.ErrUnknownTransactionType, transaction.Type)
	}
}

func (a *Account) deposit(transaction *Transaction) error {
	amount, err := a.requireAmount(transaction)
	if err != nil {
		return err
	}

	if _, exists := a.ledger[transaction.TransactionID]; exists {
		return fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrDuplicateTransaction, transaction.TransactionID, a.AccountID)
	}

	available, err := a.Available.CheckedAdd(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	// Keep the running total representable too, not only the available leg.
	if _, err := available.CheckedAdd(a.Held); err != nil {
		return a.overflow(transaction, err)
	}

	a.Available = available
	a.ledger[transaction.TransactionID] = amount

	return nil
}

func (a *Account) withdrawal(transaction *Transaction) error {
	amount, err := a.requireAmount(transaction)
	if err != nil {
		return err
	}

	if a.Available < amount {
		return fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrInsufficientFunds, transaction.TransactionID, a.AccountID)
	}

	available, err := a.Available.CheckedSub(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	a.Available = available

	return nil
}

func (a *Account) dispute(transaction *Transaction) error {
	if _, exists := a.disputes[transaction.TransactionID]; exists {
		return fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrDuplicateDispute, transaction.TransactionID, a.AccountID)
	}

	amount, err := a.depositAmount(transaction)
	if err != nil {
		return err
	}

	available, err := a.Available.CheckedSub(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	held, err := a.Held.CheckedAdd(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	a.Available = available
	a.Held = held
	a.disputes[transaction.TransactionID] = DisputeStatusInProgress

	return nil
}

func (a *Account) resolve(transaction *Transaction) error {
	if err := a.requireDisputeInProgress(transaction); err != nil {
		return err
	}

	amount, err := a.depositAmount(transaction)
	if err != nil {
		return err
	}

	available, err := a.Available.CheckedAdd(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	held, err := a.Held.CheckedSub(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	a.Available = available
	a.Held = held
	a.disputes[transaction.TransactionID] = DisputeStatusResolved

	return nil
}

func (a *Account) chargeback(transaction *Transaction) error {
	if err := a.requireDisputeInProgress(transaction); err != nil {
		return err
	}

	amount, err := a.depositAmount(transaction)
	if err != nil {
		return err
	}

	held, err := a.Held.CheckedSub(amount)
	if err != nil {
		return a.overflow(transaction, err)
	}

	// The disputed funds leave the account entirely and the client is frozen.
	a.Held = held
	a.Locked = true
	a.disputes[transaction.TransactionID] = DisputeStatusChargeback

	return nil
}

func (a *Account) requireAmount(transaction *Transaction) (Monetary, error) {
	if transaction.Amount == nil {
		return 0, fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrAmountRequired, transaction.TransactionID, a.AccountID)
	}

	if transaction.Amount.IsNegative() {
		return 0, fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrNegativeAmount, transaction.TransactionID, a.AccountID)
	}

	return *transaction.Amount, nil
}

func (a *Account) depositAmount(transaction *Transaction) (Monetary, error) {
	amount, exists := a.ledger[transaction.TransactionID]
	if !exists {
		return 0, fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrTransactionNotFound, transaction.TransactionID, a.AccountID)
	}

	return amount, nil
}

func (a *Account) requireDisputeInProgress(transaction *Transaction) error {
	status, exists := a.disputes[transaction.TransactionID]
	if !exists {
		return fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrDisputeNotFound, transaction.TransactionID, a.AccountID)
	}

	if status != DisputeStatusInProgress {
		return fmt.Errorf("%w: transaction [%d] for client [%d]", constant.ErrDisputeNotInProgress, transaction.TransactionID, a.AccountID)
	}

	return nil
}

func (a *Account) overflow(transaction *Transaction, err error) error {
	return fmt.Errorf("%w: transaction [%d] for client [%d]", err, transaction.TransactionID, a.AccountID)
}
