package storage

import "github.com/CedrusPay/sluice/pkg/mmodel"

//go:generate mockgen -source=account.go -destination=account_mock.go -package=storage

// Repository is the keyed account store shared by every worker.
//
// Load hands the caller exclusive logical ownership of the returned account;
// the entry is removed from the store until Save puts it back. Per-key
// serialization is the caller's contract (one live worker per account id),
// not the store's: the store only has to survive concurrent Load/Save on
// different keys.
type Repository interface {
	// Load removes and returns the account for the given id, or nil when no
	// account has been saved for it.
	Load(accountID uint16) *mmodel.Account

	// Save stores the account under the given id, replacing any entry.
	Save(accountID uint16, account *mmodel.Account)

	// All returns every stored account in arbitrary order.
	All() []*mmodel.Account
}
