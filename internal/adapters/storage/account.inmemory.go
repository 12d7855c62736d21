package storage

import (
	"sync"

	"github.com/CedrusPay/sluice/pkg/mmodel"
)

const shardCount = 64

// AccountInMemoryRepository is a striped in-memory Repository. Keys are
// spread over fixed shards so workers touching different accounts rarely
// contend on the same mutex.
type AccountInMemoryRepository struct {
	shards [shardCount]accountShard
}

type accountShard struct {
	mutex    sync.RWMutex
	accounts map[uint16]*mmodel.Account
}

// NewAccountInMemoryRepository creates an empty in-memory account store.
func NewAccountInMemoryRepository() *AccountInMemoryRepository {
	repository := &AccountInMemoryRepository{}
	for i := range repository.shards {
		repository.shards[i].accounts = map[uint16]*mmodel.Account{}
	}

	return repository
}

func (r *AccountInMemoryRepository) shard(accountID uint16) *accountShard {
	return &r.shards[accountID%shardCount]
}

// Load removes and returns the account for accountID, or nil on a miss.
func (r *AccountInMemoryRepository) Load(accountID uint16) *mmodel.Account {
	shard := r.shard(accountID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	account, exists := shard.accounts[accountID]
	if !exists {
		return nil
	}

	delete(shard.accounts, accountID)

	return account
}

// Save stores account under accountID, replacing any previous entry.
func (r *AccountInMemoryRepository) Save(accountID uint16, account *mmodel.Account) {
	shard := r.shard(accountID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	shard.accounts[accountID] = account
}

// All returns every stored account in arbitrary order.
func (r *AccountInMemoryRepository) All() []*mmodel.Account {
	accounts := make([]*mmodel.Account, 0)

	for i := range r.shards {
		shard := &r.shards[i]

		shard.mutex.RLock()

		for _, account := range shard.accounts {
			accounts = append(accounts, account)
		}

		shard.mutex.RUnlock()
	}

	return accounts
}
