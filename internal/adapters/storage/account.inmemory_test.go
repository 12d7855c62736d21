package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CedrusPay/sluice/pkg/mmodel"
)

func TestAccountInMemoryRepository_LoadMiss(t *testing.T) {
	t.Parallel()

	repository := NewAccountInMemoryRepository()

	assert.Nil(t, repository.Load(1))
}

func TestAccountInMemoryRepository_LoadTakesOwnership(t *testing.T) {
	t.Parallel()

	repository := NewAccountInMemoryRepository()
	account := mmodel.NewAccount(42)

	repository.Save(42, account)

	loaded := repository.Load(42)
	require.Same(t, account, loaded)

	// The entry left the store with the first load.
	assert.Nil(t, repository.Load(42))
	assert.Empty(t, repository.All())
}

func TestAccountInMemoryRepository_SaveReplaces(t *testing.T) {
	t.Parallel()

	repository := NewAccountInMemoryRepository()

	repository.Save(7, mmodel.NewAccount(7))

	replacement := mmodel.NewAccount(7)
	replacement.Available = mmodel.Monetary(12345)
	repository.Save(7, replacement)

	loaded := repository.Load(7)
	require.NotNil(t, loaded)
	assert.Equal(t, mmodel.Monetary(12345), loaded.Available)
}

func TestAccountInMemoryRepository_All(t *testing.T) {
	t.Parallel()

	repository := NewAccountInMemoryRepository()

	for id := uint16(1); id <= 200; id++ {
		repository.Save(id, mmodel.NewAccount(id))
	}

	accounts := repository.All()
	require.Len(t, accounts, 200)

	seen := map[uint16]bool{}
	for _, account := range accounts {
		seen[account.AccountID] = true
	}

	assert.Len(t, seen, 200)
}

// Many goroutines hammering disjoint keys must not corrupt the store; the
// per-key serialization contract belongs to the callers, not here.
func TestAccountInMemoryRepository_ConcurrentDisjointKeys(t *testing.T) {
	t.Parallel()

	repository := NewAccountInMemoryRepository()

	var waitGroup sync.WaitGroup

	for id := uint16(0); id < 128; id++ {
		waitGroup.Add(1)

		go func(accountID uint16) {
			defer waitGroup.Done()

			for i := 0; i < 100; i++ {
				account := repository.Load(accountID)
				if account == nil {
					account = mmodel.NewAccount(accountID)
				}

				account.Available++
				repository.Save(accountID, account)
			}
		}(id)
	}

	waitGroup.Wait()

	accounts := repository.All()
	require.Len(t, accounts, 128)

	for _, account := range accounts {
		assert.Equal(t, mmodel.Monetary(100), account.Available)
	}
}
