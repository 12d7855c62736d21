package services

import (
	"context"
	"sync"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"

	"github.com/CedrusPay/sluice/internal/adapters/storage"
	"github.com/CedrusPay/sluice/pkg/mmodel"
)

// accountWorker is the single consumer for one account id. It owns the
// account state from load to save, so per-account event order is simply the
// order events land in its inbox and no locking is needed around the ledger.
type accountWorker struct {
	accountID uint16
	inbox     chan *mmodel.Transaction

	// done is closed after the final save, so a successor for the same id
	// can order its load after this worker's save.
	done chan struct{}

	// lastForward is owned by the dispatcher goroutine and feeds the idle
	// eviction check. The worker never reads it.
	lastForward time.Time
}

// spawnAccountWorker starts the consumer goroutine for accountID and returns
// its handle. The worker loads the account from the repository (or creates a
// fresh one), applies every inbox event, and saves back on inbox close.
func spawnAccountWorker(ctx context.Context, accountID uint16, inboxCapacity int, repository storage.Repository, waitGroup *sync.WaitGroup) *accountWorker {
	worker := &accountWorker{
		accountID:   accountID,
		inbox:       make(chan *mmodel.Transaction, inboxCapacity),
		done:        make(chan struct{}),
		lastForward: time.Now(),
	}

	waitGroup.Add(1)

	go worker.run(ctx, repository, waitGroup)

	return worker
}

func (w *accountWorker) run(ctx context.Context, repository storage.Repository, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	logger := libCommons.NewLoggerFromContext(ctx)

	account := repository.Load(w.accountID)
	if account == nil {
		account = mmodel.NewAccount(w.accountID)
	}

	for transaction := range w.inbox {
		if err := account.Apply(transaction); err != nil {
			// Rejections are business outcomes, not failures; the stream
			// keeps flowing.
			logger.Warnf("transaction [%d]:[%s] rejected for client [%d]: %v",
				transaction.TransactionID, transaction.Type, transaction.AccountID, err)

			continue
		}

		logger.Debugf("transaction [%d]:[%s] processed for client [%d]",
			transaction.TransactionID, transaction.Type, transaction.AccountID)
	}

	repository.Save(w.accountID, account)

	close(w.done)
}
