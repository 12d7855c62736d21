package services

import (
	"context"
	"sync"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"

	"github.com/CedrusPay/sluice/internal/adapters/storage"
	"github.com/CedrusPay/sluice/pkg/mmodel"
)

// Engine defaults; each can be overridden through Config.
const (
	DefaultBackpressureCapacity = 256
	DefaultRegistryCapacity     = 5000
	DefaultIdleTimeout          = 5 * time.Minute
)

// Config bounds the engine's two memory dimensions: events in flight and live
// account workers.
type Config struct {
	// BackpressureCapacity is the ingest channel depth. A full channel blocks
	// the producer, which is the backpressure mechanism.
	BackpressureCapacity int

	// RegistryCapacity is the maximum number of live workers before the
	// least-recently-used one is evicted.
	RegistryCapacity int

	// IdleTimeout marks a worker eviction-eligible once no event has been
	// forwarded to it for this long. Zero disables idle eviction.
	IdleTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BackpressureCapacity <= 0 {
		c.BackpressureCapacity = DefaultBackpressureCapacity
	}

	if c.RegistryCapacity <= 0 {
		c.RegistryCapacity = DefaultRegistryCapacity
	}

	if c.IdleTimeout < 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}

	return c
}

// Engine routes a transaction stream to per-account workers.
//
// One worker exists per live account id, so per-account processing order
// equals arrival order while distinct accounts progress in parallel. The
// worker registry is bounded; evicted accounts are rehydrated from the
// repository on their next event, invisibly to the producer.
type Engine struct {
	repository storage.Repository
	config     Config
}

// NewEngine creates an engine over the given account repository. A zero or
// negative BackpressureCapacity or RegistryCapacity falls back to its default;
// a zero IdleTimeout disables idle eviction and a negative one falls back to
// the default.
func NewEngine(repository storage.Repository, config Config) *Engine {
	return &Engine{
		repository: repository,
		config:     config.withDefaults(),
	}
}

// Run consumes the stream until it is closed, then drains and terminates
// every worker before returning. When Run returns nil, every account's final
// state has been saved to the repository.
//
// Per-event problems are logged and dropped; only setup failures surface.
func (e *Engine) Run(ctx context.Context, stream <-chan *mmodel.Transaction) error {
	logger := libCommons.NewLoggerFromContext(ctx)

	registry, err := newWorkerRegistry(e.config.RegistryCapacity, e.config.IdleTimeout)
	if err != nil {
		return err
	}

	var waitGroup sync.WaitGroup

	for transaction := range stream {
		worker := registry.lookup(transaction.AccountID)

		if worker == nil {
			// A predecessor for this id may still be draining; its save must
			// land before the successor loads.
			registry.awaitDrained(transaction.AccountID)
			registry.reapDrained()

			worker = spawnAccountWorker(ctx, transaction.AccountID, e.config.BackpressureCapacity, e.repository, &waitGroup)
			registry.install(transaction.AccountID, worker)

			logger.Debugf("worker spawned for client [%d]", transaction.AccountID)
		}

		worker.inbox <- transaction
		worker.lastForward = time.Now()
	}

	// End of stream: close every inbox and wait for the termination latch.
	registry.purge()
	waitGroup.Wait()

	logger.Info("stream drained, all workers terminated")

	return nil
}
