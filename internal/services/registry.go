package services

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// workerRegistry maps live account ids to worker handles under a capacity
// bound. Everything here runs on the dispatcher goroutine: the LRU fires its
// eviction callback synchronously inside Add/Remove/Purge, so inbox closes
// never race a send.
//
// Evicted handles move to the draining set until their worker signals done.
// That hand-off is what lets a later miss for the same id wait for the
// predecessor's save before a successor loads.
type workerRegistry struct {
	idleTimeout time.Duration
	cache       *lru.Cache
	draining    map[uint16]*accountWorker
}

func newWorkerRegistry(capacity int, idleTimeout time.Duration) (*workerRegistry, error) {
	registry := &workerRegistry{
		idleTimeout: idleTimeout,
		draining:    map[uint16]*accountWorker{},
	}

	cache, err := lru.NewWithEvict(capacity, registry.onEvicted)
	if err != nil {
		return nil, err
	}

	registry.cache = cache

	return registry, nil
}

func (r *workerRegistry) onEvicted(key, value any) {
	worker := value.(*accountWorker)

	close(worker.inbox)

	r.draining[key.(uint16)] = worker
}

// lookup returns the live worker for accountID, or nil on a miss. A hit whose
// last forward is older than the idle timeout is evicted on the spot and
// reported as a miss, which is what triggers rehydration.
func (r *workerRegistry) lookup(accountID uint16) *accountWorker {
	value, exists := r.cache.Get(accountID)
	if !exists {
		return nil
	}

	worker := value.(*accountWorker)

	if r.idleTimeout > 0 && time.Since(worker.lastForward) > r.idleTimeout {
		r.cache.Remove(accountID)

		return nil
	}

	return worker
}

// install registers a freshly spawned worker. The insert may push the
// least-recently-used entry into draining.
func (r *workerRegistry) install(accountID uint16, worker *accountWorker) {
	r.cache.Add(accountID, worker)
}

// awaitDrained blocks until a draining predecessor for accountID has saved
// and terminated. Callers must invoke this before spawning a successor for
// the same id; without it the successor's load could race the save.
func (r *workerRegistry) awaitDrained(accountID uint16) {
	worker, exists := r.draining[accountID]
	if !exists {
		return
	}

	<-worker.done

	delete(r.draining, accountID)
}

// reapDrained drops draining entries whose workers already finished. It never
// blocks; stragglers stay parked until their id is needed or shutdown.
func (r *workerRegistry) reapDrained() {
	for accountID, worker := range r.draining {
		select {
		case <-worker.done:
			delete(r.draining, accountID)
		default:
		}
	}
}

// purge closes every live inbox. Workers drain what they already received,
// save, and terminate; the caller collects them through the termination
// latch.
func (r *workerRegistry) purge() {
	r.cache.Purge()
}
