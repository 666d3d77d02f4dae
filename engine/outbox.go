package engine

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// FlushFunc persists one recomputed toggle state for a slot.
type FlushFunc func(ctx context.Context, slotID uuid.UUID, t Toggles) error

// RecomputeOutbox collapses rapid toggle changes into at most one pending
// persist per slot. Submitting a newer toggle state replaces any queued one,
// so only the most recent value for a slot is ultimately written — a
// replace-pending-write buffer, not a queue.
type RecomputeOutbox struct {
	mu      sync.Mutex
	pending map[uuid.UUID]Toggles
	active  map[uuid.UUID]bool
	flush   FlushFunc
	wg      sync.WaitGroup
}

func NewRecomputeOutbox(flush FlushFunc) *RecomputeOutbox {
	return &RecomputeOutbox{
		pending: make(map[uuid.UUID]Toggles),
		active:  make(map[uuid.UUID]bool),
		flush:   flush,
	}
}

// Submit records the latest toggle state for a slot and starts a drain for
// it unless one is already running. Never blocks.
func (o *RecomputeOutbox) Submit(slotID uuid.UUID, t Toggles) {
	o.mu.Lock()
	o.pending[slotID] = t
	if o.active[slotID] {
		o.mu.Unlock()
		return
	}
	o.active[slotID] = true
	o.wg.Add(1)
	o.mu.Unlock()

	go o.drain(slotID)
}

func (o *RecomputeOutbox) drain(slotID uuid.UUID) {
	defer o.wg.Done()
	for {
		o.mu.Lock()
		t, ok := o.pending[slotID]
		if !ok {
			o.active[slotID] = false
			o.mu.Unlock()
			return
		}
		delete(o.pending, slotID)
		o.mu.Unlock()

		if err := o.flush(context.Background(), slotID, t); err != nil {
			log.Printf("⚠️  Recompute flush failed for slot %s: %v", slotID, err)
		}
	}
}

// Wait blocks until every in-flight drain has finished. Used on shutdown and
// in tests.
func (o *RecomputeOutbox) Wait() {
	o.wg.Wait()
}
