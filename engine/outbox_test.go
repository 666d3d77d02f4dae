package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rapid submits while a flush is in flight must collapse: only the newest
// toggle state is written afterwards, intermediates are dropped.
func TestOutboxReplacesPendingWrite(t *testing.T) {
	slotID := uuid.New()

	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var flushed []Toggles
	first := true

	outbox := NewRecomputeOutbox(func(ctx context.Context, id uuid.UUID, tg Toggles) error {
		mu.Lock()
		flushed = append(flushed, tg)
		blockThis := first
		first = false
		mu.Unlock()
		if blockThis {
			started <- struct{}{}
			<-release
		}
		return nil
	})

	outbox.Submit(slotID, Toggles{AdditionalCost: decimal.NewFromInt(1)})
	<-started // first flush is now in flight

	// These arrive while the first write is still out; each replaces the last.
	outbox.Submit(slotID, Toggles{AdditionalCost: decimal.NewFromInt(2)})
	outbox.Submit(slotID, Toggles{AdditionalCost: decimal.NewFromInt(3)})

	close(release)
	outbox.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(flushed) != 2 {
		t.Fatalf("expected 2 flushes (first + latest), got %d", len(flushed))
	}
	if !flushed[0].AdditionalCost.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("first flush saw %s", flushed[0].AdditionalCost)
	}
	if !flushed[1].AdditionalCost.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("second flush must carry the newest state, saw %s", flushed[1].AdditionalCost)
	}
}

func TestOutboxIndependentSlots(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[uuid.UUID]int)

	outbox := NewRecomputeOutbox(func(ctx context.Context, id uuid.UUID, tg Toggles) error {
		mu.Lock()
		seen[id]++
		mu.Unlock()
		return nil
	})

	a, b := uuid.New(), uuid.New()
	outbox.Submit(a, DefaultToggles())
	outbox.Submit(b, DefaultToggles())
	outbox.Wait()

	mu.Lock()
	defer mu.Unlock()
	if seen[a] != 1 || seen[b] != 1 {
		t.Fatalf("each slot should flush once, got %v", seen)
	}
}
