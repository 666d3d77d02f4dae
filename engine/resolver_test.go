package engine

import (
	"context"
	"errors"
	"testing"

	"kasmoni-backend/models"
)

func TestCompletionBucket(t *testing.T) {
	cases := []struct {
		collected, total int
		want             string
	}{
		{0, 0, models.CompletionFailed}, // no slots: no division error
		{0, 10, models.CompletionFailed},
		{1, 10, models.CompletionPending},
		{4, 10, models.CompletionPending},
		{5, 10, models.CompletionProcessing},
		{9, 10, models.CompletionProcessing},
		{10, 10, models.CompletionCompleted},
		{1, 1, models.CompletionCompleted},
		{1, 3, models.CompletionPending},
		{2, 3, models.CompletionProcessing},
	}
	for _, tc := range cases {
		if got := completionBucket(tc.collected, tc.total); got != tc.want {
			t.Errorf("completionBucket(%d, %d) = %s, want %s", tc.collected, tc.total, got, tc.want)
		}
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := completionPercent(0, 0); got != 0 {
		t.Fatalf("0/0 should be 0%%, got %d", got)
	}
	if got := completionPercent(5, 10); got != 50 {
		t.Fatalf("5/10 should be 50%%, got %d", got)
	}
	if got := completionPercent(1, 3); got != 33 {
		t.Fatalf("1/3 should floor to 33%%, got %d", got)
	}
}

func TestSlotsForMonth(t *testing.T) {
	store := newFakeStore()
	resolver := NewResolver(store)

	// Group A: 3 slots, one pays out in 2024-06, two slots collected.
	a1 := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 3)
	a2 := store.addSlot("group-a", "bob", "Group A", "Bob", "2024-07", 5000, 3)
	store.addSlot("group-a", "carol", "Group A", "Carol", "2024-08", 5000, 3)
	store.addPayment(a1, "2024-06", models.PaymentReceived, 5000)
	store.addPayment(a2, "2024-06", models.PaymentSettled, 5000)

	// Group B: 1 slot paying out the same month, nothing collected.
	store.addSlot("group-b", "dave", "Group B", "Dave", "2024-06", 1000, 1)

	got, err := resolver.SlotsForMonth(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(got))
	}

	first := got[0]
	if first.SlotID != a1.SlotID {
		t.Fatalf("expected Group A's slot first, got %s", first.GroupName)
	}
	if first.CollectedCount != 2 || first.SlotCount != 3 {
		t.Fatalf("expected 2/3 collected, got %d/%d", first.CollectedCount, first.SlotCount)
	}
	if first.Completion != models.CompletionProcessing {
		t.Fatalf("2/3 should be processing, got %s", first.Completion)
	}
	if first.Percent != 66 {
		t.Fatalf("expected 66%%, got %d", first.Percent)
	}

	second := got[1]
	if second.Completion != models.CompletionFailed || second.Percent != 0 {
		t.Fatalf("uncollected group should be failed at 0%%, got %s at %d%%", second.Completion, second.Percent)
	}
}

func TestSlotsForMonthCapsCollected(t *testing.T) {
	store := newFakeStore()
	resolver := NewResolver(store)

	s := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 1)
	// Several payment rows against the same slot count as one credit.
	store.addPayment(s, "2024-06", models.PaymentReceived, 2500)
	store.addPayment(s, "2024-06", models.PaymentReceived, 2500)
	store.addPayment(s, "2024-06", models.PaymentSettled, 100)

	got, err := resolver.SlotsForMonth(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CollectedCount != 1 || got[0].SlotCount != 1 {
		t.Fatalf("expected 1/1, got %d/%d", got[0].CollectedCount, got[0].SlotCount)
	}
	if got[0].Completion != models.CompletionCompleted {
		t.Fatalf("expected completed, got %s", got[0].Completion)
	}
}

func TestSlotsForMonthEmpty(t *testing.T) {
	store := newFakeStore()
	resolver := NewResolver(store)

	got, err := resolver.SlotsForMonth(context.Background(), "2030-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty sequence, got %d slots", len(got))
	}
}

func TestSlotsForMonthStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 3)
	store.failing = true
	resolver := NewResolver(store)

	_, err := resolver.SlotsForMonth(context.Background(), "2024-06")
	if err == nil {
		t.Fatal("expected store error")
	}
	if !IsStoreUnavailable(err) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if !errors.Is(err, errStoreDown) {
		t.Fatal("underlying cause should be preserved")
	}
}
