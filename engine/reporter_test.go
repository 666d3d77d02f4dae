package engine

import (
	"context"
	"testing"

	"kasmoni-backend/models"
)

func newTestReporter(store *fakeStore) (*Reporter, *Reconciler) {
	resolver := NewResolver(store)
	return NewReporter(resolver, store, store), NewReconciler(store, store)
}

func TestMonthSummaryEmptyMonth(t *testing.T) {
	store := newFakeStore()
	reporter, _ := newTestReporter(store)

	got, err := reporter.MonthSummary(context.Background(), "2030-01")
	if err != nil {
		t.Fatal(err)
	}
	if got.SlotCount != 0 || len(got.Slots) != 0 {
		t.Fatalf("expected zero slots, got %d", got.SlotCount)
	}
	if !got.TotalPayable.IsZero() || !got.TotalPaid.IsZero() || !got.Outstanding.IsZero() {
		t.Fatal("expected all-zero totals")
	}
}

func TestMonthSummaryMixesCachedAndLiveTotals(t *testing.T) {
	store := newFakeStore()
	reporter, reconciler := newTestReporter(store)

	// Alice's slot gets saved (cached total); Bob's was never opened.
	alice := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 10)
	bob := store.addSlot("group-b", "bob", "Group B", "Bob", "2024-06", 1000, 12)
	store.addPayment(alice, "2024-06", models.PaymentSettled, 3000)

	if _, err := reconciler.Save(context.Background(), draftFor(alice)); err != nil {
		t.Fatal(err)
	}

	got, err := reporter.MonthSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if got.SlotCount != 2 {
		t.Fatalf("expected 2 slots, got %d", got.SlotCount)
	}

	// Alice cached: 50000-3000-5000-200 = 41800. Bob live with defaults:
	// 12000-0-1000-200 = 10800.
	var aliceTotal, bobTotal string
	for _, s := range got.Slots {
		switch s.SlotID {
		case alice.SlotID:
			aliceTotal = s.TotalAmount.String()
			if !s.Saved {
				t.Fatal("alice's row should come from the persisted cache")
			}
		case bob.SlotID:
			bobTotal = s.TotalAmount.String()
			if s.Saved {
				t.Fatal("bob's row should be computed live")
			}
		}
	}
	if aliceTotal != "41800" {
		t.Fatalf("alice total = %s, want 41800", aliceTotal)
	}
	if bobTotal != "10800" {
		t.Fatalf("bob total = %s, want 10800", bobTotal)
	}
	if got.TotalPayable.String() != "52600" {
		t.Fatalf("total payable = %s, want 52600", got.TotalPayable)
	}
	if !got.TotalPaid.IsZero() {
		t.Fatal("nothing is paid yet")
	}
	if !got.Outstanding.Equal(got.TotalPayable) {
		t.Fatal("outstanding should equal payable while nothing is paid")
	}
}

// The persisted cache and the live computation must be numerically identical
// for the same toggle inputs.
func TestCacheMatchesLiveComputation(t *testing.T) {
	store := newFakeStore()
	reporter, reconciler := newTestReporter(store)

	slot := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 10)
	store.addPayment(slot, "2024-06", models.PaymentSettled, 3000)

	// Save with default toggles, which is exactly what the live path assumes.
	if _, err := reconciler.Save(context.Background(), draftFor(slot)); err != nil {
		t.Fatal(err)
	}
	withCache, err := reporter.MonthSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}

	fresh := newFakeStore()
	fresh.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 10)
	freshSlot := fresh.slots[0]
	fresh.addPayment(freshSlot, "2024-06", models.PaymentSettled, 3000)
	freshReporter, _ := newTestReporter(fresh)

	withoutCache, err := freshReporter.MonthSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}

	if !withCache.TotalPayable.Equal(withoutCache.TotalPayable) {
		t.Fatalf("cached path %s != live path %s", withCache.TotalPayable, withoutCache.TotalPayable)
	}
}

func TestMonthSummaryPaidTotals(t *testing.T) {
	store := newFakeStore()
	reporter, reconciler := newTestReporter(store)

	alice := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 10)
	bob := store.addSlot("group-b", "bob", "Group B", "Bob", "2024-06", 1000, 12)

	if _, err := reconciler.Save(context.Background(), draftFor(alice)); err != nil {
		t.Fatal(err)
	}
	if _, err := reconciler.Save(context.Background(), draftFor(bob)); err != nil {
		t.Fatal(err)
	}
	if _, err := reconciler.SetPaid(context.Background(), alice.SlotID, true); err != nil {
		t.Fatal(err)
	}

	got, err := reporter.MonthSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	// Alice: 50000-5000-200 = 44800 (paid). Bob: 12000-1000-200 = 10800.
	if got.TotalPaid.String() != "44800" {
		t.Fatalf("total paid = %s, want 44800", got.TotalPaid)
	}
	if got.Outstanding.String() != "10800" {
		t.Fatalf("outstanding = %s, want 10800", got.Outstanding)
	}
}

func TestMonthSummaryBucketCounts(t *testing.T) {
	store := newFakeStore()
	reporter, _ := newTestReporter(store)

	// Fully collected single-slot group.
	a := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 1)
	store.addPayment(a, "2024-06", models.PaymentReceived, 5000)
	// Untouched group.
	store.addSlot("group-b", "bob", "Group B", "Bob", "2024-06", 1000, 12)

	got, err := reporter.MonthSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if got.Completed != 1 || got.Failed != 1 || got.Pending != 0 || got.Processing != 0 {
		t.Fatalf("bucket counts completed=%d processing=%d pending=%d failed=%d",
			got.Completed, got.Processing, got.Pending, got.Failed)
	}
}
