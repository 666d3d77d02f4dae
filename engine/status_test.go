package engine

import (
	"context"
	"testing"
	"time"

	"kasmoni-backend/models"
)

func TestMostAuthoritative(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	pay := func(status string, d int) models.Payment {
		return models.Payment{Status: status, PaymentDate: day(d)}
	}

	cases := []struct {
		name     string
		payments []models.Payment
		want     string
		wantDay  int
	}{
		{"settled beats received", []models.Payment{pay(models.PaymentReceived, 20), pay(models.PaymentSettled, 5)}, models.PaymentSettled, 5},
		{"received beats pending", []models.Payment{pay(models.PaymentPending, 20), pay(models.PaymentReceived, 5)}, models.PaymentReceived, 5},
		{"tie broken by latest date", []models.Payment{pay(models.PaymentReceived, 5), pay(models.PaymentReceived, 20)}, models.PaymentReceived, 20},
		{"not_paid rows are ignored", []models.Payment{pay(models.PaymentNotPaid, 20)}, "", 0},
		{"empty", nil, "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mostAuthoritative(tc.payments)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil || got.Status != tc.want || got.PaymentDate.Day() != tc.wantDay {
				t.Fatalf("got %v, want %s on day %d", got, tc.want, tc.wantDay)
			}
		})
	}
}

func TestGroupPaymentStatus(t *testing.T) {
	store := newFakeStore()
	reporter, _ := newTestReporter(store)

	alice := store.addSlot("group-a", "alice", "Group A", "Alice", "2024-06", 5000, 2)
	bob := store.addSlot("group-a", "bob", "Group A", "Bob", "2024-07", 5000, 2)

	store.addPayment(alice, "2024-06", models.PaymentPending, 5000)
	store.addPayment(alice, "2024-06", models.PaymentSettled, 5000)
	_ = bob // no payments for bob

	statuses, err := reporter.GroupPaymentStatus(context.Background(), alice.GroupID, "2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected a row per member, got %d", len(statuses))
	}

	byName := make(map[string]models.MemberPaymentStatus)
	for _, s := range statuses {
		byName[s.MemberName] = s
	}
	if byName["Alice"].Status != models.PaymentSettled {
		t.Fatalf("alice should be settled, got %s", byName["Alice"].Status)
	}
	if byName["Bob"].Status != models.PaymentNotPaid {
		t.Fatalf("bob should be not_paid, got %s", byName["Bob"].Status)
	}
	if byName["Bob"].LastPaymentDate != nil {
		t.Fatal("bob has no payment date")
	}
}
