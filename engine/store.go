package engine

import (
	"context"

	"kasmoni-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlotJoin is one slot row with its member and group columns flattened, as
// the stores return them for the resolver.
type SlotJoin struct {
	SlotID      uuid.UUID
	GroupID     uuid.UUID
	MemberID    uuid.UUID
	PayoutMonth string

	MemberName    string
	BankName      string
	AccountNumber string

	GroupName     string
	MonthlyAmount decimal.Decimal
	Duration      int
}

// SlotStore answers slot queries against the group catalog.
type SlotStore interface {
	// SlotsForMonth returns slots whose payout month equals month, ordered by
	// group name then member name.
	SlotsForMonth(ctx context.Context, month string) ([]SlotJoin, error)

	// SlotsForGroup returns all slots of a group, ordered by payout month.
	SlotsForGroup(ctx context.Context, groupID uuid.UUID) ([]SlotJoin, error)

	// SlotCount returns how many slots a group has.
	SlotCount(ctx context.Context, groupID uuid.UUID) (int, error)

	// CollectedSlotCount counts distinct slots of the group with at least one
	// received or settled payment recorded for the given month.
	CollectedSlotCount(ctx context.Context, groupID uuid.UUID, month string) (int, error)
}

// PaymentStore answers payment queries against the ledger.
type PaymentStore interface {
	// SettledSum sums a member's settled payments for the given month.
	SettledSum(ctx context.Context, memberID uuid.UUID, month string) (decimal.Decimal, error)

	// PaymentsForGroupMonth returns every payment recorded against the group
	// for the given month.
	PaymentsForGroupMonth(ctx context.Context, groupID uuid.UUID, month string) ([]models.Payment, error)
}

// PayoutStore persists payout records keyed by slot id.
type PayoutStore interface {
	// Load returns the record for a slot, or (nil, nil) when none exists.
	// Absence is a valid state, not an error.
	Load(ctx context.Context, slotID uuid.UUID) (*models.PayoutRecord, error)

	// Upsert inserts or replaces the record for rec.SlotID. The slot id is a
	// unique key; a second record for the same slot must never be created.
	Upsert(ctx context.Context, rec *models.PayoutRecord) error
}
