package engine

import (
	"context"
	"time"

	"kasmoni-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconciler owns the payout record lifecycle for a slot:
//
//	NoRecord → Saved (paid=false) ⇄ Paid (paid=true)
//
// NoRecord → Saved only through Save; Saved ⇄ Paid only through SetPaid,
// which requires a prior Save. No operation deletes a record — later saves
// supersede it. Two sessions saving the same slot are last-writer-wins; the
// record's version field makes the overwrite visible.
type Reconciler struct {
	payouts  PayoutStore
	payments PaymentStore
}

func NewReconciler(payouts PayoutStore, payments PaymentStore) *Reconciler {
	return &Reconciler{payouts: payouts, payments: payments}
}

// Load returns the persisted record for a slot, or (nil, nil) when none
// exists. Callers treat absence as "use defaults".
func (r *Reconciler) Load(ctx context.Context, slotID uuid.UUID) (*models.PayoutRecord, error) {
	rec, err := r.payouts.Load(ctx, slotID)
	if err != nil {
		return nil, storeErr("load payout record", err)
	}
	return rec, nil
}

// Save validates and persists a payout record, inserting on first save and
// updating thereafter, always keyed on slot id. The calculated total is
// recomputed from the draft's toggles before the write. The paid flag and
// the monthly amount / duration snapshot of an existing record survive a
// save untouched.
//
// Save works on a copy of the draft: if the persist fails, neither the
// caller's draft nor any cached total has changed.
func (r *Reconciler) Save(ctx context.Context, draft *models.PayoutRecord) (*models.PayoutRecord, error) {
	if err := validateRecord(draft); err != nil {
		return nil, err
	}

	existing, err := r.payouts.Load(ctx, draft.SlotID)
	if err != nil {
		return nil, storeErr("load payout record", err)
	}

	out := *draft
	if existing == nil {
		out.ID = uuid.New()
		out.Version = 1
		out.Paid = false
		out.PayoutDate = nil
	} else {
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
		out.Version = existing.Version + 1
		// Snapshot taken at creation; group edits never reach old payouts.
		out.MonthlyAmount = existing.MonthlyAmount
		out.Duration = existing.Duration
		// Paid status only changes through SetPaid.
		out.Paid = existing.Paid
		out.PayoutDate = existing.PayoutDate
	}

	settled, err := r.settledSum(ctx, out.MemberID, out.PayoutMonth, out.SettledDeductionEnabled)
	if err != nil {
		return nil, err
	}

	out.CalculatedTotalAmount = ComputeTotal(
		BaseParams{MonthlyAmount: out.MonthlyAmount, Duration: out.Duration, SettledSum: settled},
		togglesOf(&out),
	)

	if err := r.payouts.Upsert(ctx, &out); err != nil {
		return nil, storeErr("save payout record", err)
	}
	return &out, nil
}

// SetPaid flips the paid flag of an already-saved record. Attempting it on a
// never-saved slot is a caller error, not a silent no-op.
func (r *Reconciler) SetPaid(ctx context.Context, slotID uuid.UUID, paid bool) (*models.PayoutRecord, error) {
	existing, err := r.payouts.Load(ctx, slotID)
	if err != nil {
		return nil, storeErr("load payout record", err)
	}
	if existing == nil || existing.ID == uuid.Nil {
		return nil, ErrPrerequisiteNotMet
	}

	out := *existing
	out.Paid = paid
	if paid {
		now := time.Now()
		out.PayoutDate = &now
	} else {
		out.PayoutDate = nil
	}
	out.Version = existing.Version + 1

	if err := r.payouts.Upsert(ctx, &out); err != nil {
		return nil, storeErr("set paid", err)
	}
	return &out, nil
}

// RecomputeAndPersist refreshes the calculated-total cache of a saved record
// after a toggle change, so list and summary views can read it without
// recomputing. It is a cache-maintenance write, not user-visible state; a
// never-saved slot has no cache to maintain and yields ErrPrerequisiteNotMet.
func (r *Reconciler) RecomputeAndPersist(ctx context.Context, slotID uuid.UUID, t Toggles) (*models.PayoutRecord, error) {
	if t.AdditionalCost.IsNegative() {
		return nil, &ValidationError{Field: "additional_cost", Reason: "must not be negative"}
	}

	existing, err := r.payouts.Load(ctx, slotID)
	if err != nil {
		return nil, storeErr("load payout record", err)
	}
	if existing == nil {
		return nil, ErrPrerequisiteNotMet
	}

	out := *existing
	out.LastSlotWaived = t.LastSlotWaived
	out.AdminFeeWaived = t.AdminFeeWaived
	out.SettledDeductionEnabled = t.SettledDeductionEnabled
	out.AdditionalCost = t.AdditionalCost
	out.Version = existing.Version + 1

	settled, err := r.settledSum(ctx, out.MemberID, out.PayoutMonth, out.SettledDeductionEnabled)
	if err != nil {
		return nil, err
	}

	out.CalculatedTotalAmount = ComputeTotal(
		BaseParams{MonthlyAmount: out.MonthlyAmount, Duration: out.Duration, SettledSum: settled},
		t,
	)

	if err := r.payouts.Upsert(ctx, &out); err != nil {
		return nil, storeErr("persist recomputed total", err)
	}
	return &out, nil
}

// settledSum skips the ledger query entirely when the deduction is disabled.
func (r *Reconciler) settledSum(ctx context.Context, memberID uuid.UUID, month string, enabled bool) (decimal.Decimal, error) {
	if !enabled {
		return decimal.Zero, nil
	}
	sum, err := r.payments.SettledSum(ctx, memberID, month)
	if err != nil {
		return decimal.Zero, storeErr("settled sum", err)
	}
	return sum, nil
}

func togglesOf(rec *models.PayoutRecord) Toggles {
	return Toggles{
		LastSlotWaived:          rec.LastSlotWaived,
		AdminFeeWaived:          rec.AdminFeeWaived,
		SettledDeductionEnabled: rec.SettledDeductionEnabled,
		AdditionalCost:          rec.AdditionalCost,
	}
}

func validateRecord(rec *models.PayoutRecord) error {
	if rec.SlotID == uuid.Nil {
		return &ValidationError{Field: "slot_id", Reason: "required"}
	}
	if rec.AdditionalCost.IsNegative() {
		return &ValidationError{Field: "additional_cost", Reason: "must not be negative"}
	}
	if len(rec.Notes) > 100 {
		return &ValidationError{Field: "notes", Reason: "at most 100 characters"}
	}
	switch rec.PaymentMethod {
	case models.MethodCash:
	case models.MethodBankTransfer:
		if rec.SenderBankID == nil || rec.ReceiverBankID == nil {
			return &ValidationError{Field: "payment_method", Reason: "bank transfer requires sender and receiver bank"}
		}
	default:
		return &ValidationError{Field: "payment_method", Reason: "must be bank_transfer or cash"}
	}
	return nil
}
