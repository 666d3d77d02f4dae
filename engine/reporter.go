package engine

import (
	"context"

	"kasmoni-backend/models"

	"github.com/shopspring/decimal"
)

// Reporter folds per-slot payout amounts into month-level totals.
type Reporter struct {
	resolver *Resolver
	payouts  PayoutStore
	payments PaymentStore
}

func NewReporter(resolver *Resolver, payouts PayoutStore, payments PaymentStore) *Reporter {
	return &Reporter{resolver: resolver, payouts: payouts, payments: payments}
}

// MonthSummary resolves the month's slots and rolls their payout amounts up
// into totals and completion-bucket counts. A slot with a persisted record
// contributes its cached calculatedTotalAmount; a slot never opened in
// detail view is computed live with default toggles. For identical toggle
// inputs the two paths are the same arithmetic and agree exactly.
func (rp *Reporter) MonthSummary(ctx context.Context, month string) (*models.MonthSummary, error) {
	descriptors, err := rp.resolver.SlotsForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	summary := &models.MonthSummary{
		Month:        month,
		TotalPayable: decimal.Zero,
		TotalPaid:    decimal.Zero,
		Outstanding:  decimal.Zero,
		SlotCount:    len(descriptors),
		Slots:        make([]models.SlotReport, 0, len(descriptors)),
	}

	for _, d := range descriptors {
		rec, err := rp.payouts.Load(ctx, d.SlotID)
		if err != nil {
			return nil, storeErr("load payout record", err)
		}

		var total decimal.Decimal
		var paid, saved bool
		if rec != nil {
			total = rec.CalculatedTotalAmount
			paid = rec.Paid
			saved = true
		} else {
			settled, err := rp.payments.SettledSum(ctx, d.MemberID, month)
			if err != nil {
				return nil, storeErr("settled sum", err)
			}
			total = ComputeTotal(
				BaseParams{MonthlyAmount: d.MonthlyAmount, Duration: d.Duration, SettledSum: settled},
				DefaultToggles(),
			)
		}

		summary.TotalPayable = summary.TotalPayable.Add(total)
		if paid {
			summary.TotalPaid = summary.TotalPaid.Add(total)
		}

		switch d.Completion {
		case models.CompletionCompleted:
			summary.Completed++
		case models.CompletionProcessing:
			summary.Processing++
		case models.CompletionPending:
			summary.Pending++
		default:
			summary.Failed++
		}

		summary.Slots = append(summary.Slots, models.SlotReport{
			SlotDescriptor: d,
			TotalAmount:    total,
			Paid:           paid,
			Saved:          saved,
		})
	}

	summary.Outstanding = summary.TotalPayable.Sub(summary.TotalPaid)
	return summary, nil
}
