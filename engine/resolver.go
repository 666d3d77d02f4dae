package engine

import (
	"context"

	"kasmoni-backend/models"

	"github.com/google/uuid"
)

// Resolver derives the payout list for a target calendar month.
type Resolver struct {
	slots SlotStore
}

func NewResolver(slots SlotStore) *Resolver {
	return &Resolver{slots: slots}
}

// SlotsForMonth returns a descriptor for every slot whose payout falls in the
// target month, each carrying its group's collected/total counts for that
// month and the resulting completion bucket.
func (r *Resolver) SlotsForMonth(ctx context.Context, month string) ([]models.SlotDescriptor, error) {
	rows, err := r.slots.SlotsForMonth(ctx, month)
	if err != nil {
		return nil, storeErr("slots for month", err)
	}

	type groupCounts struct {
		collected int
		total     int
	}
	counts := make(map[uuid.UUID]groupCounts)

	descriptors := make([]models.SlotDescriptor, 0, len(rows))
	for _, row := range rows {
		gc, ok := counts[row.GroupID]
		if !ok {
			total, err := r.slots.SlotCount(ctx, row.GroupID)
			if err != nil {
				return nil, storeErr("slot count", err)
			}
			collected, err := r.slots.CollectedSlotCount(ctx, row.GroupID, month)
			if err != nil {
				return nil, storeErr("collected slot count", err)
			}
			// A slot contributes at most one paid credit no matter how many
			// payment rows reference it.
			if collected > total {
				collected = total
			}
			gc = groupCounts{collected: collected, total: total}
			counts[row.GroupID] = gc
		}

		descriptors = append(descriptors, models.SlotDescriptor{
			SlotID:         row.SlotID,
			GroupID:        row.GroupID,
			MemberID:       row.MemberID,
			MemberName:     row.MemberName,
			GroupName:      row.GroupName,
			PayoutMonth:    row.PayoutMonth,
			MonthlyAmount:  row.MonthlyAmount,
			Duration:       row.Duration,
			BankName:       row.BankName,
			AccountNumber:  row.AccountNumber,
			CollectedCount: gc.collected,
			SlotCount:      gc.total,
			Percent:        completionPercent(gc.collected, gc.total),
			Completion:     completionBucket(gc.collected, gc.total),
		})
	}

	return descriptors, nil
}

func completionPercent(collected, total int) int {
	if total == 0 {
		return 0
	}
	return collected * 100 / total
}

// completionBucket maps a group's collection fraction onto the processing
// tri-state shown in list views. total = 0 is "failed", never a division
// error.
func completionBucket(collected, total int) string {
	switch {
	case total == 0 || collected == 0:
		return models.CompletionFailed
	case collected >= total:
		return models.CompletionCompleted
	case collected*2 >= total: // 50% or more
		return models.CompletionProcessing
	default:
		return models.CompletionPending
	}
}
