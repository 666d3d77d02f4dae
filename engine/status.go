package engine

import (
	"context"

	"kasmoni-backend/models"

	"github.com/google/uuid"
)

// statusRank orders payment statuses by authority.
var statusRank = map[string]int{
	models.PaymentSettled:  3,
	models.PaymentReceived: 2,
	models.PaymentPending:  1,
	models.PaymentNotPaid:  0,
}

// GroupPaymentStatus returns, per member of the group, the most authoritative
// payment status recorded for the month: settled beats received beats
// pending, ties broken by latest payment date. A member with no payment rows
// is not_paid.
func (rp *Reporter) GroupPaymentStatus(ctx context.Context, groupID uuid.UUID, month string) ([]models.MemberPaymentStatus, error) {
	slots, err := rp.resolver.slots.SlotsForGroup(ctx, groupID)
	if err != nil {
		return nil, storeErr("slots for group", err)
	}
	payments, err := rp.payments.PaymentsForGroupMonth(ctx, groupID, month)
	if err != nil {
		return nil, storeErr("payments for group month", err)
	}

	byMember := make(map[uuid.UUID][]models.Payment)
	for _, p := range payments {
		byMember[p.MemberID] = append(byMember[p.MemberID], p)
	}

	statuses := make([]models.MemberPaymentStatus, 0, len(slots))
	for _, s := range slots {
		row := models.MemberPaymentStatus{
			MemberID:   s.MemberID,
			MemberName: s.MemberName,
			Status:     models.PaymentNotPaid,
		}
		if best := mostAuthoritative(byMember[s.MemberID]); best != nil {
			row.Status = best.Status
			d := best.PaymentDate
			row.LastPaymentDate = &d
		}
		statuses = append(statuses, row)
	}
	return statuses, nil
}

func mostAuthoritative(payments []models.Payment) *models.Payment {
	var best *models.Payment
	for i := range payments {
		p := &payments[i]
		if p.Status == models.PaymentNotPaid {
			continue
		}
		if best == nil {
			best = p
			continue
		}
		if statusRank[p.Status] > statusRank[best.Status] {
			best = p
		} else if statusRank[p.Status] == statusRank[best.Status] && p.PaymentDate.After(best.PaymentDate) {
			best = p
		}
	}
	return best
}
