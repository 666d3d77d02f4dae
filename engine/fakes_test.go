package engine

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kasmoni-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory stand-in for the gorm-backed stores.
type fakeStore struct {
	mu       sync.Mutex
	slots    []SlotJoin
	payments []models.Payment
	payouts  map[uuid.UUID]models.PayoutRecord // keyed by slot id

	failing bool // every call errors when set
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{payouts: make(map[uuid.UUID]models.PayoutRecord)}
}

func (f *fakeStore) SlotsForMonth(ctx context.Context, month string) ([]SlotJoin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	var out []SlotJoin
	for _, s := range f.slots {
		if s.PayoutMonth == month {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupName != out[j].GroupName {
			return out[i].GroupName < out[j].GroupName
		}
		return out[i].MemberName < out[j].MemberName
	})
	return out, nil
}

func (f *fakeStore) SlotsForGroup(ctx context.Context, groupID uuid.UUID) ([]SlotJoin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	var out []SlotJoin
	for _, s := range f.slots {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PayoutMonth < out[j].PayoutMonth })
	return out, nil
}

func (f *fakeStore) SlotCount(ctx context.Context, groupID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errStoreDown
	}
	n := 0
	for _, s := range f.slots {
		if s.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CollectedSlotCount(ctx context.Context, groupID uuid.UUID, month string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errStoreDown
	}
	seen := make(map[uuid.UUID]bool)
	for _, p := range f.payments {
		if p.GroupID == groupID && p.PaymentMonth == month && p.Collected() && p.SlotID != nil {
			seen[*p.SlotID] = true
		}
	}
	return len(seen), nil
}

func (f *fakeStore) SettledSum(ctx context.Context, memberID uuid.UUID, month string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return decimal.Zero, errStoreDown
	}
	sum := decimal.Zero
	for _, p := range f.payments {
		if p.MemberID == memberID && p.PaymentMonth == month && p.Status == models.PaymentSettled {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (f *fakeStore) PaymentsForGroupMonth(ctx context.Context, groupID uuid.UUID, month string) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	var out []models.Payment
	for _, p := range f.payments {
		if p.GroupID == groupID && p.PaymentMonth == month {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Load(ctx context.Context, slotID uuid.UUID) (*models.PayoutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	rec, ok := f.payouts[slotID]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (f *fakeStore) Upsert(ctx context.Context, rec *models.PayoutRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errStoreDown
	}
	f.payouts[rec.SlotID] = *rec
	f.upserts++
	return nil
}

func (f *fakeStore) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payouts)
}

// addSlot registers a slot row and returns its id.
func (f *fakeStore) addSlot(group, member, groupName, memberName, month string, monthly int64, duration int) SlotJoin {
	s := SlotJoin{
		SlotID:        uuid.New(),
		GroupID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(group)),
		MemberID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(member)),
		GroupName:     groupName,
		MemberName:    memberName,
		PayoutMonth:   month,
		MonthlyAmount: decimal.NewFromInt(monthly),
		Duration:      duration,
	}
	f.mu.Lock()
	f.slots = append(f.slots, s)
	f.mu.Unlock()
	return s
}

func (f *fakeStore) addPayment(s SlotJoin, month, status string, amount int64) {
	slotID := s.SlotID
	f.mu.Lock()
	f.payments = append(f.payments, models.Payment{
		ID:           uuid.New(),
		MemberID:     s.MemberID,
		GroupID:      s.GroupID,
		SlotID:       &slotID,
		PaymentMonth: month,
		Amount:       decimal.NewFromInt(amount),
		Status:       status,
	})
	f.mu.Unlock()
}
