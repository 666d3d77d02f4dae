package database

import (
	"context"
	"errors"

	"kasmoni-backend/engine"
	"kasmoni-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm-backed implementations of the engine's store interfaces.

type slotRow struct {
	SlotID        uuid.UUID
	GroupID       uuid.UUID
	MemberID      uuid.UUID
	PayoutMonth   string
	FirstName     string
	LastName      string
	AccountNumber string
	BankName      string
	GroupName     string
	MonthlyAmount decimal.Decimal
	Duration      int
}

func (r slotRow) toJoin() engine.SlotJoin {
	return engine.SlotJoin{
		SlotID:        r.SlotID,
		GroupID:       r.GroupID,
		MemberID:      r.MemberID,
		PayoutMonth:   r.PayoutMonth,
		MemberName:    r.FirstName + " " + r.LastName,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		GroupName:     r.GroupName,
		MonthlyAmount: r.MonthlyAmount,
		Duration:      r.Duration,
	}
}

const slotJoinSelect = `slots.id as slot_id, slots.group_id, slots.member_id, slots.payout_month,
	members.first_name, members.last_name, members.account_number,
	banks.name as bank_name,
	groups.name as group_name, groups.monthly_amount, groups.duration`

func slotJoinQuery(ctx context.Context) *gorm.DB {
	return DB.WithContext(ctx).Table("slots").
		Select(slotJoinSelect).
		Joins("JOIN members ON members.id = slots.member_id").
		Joins("JOIN groups ON groups.id = slots.group_id").
		Joins("LEFT JOIN banks ON banks.id = members.bank_id")
}

type SlotStore struct{}

func NewSlotStore() *SlotStore { return &SlotStore{} }

func (s *SlotStore) SlotsForMonth(ctx context.Context, month string) ([]engine.SlotJoin, error) {
	var rows []slotRow
	err := slotJoinQuery(ctx).
		Where("slots.payout_month = ?", month).
		Order("groups.name, members.first_name, members.last_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	joins := make([]engine.SlotJoin, 0, len(rows))
	for _, r := range rows {
		joins = append(joins, r.toJoin())
	}
	return joins, nil
}

func (s *SlotStore) SlotsForGroup(ctx context.Context, groupID uuid.UUID) ([]engine.SlotJoin, error) {
	var rows []slotRow
	err := slotJoinQuery(ctx).
		Where("slots.group_id = ?", groupID).
		Order("slots.payout_month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	joins := make([]engine.SlotJoin, 0, len(rows))
	for _, r := range rows {
		joins = append(joins, r.toJoin())
	}
	return joins, nil
}

func (s *SlotStore) SlotCount(ctx context.Context, groupID uuid.UUID) (int, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&models.Slot{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return int(count), err
}

func (s *SlotStore) CollectedSlotCount(ctx context.Context, groupID uuid.UUID, month string) (int, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&models.Payment{}).
		Where("group_id = ? AND payment_month = ? AND status IN ? AND slot_id IS NOT NULL",
			groupID, month, []string{models.PaymentReceived, models.PaymentSettled}).
		Distinct("slot_id").
		Count(&count).Error
	return int(count), err
}

type PaymentStore struct{}

func NewPaymentStore() *PaymentStore { return &PaymentStore{} }

func (p *PaymentStore) SettledSum(ctx context.Context, memberID uuid.UUID, month string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := DB.WithContext(ctx).Model(&models.Payment{}).
		Where("member_id = ? AND payment_month = ? AND status = ?", memberID, month, models.PaymentSettled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (p *PaymentStore) PaymentsForGroupMonth(ctx context.Context, groupID uuid.UUID, month string) ([]models.Payment, error) {
	var payments []models.Payment
	err := DB.WithContext(ctx).
		Where("group_id = ? AND payment_month = ?", groupID, month).
		Find(&payments).Error
	return payments, err
}

type PayoutStore struct{}

func NewPayoutStore() *PayoutStore { return &PayoutStore{} }

func (p *PayoutStore) Load(ctx context.Context, slotID uuid.UUID) (*models.PayoutRecord, error) {
	var rec models.PayoutRecord
	err := DB.WithContext(ctx).Where("slot_id = ?", slotID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert relies on the unique index on slot_id so a concurrent first save
// cannot create two records for one slot.
func (p *PayoutStore) Upsert(ctx context.Context, rec *models.PayoutRecord) error {
	return DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_id"}},
		UpdateAll: true,
	}).Create(rec).Error
}
