package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payout payment methods.
const (
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
)

// PayoutRecord is the reconciled settlement for one slot. It does not exist
// until staff first save the slot's detail view, and is never deleted — later
// saves supersede it. MonthlyAmount and Duration are snapshotted at creation
// so group edits do not retroactively change historical payouts.
type PayoutRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SlotID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"slot_id"`
	GroupID  uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	MemberID uuid.UUID `gorm:"type:uuid;index" json:"member_id"`

	MonthlyAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_amount"`
	Duration      int             `gorm:"not null" json:"duration"`

	LastSlotWaived          bool            `gorm:"default:false" json:"last_slot_waived"`
	AdminFeeWaived          bool            `gorm:"default:false" json:"admin_fee_waived"`
	SettledDeductionEnabled bool            `gorm:"default:true" json:"settled_deduction_enabled"`
	AdditionalCost          decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"additional_cost"`

	CalculatedTotalAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"calculated_total_amount"`

	Paid        bool       `gorm:"default:false" json:"paid"`
	PayoutDate  *time.Time `json:"payout_date,omitempty"`
	PayoutMonth string     `gorm:"not null;size:7;index" json:"payout_month"`

	PaymentMethod  string     `gorm:"size:20;default:bank_transfer" json:"payment_method"`
	SenderBankID   *uuid.UUID `gorm:"type:uuid" json:"sender_bank_id,omitempty"`
	ReceiverBankID *uuid.UUID `gorm:"type:uuid" json:"receiver_bank_id,omitempty"`
	Notes          string     `gorm:"size:100" json:"notes,omitempty"`

	// Version increments on every save. Concurrent saves are last-writer-wins;
	// the version makes an overwrite visible to clients instead of hiding it.
	Version int `gorm:"default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// No gorm BeforeCreate hook here: the reconciler assigns IDs itself so the
// same code path works against any PayoutStore implementation.

// Request structs
type SavePayoutRequest struct {
	LastSlotWaived          bool            `json:"last_slot_waived"`
	AdminFeeWaived          bool            `json:"admin_fee_waived"`
	SettledDeductionEnabled bool            `json:"settled_deduction_enabled"`
	AdditionalCost          decimal.Decimal `json:"additional_cost"`
	PaymentMethod           string          `json:"payment_method" binding:"omitempty,oneof=bank_transfer cash"`
	SenderBankID            string          `json:"sender_bank_id"`
	ReceiverBankID          string          `json:"receiver_bank_id"`
	Notes                   string          `json:"notes"`
}

type UpdateTogglesRequest struct {
	LastSlotWaived          bool            `json:"last_slot_waived"`
	AdminFeeWaived          bool            `json:"admin_fee_waived"`
	SettledDeductionEnabled bool            `json:"settled_deduction_enabled"`
	AdditionalCost          decimal.Decimal `json:"additional_cost"`
}

type SetPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}
