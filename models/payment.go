package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment statuses. Only received and settled count as collected.
// A settled payment is netted against the member's payout instead of
// being paid forward in cash.
const (
	PaymentNotPaid  = "not_paid"
	PaymentPending  = "pending"
	PaymentReceived = "received"
	PaymentSettled  = "settled"
)

type Payment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID     uuid.UUID       `gorm:"type:uuid;index" json:"member_id"`
	Member       Member          `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	GroupID      uuid.UUID       `gorm:"type:uuid;index" json:"group_id"`
	Group        Group           `gorm:"foreignKey:GroupID" json:"-"`
	SlotID       *uuid.UUID      `gorm:"type:uuid;index" json:"slot_id,omitempty"`
	PaymentMonth string          `gorm:"not null;size:7;index" json:"payment_month"` // YYYY-MM
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status       string          `gorm:"not null;size:20;default:not_paid" json:"status"`
	PaymentDate  time.Time       `gorm:"type:date" json:"payment_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Counted toward a group's collected total.
func (p *Payment) Collected() bool {
	return p.Status == PaymentReceived || p.Status == PaymentSettled
}

// Request structs
type CreatePaymentRequest struct {
	MemberID     string          `json:"member_id" binding:"required"`
	GroupID      string          `json:"group_id" binding:"required"`
	SlotID       string          `json:"slot_id"`
	PaymentMonth string          `json:"payment_month" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Status       string          `json:"status" binding:"omitempty,oneof=not_paid pending received settled"`
	PaymentDate  string          `json:"payment_date"` // YYYY-MM-DD
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=not_paid pending received settled"`
}

// MemberPaymentStatus is one row of the per-group payment status view:
// the most authoritative payment status recorded for a member in a month.
type MemberPaymentStatus struct {
	MemberID        uuid.UUID  `json:"member_id"`
	MemberName      string     `json:"member_name"`
	Status          string     `json:"status"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}
