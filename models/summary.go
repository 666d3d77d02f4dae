package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection-completion buckets for a group's target month.
const (
	CompletionFailed     = "failed"     // nothing collected (or group has no slots)
	CompletionPending    = "pending"    // under half collected
	CompletionProcessing = "processing" // at least half collected
	CompletionCompleted  = "completed"  // fully collected
)

// SlotDescriptor is one row of the monthly payout list: a slot whose payout
// falls in the target month, with everything downstream views need attached.
type SlotDescriptor struct {
	SlotID      uuid.UUID `json:"slot_id"`
	GroupID     uuid.UUID `json:"group_id"`
	MemberID    uuid.UUID `json:"member_id"`
	MemberName  string    `json:"member_name"`
	GroupName   string    `json:"group_name"`
	PayoutMonth string    `json:"payout_month"`

	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Duration      int             `json:"duration"`

	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`

	CollectedCount int    `json:"collected_count"` // slots paid up for this month, capped at SlotCount
	SlotCount      int    `json:"slot_count"`
	Percent        int    `json:"percent"` // 0-100
	Completion     string `json:"completion"`
}

// SlotReport is a SlotDescriptor with its settled payout amount attached.
type SlotReport struct {
	SlotDescriptor
	TotalAmount decimal.Decimal `json:"total_amount"`
	Paid        bool            `json:"paid"`
	Saved       bool            `json:"saved"` // a PayoutRecord exists for the slot
}

// MonthSummary is the month-level rollup returned by GET /api/summary/:month.
type MonthSummary struct {
	Month        string          `json:"month"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	SlotCount    int             `json:"slot_count"`
	Completed    int             `json:"completed"`
	Processing   int             `json:"processing"`
	Pending      int             `json:"pending"`
	Failed       int             `json:"failed"`
	Slots        []SlotReport    `json:"slots"`
}
