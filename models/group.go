package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Group is one rotating savings circle: every member pays MonthlyAmount each
// month for Duration months, and each member receives the pool once.
type Group struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"not null;size:100" json:"name"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_amount"`
	Duration      int             `gorm:"not null" json:"duration"` // months; equals MonthSpan(StartMonth, EndMonth)
	StartMonth    string          `gorm:"not null;size:7" json:"start_month"` // YYYY-MM
	EndMonth      string          `gorm:"not null;size:7" json:"end_month"`   // YYYY-MM
	Slots         []Slot          `gorm:"foreignKey:GroupID" json:"slots,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateGroupRequest struct {
	Name          string          `json:"name" binding:"required"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" binding:"required"`
	StartMonth    string          `json:"start_month" binding:"required"`
	// Either end_month or duration; a duration of n months ends the group
	// n-1 months after the start.
	EndMonth string `json:"end_month"`
	Duration int    `json:"duration" binding:"omitempty,min=1"`
}

type UpdateGroupRequest struct {
	Name          string           `json:"name"`
	MonthlyAmount *decimal.Decimal `json:"monthly_amount"`
	StartMonth    string           `json:"start_month"`
	EndMonth      string           `json:"end_month"`
}
