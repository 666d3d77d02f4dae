package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	GroupName   string    `gorm:"-" json:"group_name,omitempty"`
	StaffID     uuid.UUID `gorm:"type:uuid" json:"staff_id"`
	Staff       Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Type        string    `gorm:"not null;size:30" json:"type"` // payment_recorded, payment_status_changed, payout_saved, payout_paid, payout_unpaid, member_added, group_created, slot_assigned, slot_removed
	ReferenceID uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
