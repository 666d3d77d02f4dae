package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot assigns a member to the payout month in which they receive the pool.
// One slot per (group, member); a group is fully staffed when its slot count
// equals its duration, but nothing here depends on full staffing.
type Slot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_group_member" json:"group_id"`
	Group       Group     `gorm:"foreignKey:GroupID" json:"-"`
	MemberID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_group_member" json:"member_id"`
	Member      Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	PayoutMonth string    `gorm:"not null;size:7;index" json:"payout_month"` // YYYY-MM
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Slot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type AssignSlotRequest struct {
	MemberID    string `json:"member_id" binding:"required"`
	PayoutMonth string `json:"payout_month" binding:"required"`
}
