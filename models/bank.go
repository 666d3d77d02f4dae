package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bank is a lookup table for the banks payouts are transferred through.
type Bank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	ShortCode string    `gorm:"size:10" json:"short_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type CreateBankRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"short_code"`
}
