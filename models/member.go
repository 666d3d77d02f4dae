package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string    `gorm:"not null;size:100" json:"first_name"`
	LastName      string    `gorm:"not null;size:100" json:"last_name"`
	Email         string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone,omitempty"`
	BankID        *uuid.UUID `gorm:"type:uuid" json:"bank_id,omitempty"`
	Bank          *Bank     `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	AccountNumber string    `gorm:"size:34" json:"account_number,omitempty"`
	FCMToken      string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Request structs
type CreateMemberRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	BankID        string `json:"bank_id"`
	AccountNumber string `json:"account_number"`
}

type UpdateMemberRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	BankID        string `json:"bank_id"`
	AccountNumber string `json:"account_number"`
}
