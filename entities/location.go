package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"time"
)

type Location struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Address string    `json:"address"`

	Timestamp
}

type Staff struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	LocationID *uuid.UUID      `gorm:"type:uuid;index" json:"location_id,omitempty"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Email      string          `gorm:"size:255;uniqueIndex" json:"email"`
	Role       string          `gorm:"size:20;not null;default:user" json:"role"`
	PinHash    string          `json:"-"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"hourly_rate"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`

	Location *Location `gorm:"foreignKey:LocationID"`
	Timestamp
}

// Shift is one clock-in/clock-out span. Hours and LabourCost are fixed at clock-out.
type Shift struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"staff_id"`
	LocationID *uuid.UUID      `gorm:"type:uuid;index" json:"location_id,omitempty"`
	ClockInAt  time.Time       `gorm:"index;not null" json:"clock_in_at"`
	ClockOutAt *time.Time      `json:"clock_out_at,omitempty"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"hourly_rate"`
	Hours      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"hours"`
	LabourCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"labour_cost"`

	Staff *Staff `gorm:"foreignKey:StaffID"`
	Timestamp
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
