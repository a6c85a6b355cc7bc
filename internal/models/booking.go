package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one persisted travel report: a user submission or a report
// pushed back by the workflow. Records are append-only.
type Booking struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id" bson:"_id"`
	InputType  string    `gorm:"size:16;not null" json:"input_type" bson:"input_type"`
	Email      string    `gorm:"index:idx_bookings_email_date,priority:1" json:"email" bson:"email"`
	ReportData string    `gorm:"type:text" json:"reportData" bson:"reportData"`
	TicketKey  string    `json:"ticketKey,omitempty" bson:"ticketKey,omitempty"`
	Date       time.Time `gorm:"index:idx_bookings_email_date,priority:2,sort:desc" json:"date" bson:"date"`
}

// Input types
const (
	InputTypeText   = "Text"
	InputTypePhoto  = "Photo"
	InputTypeAIPush = "AI_Push"
)

// SetDefaults assigns an ID and a creation date when they are missing.
func (b *Booking) SetDefaults() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Date.IsZero() {
		b.Date = time.Now().UTC()
	}
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	b.SetDefaults()
	return nil
}
