package models

import (
	"time"

	"gorm.io/gorm"
)

// Event types
const (
	EventTypeLive    = "LIVE"
	EventTypeVirtual = "VIRTUAL"
	EventTypeHybrid  = "HYBRID"
)

// Payment statuses for event registrations
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

// Event represents a live or virtual event users can register for
type Event struct {
	gorm.Model
	OwnerID             uint      `json:"owner_id" gorm:"index;not null"`
	Title               string    `json:"title"`
	Description         string    `json:"description" gorm:"type:text"`
	EventType           string    `json:"event_type" gorm:"default:'VIRTUAL'"` // LIVE, VIRTUAL, HYBRID
	Location            string    `json:"location"`
	ScheduleDescription string    `json:"schedule_description"`
	DateStart           time.Time `json:"date_start"`
	DateEnd             time.Time `json:"date_end"`
	MaxAttendees        int       `json:"max_attendees" gorm:"default:0"` // 0 means unlimited
	ReminderSent        bool      `gorm:"default:false"`
	IsPublished         bool      `json:"is_published" gorm:"default:false"`
	IsDeleted           bool      `gorm:"default:false"`
}

// EventRegistration tracks a user's registration and payment status for an event
type EventRegistration struct {
	gorm.Model
	EventID       uint   `json:"event_id" gorm:"index;not null"`
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	PaymentStatus string `json:"payment_status" gorm:"default:'PENDING'"` // PENDING, PAID, REFUNDED
	IsDeleted     bool   `gorm:"default:false"`
}
