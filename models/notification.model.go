package models

import "gorm.io/gorm"

// Notification verbs
const (
	VerbPathCompleted      = "PATH_COMPLETED"
	VerbCertificateRequest = "CERTIFICATE_REQUESTED"
	VerbCertificateDecided = "CERTIFICATE_DECIDED"
	VerbEventRegistration  = "EVENT_REGISTRATION"
	VerbNewMessage         = "NEW_MESSAGE"
	VerbNewComment         = "NEW_COMMENT"
)

// Notification is an in-app notification for a user
type Notification struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"` // Recipient
	ActorID     uint   `json:"actor_id"`                      // User who triggered it
	Verb        string `json:"verb" gorm:"not null"`
	SubjectKind string `json:"subject_kind"`
	SubjectID   uint   `json:"subject_id"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
