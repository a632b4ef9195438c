package knowledgepath

import (
	"time"

	"gorm.io/gorm"
)

// Certificate request statuses. CANCELLED is terminal; APPROVED and
// REJECTED are reachable from PENDING and from each other.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// CertificateRequest is a user's request for a knowledge path certificate,
// decided by the path author
type CertificateRequest struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	KnowledgePathID uint       `json:"knowledge_path_id" gorm:"index;not null"`
	Status          string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED, CANCELLED
	Notes           string     `json:"notes" gorm:"type:text"`
	RejectionReason string     `json:"rejection_reason"`
	RequestedAt     time.Time  `json:"requested_at"`
	DecidedAt       *time.Time `json:"decided_at"`
	DecidedBy       *uint      `json:"decided_by"`
	IsDeleted       bool       `gorm:"default:false"`
}

// CertificateTemplate carries the presentation details for certificates of a
// knowledge path. Named from the path title at first approval.
type CertificateTemplate struct {
	gorm.Model
	KnowledgePathID uint   `json:"knowledge_path_id" gorm:"index;not null"`
	Name            string `json:"name"`
	Note            string `json:"note" gorm:"type:text"`
	IsDeleted       bool   `gorm:"default:false"`
}

// Certificate is issued as a side effect of request approval
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	KnowledgePathID   uint      `json:"knowledge_path_id" gorm:"index;not null"`
	TemplateID        uint      `json:"template_id"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
