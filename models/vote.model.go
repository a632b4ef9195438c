package models

import "gorm.io/gorm"

// Subject kinds for votes, comments and notifications. Explicit kind+id
// references instead of generic relations.
const (
	SubjectContent       = "CONTENT"
	SubjectComment       = "COMMENT"
	SubjectKnowledgePath = "KNOWLEDGE_PATH"
	SubjectEvent         = "EVENT"
)

// Vote is an up/down vote on a subject. One vote per (user, subject);
// voting again updates the value.
type Vote struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_subject"`
	SubjectKind string `json:"subject_kind" gorm:"not null;uniqueIndex:idx_user_subject"`
	SubjectID   uint   `json:"subject_id" gorm:"not null;uniqueIndex:idx_user_subject"`
	Value       int    `json:"value" gorm:"not null;check:value IN (-1, 1)"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Comment is a threaded comment on a subject
type Comment struct {
	gorm.Model
	AuthorID    uint   `json:"author_id" gorm:"index;not null"`
	SubjectKind string `json:"subject_kind" gorm:"not null"`
	SubjectID   uint   `json:"subject_id" gorm:"index;not null"`
	ParentID    *uint  `json:"parent_id"`
	Body        string `json:"body" gorm:"type:text;not null"`
	IsDeleted   bool   `gorm:"default:false"`
}
