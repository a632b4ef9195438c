package models

import "gorm.io/gorm"

// DirectMessage is a private message between two users
type DirectMessage struct {
	gorm.Model
	SenderID    uint   `json:"sender_id" gorm:"index;not null"`
	RecipientID uint   `json:"recipient_id" gorm:"index;not null"`
	Body        string `json:"body" gorm:"type:text;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
