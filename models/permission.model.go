package models

import "gorm.io/gorm"

type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	Role       string `gorm:"not null"`
	Permission string `gorm:"not null"`
	IsDeleted  bool   `gorm:"default:false"`
}
