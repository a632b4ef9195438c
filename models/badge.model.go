package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Badge codes awarded by the platform
const (
	BadgeFounder        = "founder"
	BadgeEventGoer      = "event_goer"
	BadgePathPioneer    = "path_pioneer"
	BadgeContentCreator = "content_creator"
)

// Badge is a gamification award with a fixed point value
type Badge struct {
	gorm.Model
	Code        string `json:"code" gorm:"unique;not null"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsValue int    `json:"points_value" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}

// UserBadge records a badge granted to a user, at most once per (user, badge).
// PointsEarned is a snapshot of the badge's value at award time.
type UserBadge struct {
	gorm.Model
	UserID       uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_badge"`
	BadgeID      uint           `json:"badge_id" gorm:"index;not null;uniqueIndex:idx_user_badge"`
	PointsEarned int            `json:"points_earned"`
	ContextData  datatypes.JSON `json:"context_data"`
	IsDeleted    bool           `gorm:"default:false"`
}
