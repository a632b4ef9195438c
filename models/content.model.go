package models

import "gorm.io/gorm"

// Media types shared by content and knowledge path nodes
const (
	MediaTypeText  = "TEXT"
	MediaTypeVideo = "VIDEO"
	MediaTypeAudio = "AUDIO"
	MediaTypeImage = "IMAGE"
)

// Content represents a piece of library content authored by a user
type Content struct {
	gorm.Model
	AuthorID         uint     `json:"author_id" gorm:"index;not null"`
	Title            string   `json:"title"`
	Description      string   `json:"description" gorm:"type:text"`
	MediaType        string   `json:"media_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, AUDIO, IMAGE
	Text             string   `json:"text" gorm:"type:text"`            // For TEXT type
	URL              string   `json:"url"`                              // For VIDEO, AUDIO, IMAGE types
	AIDetectionScore *float64 `json:"ai_detection_score"`               // Set asynchronously after publish
	IsPublished      bool     `json:"is_published" gorm:"default:false"`
	IsDeleted        bool     `gorm:"default:false"`
}

// Topic groups content into browsable categories
type Topic struct {
	gorm.Model
	Title       string `json:"title" gorm:"unique;not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ContentTopic links content to a topic
type ContentTopic struct {
	gorm.Model
	ContentID uint `json:"content_id" gorm:"index;not null;uniqueIndex:idx_content_topic"`
	TopicID   uint `json:"topic_id" gorm:"index;not null;uniqueIndex:idx_content_topic"`
	IsDeleted bool `gorm:"default:false"`
}
