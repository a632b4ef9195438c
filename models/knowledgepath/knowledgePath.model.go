package knowledgepath

import (
	"time"

	"gorm.io/gorm"
)

// KnowledgePath represents an authored, ordered learning track
type KnowledgePath struct {
	gorm.Model
	AuthorID    uint   `json:"author_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Node is an ordered unit of content within a knowledge path
type Node struct {
	gorm.Model
	KnowledgePathID uint   `json:"knowledge_path_id" gorm:"index;not null;uniqueIndex:idx_path_order"`
	Title           string `json:"title"`
	Description     string `json:"description" gorm:"type:text"`
	MediaType       string `json:"media_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, AUDIO, IMAGE
	URL             string `json:"url"`
	Order           int    `json:"order" gorm:"column:order_index;not null;uniqueIndex:idx_path_order"`
	IsDeleted       bool   `gorm:"default:false"`
}

// UserNodeCompletion tracks a user's completion of a node. One row per
// (user, path, node), created lazily on first completion.
type UserNodeCompletion struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_path_node"`
	KnowledgePathID uint       `json:"knowledge_path_id" gorm:"index;not null;uniqueIndex:idx_user_path_node"`
	NodeID          uint       `json:"node_id" gorm:"index;not null;uniqueIndex:idx_user_path_node"`
	IsCompleted     bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt     *time.Time `json:"completed_at"`
	IsDeleted       bool       `gorm:"default:false"`
}
