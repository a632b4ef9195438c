package knowledgepath

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionSingle   = "SINGLE"
	QuestionMultiple = "MULTIPLE"
)

// PassingScore is the score required to pass a quiz
const PassingScore = 100

// Quiz gates progression past the node it belongs to
type Quiz struct {
	gorm.Model
	NodeID            uint   `json:"node_id" gorm:"index;not null"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	MaxAttemptsPerDay int    `json:"max_attempts_per_day" gorm:"default:3"`
	IsDeleted         bool   `gorm:"default:false"`
}

// Question belongs to a quiz and is single or multiple choice
type Question struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	Text         string `json:"text" gorm:"type:text"`
	QuestionType string `json:"question_type" gorm:"default:'SINGLE'"` // SINGLE, MULTIPLE
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}

// Option is a selectable answer for a question
type Option struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizAttempt records one scored submission. A pass is a score of 100.
type QuizAttempt struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	QuizID      uint      `json:"quiz_id" gorm:"index;not null"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_on"`
	IsDeleted   bool      `gorm:"default:false"`
}

// QuizAnswer stores the selected options for one question of an attempt
type QuizAnswer struct {
	gorm.Model
	AttemptID       uint           `json:"attempt_id" gorm:"index;not null"`
	QuestionID      uint           `json:"question_id" gorm:"index;not null"`
	SelectedOptions datatypes.JSON `json:"selected_options"` // JSON array of option IDs
	IsCorrect       bool           `json:"is_correct" gorm:"default:false"`
	IsDeleted       bool           `gorm:"default:false"`
}
