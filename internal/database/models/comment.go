package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Comment represents a comment left by an employee on a task
type Comment struct {
	TimestampedModel
	TaskID      uuid.UUID       `json:"task_id" gorm:"type:uuid;not null;index" validate:"required"`
	AuthorID    uuid.UUID       `json:"author_id" gorm:"type:uuid;not null;index" validate:"required"`
	Content     string          `json:"content" gorm:"type:text;not null" validate:"required"`
	Attachments json.RawMessage `json:"attachments,omitempty" gorm:"type:jsonb"`

	// Relationships
	Task   Task     `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Author Employee `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
