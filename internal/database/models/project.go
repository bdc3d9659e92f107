package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Project represents a project owned by a team with a date range, status and budget
type Project struct {
	TimestampedModel
	Name             string          `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Description      string          `json:"description" gorm:"type:text" validate:"required"`
	StartDate        time.Time       `json:"start_date" gorm:"type:date;not null" validate:"required"`
	EndDate          *time.Time      `json:"end_date,omitempty" gorm:"type:date"`
	Status           ProjectStatus   `json:"status" gorm:"type:varchar(20);not null;default:'not_started'"`
	Priority         Priority        `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	Budget           *float64        `json:"budget,omitempty"`
	TeamID           uuid.UUID       `json:"team_id" gorm:"type:uuid;not null;index" validate:"required"`
	ProjectManagerID *uuid.UUID      `json:"project_manager_id,omitempty" gorm:"type:uuid;index"`
	RepoURL          string          `json:"repo_url" gorm:"size:255" validate:"omitempty,url,max=255"`
	Tags             json.RawMessage `json:"tags,omitempty" gorm:"type:jsonb"`
	IsArchived       bool            `json:"is_archived" gorm:"default:false"`

	// Relationships
	Team           Team      `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	ProjectManager *Employee `json:"project_manager,omitempty" gorm:"foreignKey:ProjectManagerID;constraint:OnDelete:SET NULL"`
	Tasks          []Task    `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
