package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task represents a unit of work under a project. Tasks may nest through
// ParentTaskID and may depend on other tasks through TaskDependency edges.
type Task struct {
	TimestampedModel
	ProjectID            uuid.UUID       `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	ParentTaskID         *uuid.UUID      `json:"parent_task_id,omitempty" gorm:"type:uuid;index"`
	AssignedToID         *uuid.UUID      `json:"assigned_to_id,omitempty" gorm:"type:uuid;index"`
	Title                string          `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description          string          `json:"description" gorm:"type:text" validate:"required"`
	DueDate              time.Time       `json:"due_date" gorm:"type:date;not null" validate:"required"`
	EstimatedHours       *float64        `json:"estimated_hours,omitempty"`
	ActualHours          *float64        `json:"actual_hours,omitempty"`
	Status               TaskStatus      `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Priority             Priority        `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	CompletionPercentage int             `json:"completion_percentage" gorm:"not null;default:0"`
	Attachments          json.RawMessage `json:"attachments,omitempty" gorm:"type:jsonb"`

	// Relationships
	Project      Project          `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ParentTask   *Task            `json:"parent_task,omitempty" gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE"`
	Subtasks     []Task           `json:"subtasks,omitempty" gorm:"foreignKey:ParentTaskID"`
	AssignedTo   *Employee        `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Comments     []Comment        `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	TimeEntries  []TimeEntry      `json:"time_entries,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Dependencies []TaskDependency `json:"dependencies,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TaskDependency is a directed edge between two tasks. The graph is stored
// as-is: cycles are accepted and never validated.
type TaskDependency struct {
	TimestampedModel
	TaskID      uuid.UUID `json:"task_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_dependencies_edge" validate:"required"`
	DependsOnID uuid.UUID `json:"depends_on_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_dependencies_edge" validate:"required"`

	// Relationships
	Task      Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	DependsOn Task `json:"depends_on,omitempty" gorm:"foreignKey:DependsOnID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TaskDependency
func (TaskDependency) TableName() string {
	return "task_dependencies"
}
