package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry represents hours logged by an employee against a task on a given date
type TimeEntry struct {
	TimestampedModel
	TaskID      uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID  uuid.UUID `json:"employee_id" gorm:"type:uuid;not null;index" validate:"required"`
	Date        time.Time `json:"date" gorm:"type:date;not null" validate:"required"`
	HoursSpent  float64   `json:"hours_spent" gorm:"not null" validate:"required"`
	Description string    `json:"description" gorm:"type:text"`

	// Relationships
	Task     Task     `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TimeEntry
func (TimeEntry) TableName() string {
	return "time_entries"
}
