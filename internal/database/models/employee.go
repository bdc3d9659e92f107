package models

import (
	"github.com/google/uuid"
)

// Employee represents a staff profile linked one-to-one to a login identity
type Employee struct {
	TimestampedModel
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`
	Position     string    `json:"position" gorm:"not null;size:100" validate:"required,max=100"`
	Department   string    `json:"department" gorm:"size:100" validate:"max=100"`
	Phone        string    `json:"phone" gorm:"size:15" validate:"max=15"`
	Address      string    `json:"address" gorm:"type:text"`
	Skills       string    `json:"skills" gorm:"type:text"`
	HourlyRate   *float64  `json:"hourly_rate,omitempty"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	ProfileImage string    `json:"profile_image" gorm:"size:255"`

	// Relationships
	User        User             `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Memberships []TeamMembership `json:"memberships,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
