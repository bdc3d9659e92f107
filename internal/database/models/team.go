package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a group of employees with an optional lead.
// The lead is not required to be a member of the team.
type Team struct {
	TimestampedModel
	Name        string     `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Description string     `json:"description" gorm:"type:text"`
	TeamLeadID  *uuid.UUID `json:"team_lead_id,omitempty" gorm:"type:uuid;index"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`

	// Relationships
	TeamLead    *Employee        `json:"team_lead,omitempty" gorm:"foreignKey:TeamLeadID;constraint:OnDelete:SET NULL"`
	Memberships []TeamMembership `json:"memberships,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Projects    []Project        `json:"projects,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// TeamMembership links an employee to a team with a role and join/leave dates.
// An employee can hold at most one membership per team.
type TeamMembership struct {
	TimestampedModel
	TeamID     uuid.UUID  `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_employee" validate:"required"`
	EmployeeID uuid.UUID  `json:"employee_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_employee" validate:"required"`
	Role       string     `json:"role" gorm:"not null;size:50;default:'member'" validate:"max=50"`
	JoinedDate time.Time  `json:"joined_date" gorm:"type:date;not null"`
	LeftDate   *time.Time `json:"left_date,omitempty" gorm:"type:date"`

	// Relationships
	Team     Team     `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TeamMembership
func (TeamMembership) TableName() string {
	return "team_memberships"
}
