package models

import (
	"github.com/google/uuid"
)

// TestCase represents a manual or automated test linked to a project.
// CreatedByID is audit metadata: it is set once at creation and the
// referenced user cannot be deleted while the reference exists.
type TestCase struct {
	TimestampedModel
	ProjectID        uuid.UUID        `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	CategoryID       *uuid.UUID       `json:"category_id,omitempty" gorm:"type:uuid;index"`
	PriorityID       *uuid.UUID       `json:"priority_id,omitempty" gorm:"type:uuid;index"`
	EnvironmentID    *uuid.UUID       `json:"environment_id,omitempty" gorm:"type:uuid;index"`
	Title            string           `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description      string           `json:"description" gorm:"type:text" validate:"required"`
	TestType         TestType         `json:"test_type" gorm:"type:varchar(20);not null;default:'functional'"`
	AutomationStatus AutomationStatus `json:"automation_status" gorm:"type:varchar(20);not null;default:'not_automated'"`
	Status           TestCaseStatus   `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	Prerequisites    string           `json:"prerequisites" gorm:"type:text"`
	ActualResult     string           `json:"actual_result" gorm:"type:text"`
	Comments         string           `json:"comments" gorm:"type:text"`
	Attachment       string           `json:"attachment" gorm:"size:255"`
	AssignedToID     *uuid.UUID       `json:"assigned_to_id,omitempty" gorm:"type:uuid;index"`
	CreatedByID      uuid.UUID        `json:"created_by_id" gorm:"type:uuid;not null;index" validate:"required"`
	EstimatedMinutes *int             `json:"estimated_minutes,omitempty"`

	// Relationships
	Project      Project              `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Category     *TestCategory        `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Priority     *TestPriority        `json:"priority,omitempty" gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL"`
	Environment  *TestEnvironment     `json:"environment,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:SET NULL"`
	AssignedTo   *User                `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	CreatedBy    User                 `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	Steps        []TestStep           `json:"steps,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
	Dependencies []TestCaseDependency `json:"dependencies,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TestCase
func (TestCase) TableName() string {
	return "test_cases"
}

// TestCaseDependency is a directed edge between two test cases.
// Like task dependencies the graph is stored without cycle validation.
type TestCaseDependency struct {
	TimestampedModel
	TestCaseID  uuid.UUID `json:"test_case_id" gorm:"type:uuid;not null;uniqueIndex:idx_test_case_dependencies_edge" validate:"required"`
	DependsOnID uuid.UUID `json:"depends_on_id" gorm:"type:uuid;not null;uniqueIndex:idx_test_case_dependencies_edge" validate:"required"`

	// Relationships
	TestCase  TestCase `json:"test_case,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
	DependsOn TestCase `json:"depends_on,omitempty" gorm:"foreignKey:DependsOnID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TestCaseDependency
func (TestCaseDependency) TableName() string {
	return "test_case_dependencies"
}
