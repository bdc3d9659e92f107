package models

import (
	"github.com/google/uuid"
)

// TestStep is a single ordered step of a test case. Step numbers are unique
// per test case and define the execution order.
type TestStep struct {
	TimestampedModel
	TestCaseID     uuid.UUID      `json:"test_case_id" gorm:"type:uuid;not null;uniqueIndex:idx_test_steps_case_number" validate:"required"`
	StepNumber     int            `json:"step_number" gorm:"not null;uniqueIndex:idx_test_steps_case_number" validate:"gte=1"`
	Action         string         `json:"action" gorm:"type:text;not null" validate:"required"`
	ExpectedResult string         `json:"expected_result" gorm:"type:text;not null" validate:"required"`
	ActualResult   string         `json:"actual_result" gorm:"type:text"`
	Status         TestStepStatus `json:"status" gorm:"type:varchar(20);not null;default:'not_executed'"`
	Screenshot     string         `json:"screenshot" gorm:"size:255"`

	// Relationships
	TestCase TestCase `json:"test_case,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TestStep
func (TestStep) TableName() string {
	return "test_steps"
}
