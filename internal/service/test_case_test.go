package service_test

import (
	"testing"

	"pms-backend/internal/database/models"
	"pms-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func steps(statuses ...models.TestStepStatus) []models.TestStep {
	out := make([]models.TestStep, len(statuses))
	for i, s := range statuses {
		out[i] = models.TestStep{Status: s}
	}
	return out
}

func TestExecutionStatus(t *testing.T) {
	tests := []struct {
		name  string
		steps []models.TestStep
		want  string
	}{
		{"no steps", nil, "Not Started"},
		{"nothing executed", steps(models.TestStepStatusNotExecuted, models.TestStepStatusNotExecuted), "Not Started"},
		{"any failure wins", steps(models.TestStepStatusFailed, models.TestStepStatusPassed), "Failed (1/2)"},
		{"failure beats pending", steps(models.TestStepStatusFailed, models.TestStepStatusNotExecuted), "Failed (0/2)"},
		{"all passed", steps(models.TestStepStatusPassed, models.TestStepStatusPassed), "Passed (2/2)"},
		{"partially executed", steps(models.TestStepStatusPassed, models.TestStepStatusNotExecuted), "In Progress (1/2)"},
		{"blocked counts as executed", steps(models.TestStepStatusBlocked, models.TestStepStatusPassed), "In Progress (1/2)"},
		{"skipped counts as executed", steps(models.TestStepStatusSkipped), "In Progress (0/1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ExecutionStatus(tt.steps))
		})
	}
}
