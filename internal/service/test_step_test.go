package service_test

import (
	"testing"

	"pms-backend/internal/database/models"
	"pms-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAssignStepNumbers(t *testing.T) {
	t.Run("explicit numbers kept", func(t *testing.T) {
		inputs := []service.StepInput{
			{StepNumber: 1},
			{StepNumber: 2},
		}
		assert.Equal(t, []int{1, 2}, service.AssignStepNumbers(inputs, 0))
	})

	t.Run("blank numbers appended after existing max", func(t *testing.T) {
		inputs := []service.StepInput{
			{StepNumber: 0},
			{StepNumber: 0},
		}
		assert.Equal(t, []int{4, 5}, service.AssignStepNumbers(inputs, 3))
	})

	t.Run("blank appended after highest explicit", func(t *testing.T) {
		inputs := []service.StepInput{
			{StepNumber: 7},
			{StepNumber: 0},
		}
		assert.Equal(t, []int{7, 8}, service.AssignStepNumbers(inputs, 2))
	})

	t.Run("deleted rows yield zero", func(t *testing.T) {
		inputs := []service.StepInput{
			{StepNumber: 1, Delete: true},
			{StepNumber: 2},
		}
		assert.Equal(t, []int{0, 2}, service.AssignStepNumbers(inputs, 2))
	})

	t.Run("deleted rows do not raise the watermark", func(t *testing.T) {
		inputs := []service.StepInput{
			{StepNumber: 9, Delete: true},
			{StepNumber: 0},
		}
		assert.Equal(t, []int{0, 4}, service.AssignStepNumbers(inputs, 3))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, service.AssignStepNumbers(nil, 5))
	})
}

func TestMaxSurvivingStepNumber(t *testing.T) {
	existing := []models.TestStep{
		stepWithNumber(1),
		stepWithNumber(2),
		stepWithNumber(3),
	}

	t.Run("no deletions", func(t *testing.T) {
		assert.Equal(t, 3, service.MaxSurvivingStepNumber(existing, nil))
	})

	t.Run("deleting the top step frees its number", func(t *testing.T) {
		inputs := []service.StepInput{
			{ID: &existing[2].ID, Delete: true},
			{StepNumber: 0, Action: "reload", ExpectedResult: "page loads"},
		}
		max := service.MaxSurvivingStepNumber(existing, inputs)
		assert.Equal(t, 2, max)
		assert.Equal(t, []int{0, 3}, service.AssignStepNumbers(inputs, max))
	})

	t.Run("deleting a middle step keeps the top number", func(t *testing.T) {
		inputs := []service.StepInput{
			{ID: &existing[1].ID, Delete: true},
			{StepNumber: 0},
		}
		max := service.MaxSurvivingStepNumber(existing, inputs)
		assert.Equal(t, 3, max)
		assert.Equal(t, []int{0, 4}, service.AssignStepNumbers(inputs, max))
	})

	t.Run("no existing steps", func(t *testing.T) {
		assert.Equal(t, 0, service.MaxSurvivingStepNumber(nil, nil))
	})
}

func stepWithNumber(n int) models.TestStep {
	return models.TestStep{
		TimestampedModel: models.TimestampedModel{ID: uuid.New()},
		StepNumber:       n,
	}
}
