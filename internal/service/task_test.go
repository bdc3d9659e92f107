package service_test

import (
	"testing"
	"time"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestValidateTaskWindow(t *testing.T) {
	projectStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	projectEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("within window", func(t *testing.T) {
		due := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
		assert.NoError(t, service.ValidateTaskWindow(due, projectStart, &projectEnd))
	})

	t.Run("on project start", func(t *testing.T) {
		assert.NoError(t, service.ValidateTaskWindow(projectStart, projectStart, &projectEnd))
	})

	t.Run("on project end", func(t *testing.T) {
		assert.NoError(t, service.ValidateTaskWindow(projectEnd, projectStart, &projectEnd))
	})

	t.Run("before project start", func(t *testing.T) {
		due := projectStart.AddDate(0, 0, -1)
		err := service.ValidateTaskWindow(due, projectStart, &projectEnd)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "due_date")
	})

	t.Run("after project end", func(t *testing.T) {
		due := projectEnd.AddDate(0, 0, 1)
		err := service.ValidateTaskWindow(due, projectStart, &projectEnd)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("open ended project", func(t *testing.T) {
		due := projectStart.AddDate(5, 0, 0)
		assert.NoError(t, service.ValidateTaskWindow(due, projectStart, nil))
	})
}

func TestValidateCompletionPercentage(t *testing.T) {
	assert.NoError(t, service.ValidateCompletionPercentage(0))
	assert.NoError(t, service.ValidateCompletionPercentage(50))
	assert.NoError(t, service.ValidateCompletionPercentage(100))

	for _, invalid := range []int{-1, 101, 250} {
		err := service.ValidateCompletionPercentage(invalid)
		assert.Error(t, err, "percentage %d", invalid)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "completion_percentage")
	}
}

func TestFormatTimeLogged(t *testing.T) {
	t.Run("with estimate", func(t *testing.T) {
		estimated := 8.0
		assert.Equal(t, "2.5hrs / 8.0hrs", service.FormatTimeLogged(2.5, &estimated))
	})

	t.Run("no estimate", func(t *testing.T) {
		assert.Equal(t, "3.0hrs", service.FormatTimeLogged(3, nil))
	})

	t.Run("zero estimate treated as unset", func(t *testing.T) {
		estimated := 0.0
		assert.Equal(t, "1.5hrs", service.FormatTimeLogged(1.5, &estimated))
	})
}
