package service_test

import (
	"testing"
	"time"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateTimeEntry(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid entry", func(t *testing.T) {
		assert.NoError(t, service.ValidateTimeEntry(2.5, today.AddDate(0, 0, -3), now))
	})

	t.Run("today is allowed", func(t *testing.T) {
		assert.NoError(t, service.ValidateTimeEntry(1, today, now))
	})

	t.Run("zero hours", func(t *testing.T) {
		err := service.ValidateTimeEntry(0, today, now)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "hours_spent")
	})

	t.Run("negative hours", func(t *testing.T) {
		err := service.ValidateTimeEntry(-1.5, today, now)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("future date", func(t *testing.T) {
		err := service.ValidateTimeEntry(2, today.AddDate(0, 0, 1), now)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "date")
	})
}

func TestCreateTimeEntryRequestZeroHours(t *testing.T) {
	// Zero hours must reach the domain check, not trip struct validation.
	req := &service.CreateTimeEntryRequest{
		TaskID:     uuid.New(),
		Date:       "2026-08-31",
		HoursSpent: 0,
	}

	assert.NoError(t, validator.New().Struct(req))

	err := service.ValidateTimeEntry(req.HoursSpent, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), time.Now())
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "hours_spent")
}
