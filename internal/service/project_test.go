package service_test

import (
	"testing"
	"time"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestValidateProjectDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no end date", func(t *testing.T) {
		assert.NoError(t, service.ValidateProjectDates(start, nil))
	})

	t.Run("end after start", func(t *testing.T) {
		end := start.AddDate(0, 6, 0)
		assert.NoError(t, service.ValidateProjectDates(start, &end))
	})

	t.Run("end equals start", func(t *testing.T) {
		end := start
		assert.NoError(t, service.ValidateProjectDates(start, &end))
	})

	t.Run("end before start", func(t *testing.T) {
		end := start.AddDate(0, 0, -1)
		err := service.ValidateProjectDates(start, &end)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "end_date")
	})
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"half completed", 2, 4, 50},
		{"thirds", 1, 3, 33.33},
		{"all completed", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.CompletionPercentage(tt.completed, tt.total)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestFormatBudgetStatus(t *testing.T) {
	t.Run("no budget", func(t *testing.T) {
		assert.Equal(t, "No budget set", service.FormatBudgetStatus(1200, nil))
	})

	t.Run("with budget", func(t *testing.T) {
		budget := 50000.0
		assert.Equal(t, "$1,234.50 / $50,000.00", service.FormatBudgetStatus(1234.5, &budget))
	})

	t.Run("zero spent", func(t *testing.T) {
		budget := 100.0
		assert.Equal(t, "$0.00 / $100.00", service.FormatBudgetStatus(0, &budget))
	})

	t.Run("millions grouped", func(t *testing.T) {
		budget := 1250000.0
		assert.Equal(t, "$10,500.25 / $1,250,000.00", service.FormatBudgetStatus(10500.25, &budget))
	})
}
