package service_test

import (
	"testing"
	"time"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	parsed, err := service.ParseDate("start_date", "2026-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestParseDateInvalid(t *testing.T) {
	cases := []string{"15-03-2026", "2026/03/15", "not a date", ""}
	for _, input := range cases {
		_, err := service.ParseDate("due_date", input)
		assert.Error(t, err, "input %q", input)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "due_date")
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	parsed, err := service.ParseDate("date", "2026-12-01")
	assert.NoError(t, err)
	assert.Equal(t, "2026-12-01", service.FormatDate(parsed))
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 9, 1, 17, 42, 3, 0, time.UTC)
	today := service.Today(now)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), today)
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"first page", 1, 10, 10, 0},
		{"third page", 3, 10, 10, 20},
		{"negative page", -5, 10, 10, 0},
		{"oversized page size", 1, 500, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := service.NormalizePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
