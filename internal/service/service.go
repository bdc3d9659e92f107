package service

import (
	"time"

	apperrors "pms-backend/internal/errors"

	"github.com/google/uuid"
)

// DateLayout is the wire format for date-only fields
const DateLayout = "2006-01-02"

// Principal is the acting user threaded explicitly into every operation that
// stamps authorship or applies a visibility filter.
type Principal struct {
	UserID      uuid.UUID
	Username    string
	IsSuperuser bool
}

// ParseDate parses a date-only field, returning a ValidationError naming the
// field on bad input
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// FormatDate renders a date-only field
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today truncates a clock reading to its date, making date-only comparisons
// well defined
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizePagination clamps page/pageSize to sane bounds and returns the
// corresponding limit and offset
func NormalizePagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
