package service

import (
	"errors"
	"fmt"
	"time"

	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntryService handles business logic for time entries
type TimeEntryService struct {
	repo         *repository.TimeEntryRepository
	taskRepo     *repository.TaskRepository
	employeeRepo *repository.EmployeeRepository
	validator    *validator.Validate
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(repo *repository.TimeEntryRepository, taskRepo *repository.TaskRepository, employeeRepo *repository.EmployeeRepository, validator *validator.Validate) *TimeEntryService {
	return &TimeEntryService{
		repo:         repo,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		validator:    validator,
	}
}

// CreateTimeEntryRequest represents the request to log time against a task
type CreateTimeEntryRequest struct {
	TaskID      uuid.UUID `json:"task_id" validate:"required"`
	Date        string    `json:"date" validate:"required"`
	HoursSpent  float64   `json:"hours_spent"`
	Description string    `json:"description,omitempty"`
}

// UpdateTimeEntryRequest represents the request to update a time entry
type UpdateTimeEntryRequest struct {
	Date        *string  `json:"date,omitempty"`
	HoursSpent  *float64 `json:"hours_spent,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// TimeEntryResponse represents the response for time entry operations
type TimeEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
	Date        string    `json:"date"`
	HoursSpent  float64   `json:"hours_spent"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// TimeEntryListResponse represents a paginated list of time entries
type TimeEntryListResponse struct {
	Entries  []TimeEntryResponse `json:"entries"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// ValidateTimeEntry checks the invariants for a logged entry: hours must be
// strictly positive and the date must not be in the future relative to now.
func ValidateTimeEntry(hoursSpent float64, date, now time.Time) error {
	if hoursSpent <= 0 {
		return apperrors.NewValidationError("hours_spent", "hours spent must be greater than 0")
	}
	if date.After(Today(now)) {
		return apperrors.NewValidationError("date", "cannot log time for future dates")
	}
	return nil
}

// Create logs time against a task for the acting principal's employee record
func (s *TimeEntryService) Create(principal Principal, req *CreateTimeEntryRequest) (*TimeEntryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.taskRepo.GetByID(req.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	employee, err := s.employeeRepo.GetByUserID(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}

	date, err := ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := ValidateTimeEntry(req.HoursSpent, date, time.Now()); err != nil {
		return nil, err
	}

	entry := &models.TimeEntry{
		TaskID:      req.TaskID,
		EmployeeID:  employee.ID,
		Date:        date,
		HoursSpent:  req.HoursSpent,
		Description: req.Description,
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return s.toResponse(entry), nil
}

// GetByID retrieves a time entry. Non-superusers can only see their own.
func (s *TimeEntryService) GetByID(principal Principal, id uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	if err := s.authorizeOwner(principal, entry.EmployeeID); err != nil {
		return nil, err
	}

	return s.toResponse(entry), nil
}

// Update edits a time entry. Only the owning employee or a superuser may
// edit, and the edited values must still satisfy the logging invariants.
func (s *TimeEntryService) Update(principal Principal, id uuid.UUID, req *UpdateTimeEntryRequest) (*TimeEntryResponse, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	if err := s.authorizeOwner(principal, entry.EmployeeID); err != nil {
		return nil, err
	}

	date := entry.Date
	if req.Date != nil {
		parsed, err := ParseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	hours := entry.HoursSpent
	if req.HoursSpent != nil {
		hours = *req.HoursSpent
	}
	if err := ValidateTimeEntry(hours, date, time.Now()); err != nil {
		return nil, err
	}

	entry.Date = date
	entry.HoursSpent = hours
	if req.Description != nil {
		entry.Description = *req.Description
	}

	if err := s.repo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	return s.toResponse(entry), nil
}

// Delete removes a time entry. Only the owning employee or a superuser may
// delete.
func (s *TimeEntryService) Delete(principal Principal, id uuid.UUID) error {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTimeEntryNotFound
		}
		return fmt.Errorf("failed to get time entry: %w", err)
	}

	if err := s.authorizeOwner(principal, entry.EmployeeID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return nil
}

// List retrieves time entries matching the filter. Non-superusers are
// always scoped to their own entries regardless of the requested filter.
func (s *TimeEntryService) List(principal Principal, filter repository.TimeEntryFilter, page, pageSize int) (*TimeEntryListResponse, error) {
	if !principal.IsSuperuser {
		employee, err := s.employeeRepo.GetByUserID(principal.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to resolve employee: %w", err)
		}
		filter.EmployeeID = &employee.ID
	}

	limit, offset := NormalizePagination(page, pageSize)

	entries, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]TimeEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, *s.toResponse(&entries[i]))
	}

	return &TimeEntryListResponse{
		Entries:  responses,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

func (s *TimeEntryService) authorizeOwner(principal Principal, employeeID uuid.UUID) error {
	if principal.IsSuperuser {
		return nil
	}
	employee, err := s.employeeRepo.GetByUserID(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotEntryOwner
		}
		return fmt.Errorf("failed to resolve principal employee: %w", err)
	}
	if employee.ID != employeeID {
		return apperrors.ErrNotEntryOwner
	}
	return nil
}

func (s *TimeEntryService) toResponse(entry *models.TimeEntry) *TimeEntryResponse {
	return &TimeEntryResponse{
		ID:          entry.ID,
		TaskID:      entry.TaskID,
		EmployeeID:  entry.EmployeeID,
		Date:        FormatDate(entry.Date),
		HoursSpent:  entry.HoursSpent,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   entry.UpdatedAt.Format(time.RFC3339),
	}
}
