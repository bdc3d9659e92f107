package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntryFilter narrows time entry listings. EmployeeID doubles as the
// visibility scope: services set it for non-privileged callers.
type TimeEntryFilter struct {
	TaskID     *uuid.UUID
	EmployeeID *uuid.UUID
	ProjectID  *uuid.UUID
}

// TimeEntryRepository handles database operations for time entries
type TimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// Create creates a new time entry
func (r *TimeEntryRepository) Create(entry *models.TimeEntry) error {
	return r.db.Create(entry).Error
}

// GetByID retrieves a time entry by ID
func (r *TimeEntryRepository) GetByID(id uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update updates a time entry
func (r *TimeEntryRepository) Update(entry *models.TimeEntry) error {
	return r.db.Save(entry).Error
}

// Delete deletes a time entry
func (r *TimeEntryRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TimeEntry{}, "id = ?", id).Error
}

// List retrieves time entries matching the filter, newest date first, with
// pagination
func (r *TimeEntryRepository) List(filter TimeEntryFilter, limit, offset int) ([]models.TimeEntry, int64, error) {
	var entries []models.TimeEntry
	var total int64

	query := r.db.Model(&models.TimeEntry{})
	if filter.TaskID != nil {
		query = query.Where("time_entries.task_id = ?", *filter.TaskID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("time_entries.employee_id = ?", *filter.EmployeeID)
	}
	if filter.ProjectID != nil {
		query = query.
			Joins("JOIN tasks ON time_entries.task_id = tasks.id").
			Where("tasks.project_id = ?", *filter.ProjectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).
		Order("time_entries.date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
