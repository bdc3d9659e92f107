package repository

import (
	"time"

	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilter narrows project listings
type ProjectFilter struct {
	Status     models.ProjectStatus
	Priority   models.Priority
	TeamID     *uuid.UUID
	IsArchived *bool
	Search     string
}

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithDetails retrieves a project with its team and manager expanded
func (r *ProjectRepository) GetWithDetails(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Team").
		Preload("ProjectManager").
		Preload("ProjectManager.User").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and cascades to its tasks and test cases
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// List retrieves projects matching the filter with pagination
func (r *ProjectRepository) List(filter ProjectFilter, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.IsArchived != nil {
		query = query.Where("is_archived = ?", *filter.IsArchived)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("start_date DESC, name").Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// SetArchived sets the archived flag on the given projects.
// No cascading side effects on child tasks.
func (r *ProjectRepository) SetArchived(ids []uuid.UUID, archived bool) error {
	return r.db.Model(&models.Project{}).Where("id IN ?", ids).Update("is_archived", archived).Error
}

// CountTasks returns the total number of tasks under a project
func (r *ProjectRepository) CountTasks(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// CountTasksByStatus returns the number of tasks under a project in a given status
func (r *ProjectRepository) CountTasksByStatus(projectID uuid.UUID, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Count(&count).Error
	return count, err
}

// CountOverdueTasks returns the number of pending or in-progress tasks under
// a project whose due date is strictly before the given date
func (r *ProjectRepository) CountOverdueTasks(projectID uuid.UUID, before time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_id = ? AND due_date < ? AND status IN ?", projectID, before,
			[]models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress}).
		Count(&count).Error
	return count, err
}

// SumLoggedHours returns the sum of hours_spent across all time entries of
// the project's tasks
func (r *ProjectRepository) SumLoggedHours(projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&models.TimeEntry{}).
		Joins("JOIN tasks ON time_entries.task_id = tasks.id").
		Where("tasks.project_id = ?", projectID).
		Select("COALESCE(SUM(time_entries.hours_spent), 0)").
		Scan(&total).Error
	return total, err
}
