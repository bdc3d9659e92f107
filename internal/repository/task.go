package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskFilter narrows task listings
type TaskFilter struct {
	Status       models.TaskStatus
	Priority     models.Priority
	ProjectID    *uuid.UUID
	AssignedToID *uuid.UUID
	Search       string
}

// TaskRepository handles database operations for tasks and their dependency edges
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetWithDetails retrieves a task with project, assignee, subtasks and
// dependency edges expanded
func (r *TaskRepository) GetWithDetails(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Project").
		Preload("AssignedTo").
		Preload("AssignedTo.User").
		Preload("Subtasks").
		Preload("Dependencies").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task and cascades to subtasks, comments and time entries
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// List retrieves tasks matching the filter with pagination
func (r *TaskRepository) List(filter TaskFilter, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := r.db.Model(&models.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("due_date, priority").Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetByAssignee retrieves all tasks assigned to an employee
func (r *TaskRepository) GetByAssignee(employeeID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("assigned_to_id = ?", employeeID).Order("due_date").Find(&tasks).Error
	return tasks, err
}

// MarkCompleted sets status=completed and completion_percentage=100 on the
// given tasks in a single transaction
func (r *TaskRepository) MarkCompleted(ids []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Task{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":                models.TaskStatusCompleted,
				"completion_percentage": 100,
			}).Error
	})
}

// MarkInProgress sets status=in_progress on the given tasks in a single
// transaction. Completion percentages are left untouched.
func (r *TaskRepository) MarkInProgress(ids []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Task{}).Where("id IN ?", ids).
			Update("status", models.TaskStatusInProgress).Error
	})
}

// SumLoggedHours returns the sum of hours_spent across the task's time entries
func (r *TaskRepository) SumLoggedHours(taskID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&models.TimeEntry{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(hours_spent), 0)").
		Scan(&total).Error
	return total, err
}

// AddDependency stores a directed dependency edge. Cycles are accepted.
func (r *TaskRepository) AddDependency(taskID, dependsOnID uuid.UUID) error {
	edge := &models.TaskDependency{TaskID: taskID, DependsOnID: dependsOnID}
	return r.db.Create(edge).Error
}

// RemoveDependency removes a directed dependency edge
func (r *TaskRepository) RemoveDependency(taskID, dependsOnID uuid.UUID) error {
	return r.db.Delete(&models.TaskDependency{},
		"task_id = ? AND depends_on_id = ?", taskID, dependsOnID).Error
}
