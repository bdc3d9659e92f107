package service

import (
	"encoding/json"
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

// TaskService handles business logic for tasks
type TaskService struct {
	repo         *repository.TaskRepository
	projectRepo  *repository.ProjectRepository
	employeeRepo *repository.EmployeeRepository
	validator    *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo *repository.TaskRepository, projectRepo *repository.ProjectRepository, employeeRepo *repository.EmployeeRepository, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:         repo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		validator:    validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID            uuid.UUID       `json:"project_id" validate:"required"`
	ParentTaskID         *uuid.UUID      `json:"parent_task_id,omitempty"`
	AssignedToID         *uuid.UUID      `json:"assigned_to_id,omitempty"`
	Title                string          `json:"title" validate:"required,max=200"`
	Description          string          `json:"description" validate:"required"`
	DueDate              string          `json:"due_date" validate:"required"`
	EstimatedHours       *float64        `json:"estimated_hours,omitempty" validate:"omitempty,gt=0"`
	Status               string          `json:"status,omitempty"`
	Priority             string          `json:"priority,omitempty"`
	CompletionPercentage int             `json:"completion_percentage"`
	Attachments          json.RawMessage `json:"attachments,omitempty"`
}

// UpdateTaskRequest represents the request to update a task
type UpdateTaskRequest struct {
	ParentTaskID         *uuid.UUID      `json:"parent_task_id,omitempty"`
	AssignedToID         *uuid.UUID      `json:"assigned_to_id,omitempty"`
	Title                *string         `json:"title,omitempty" validate:"omitempty,max=200"`
	Description          *string         `json:"description,omitempty"`
	DueDate              *string         `json:"due_date,omitempty"`
	EstimatedHours       *float64        `json:"estimated_hours,omitempty" validate:"omitempty,gt=0"`
	ActualHours          *float64        `json:"actual_hours,omitempty" validate:"omitempty,gt=0"`
	Status               *string         `json:"status,omitempty"`
	Priority             *string         `json:"priority,omitempty"`
	CompletionPercentage *int            `json:"completion_percentage,omitempty"`
	Attachments          json.RawMessage `json:"attachments,omitempty"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID                   uuid.UUID         `json:"id"`
	ProjectID            uuid.UUID         `json:"project_id"`
	ParentTaskID         *uuid.UUID        `json:"parent_task_id,omitempty"`
	AssignedToID         *uuid.UUID        `json:"assigned_to_id,omitempty"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	DueDate              string            `json:"due_date"`
	EstimatedHours       *float64          `json:"estimated_hours,omitempty"`
	ActualHours          *float64          `json:"actual_hours,omitempty"`
	Status               models.TaskStatus `json:"status"`
	Priority             models.Priority   `json:"priority"`
	CompletionPercentage int               `json:"completion_percentage"`
	Attachments          json.RawMessage   `json:"attachments,omitempty"`
	DependsOn            []uuid.UUID       `json:"depends_on,omitempty"`
	CreatedAt            string            `json:"created_at"`
	UpdatedAt            string            `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ValidateTaskWindow checks that a task due date falls inside the owning
// project's date range. Both bounds are inclusive.
func ValidateTaskWindow(dueDate, projectStart time.Time, projectEnd *time.Time) error {
	if dueDate.Before(projectStart) {
		return apperrors.NewValidationError("due_date", "task due date cannot be before project start date")
	}
	if projectEnd != nil && dueDate.After(*projectEnd) {
		return apperrors.NewValidationError("due_date", "task due date cannot be after project end date")
	}
	return nil
}

// ValidateCompletionPercentage checks the [0,100] bound
func ValidateCompletionPercentage(percentage int) error {
	if percentage < 0 || percentage > 100 {
		return apperrors.NewValidationError("completion_percentage", "completion percentage must be between 0 and 100")
	}
	return nil
}

// FormatTimeLogged renders logged hours, paired against the estimate when
// one is present
func FormatTimeLogged(logged float64, estimated *float64) string {
	if estimated != nil && *estimated > 0 {
		return fmt.Sprintf("%.1fhrs / %.1fhrs", logged, *estimated)
	}
	return fmt.Sprintf("%.1fhrs", logged)
}

// Create creates a new task after validating the project window and the
// completion bound
func (s *TaskService) Create(req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.projectRepo.GetByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	dueDate, err := ParseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := ValidateTaskWindow(dueDate, project.StartDate, project.EndDate); err != nil {
		return nil, err
	}
	if err := ValidateCompletionPercentage(req.CompletionPercentage); err != nil {
		return nil, err
	}

	status := models.TaskStatusPending
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown task status")
		}
	}
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "unknown priority")
		}
	}

	if req.ParentTaskID != nil {
		if _, err := s.repo.GetByID(*req.ParentTaskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to verify parent task: %w", err)
		}
	}
	if req.AssignedToID != nil {
		if _, err := s.employeeRepo.GetByID(*req.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	task := &models.Task{
		ProjectID:            req.ProjectID,
		ParentTaskID:         req.ParentTaskID,
		AssignedToID:         req.AssignedToID,
		Title:                req.Title,
		Description:          req.Description,
		DueDate:              dueDate,
		EstimatedHours:       req.EstimatedHours,
		Status:               status,
		Priority:             priority,
		CompletionPercentage: req.CompletionPercentage,
		Attachments:          req.Attachments,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.toResponse(task), nil
}

// GetByID retrieves a task with dependency edges expanded
func (s *TaskService) GetByID(id uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.GetWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return s.toResponse(task), nil
}

// Update updates a task, re-validating the project window against the
// effective due date
func (s *TaskService) Update(id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	project, err := s.projectRepo.GetByID(task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dueDate := task.DueDate
	if req.DueDate != nil {
		parsed, err := ParseDate("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = parsed
	}
	if err := ValidateTaskWindow(dueDate, project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	completion := task.CompletionPercentage
	if req.CompletionPercentage != nil {
		completion = *req.CompletionPercentage
	}
	if err := ValidateCompletionPercentage(completion); err != nil {
		return nil, err
	}

	task.DueDate = dueDate
	task.CompletionPercentage = completion
	if req.ParentTaskID != nil {
		task.ParentTaskID = req.ParentTaskID
	}
	if req.AssignedToID != nil {
		if _, err := s.employeeRepo.GetByID(*req.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		task.AssignedToID = req.AssignedToID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown task status")
		}
		task.Status = status
		if status == models.TaskStatusCompleted {
			task.CompletionPercentage = 100
		}
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "unknown priority")
		}
		task.Priority = priority
	}
	if req.Attachments != nil {
		task.Attachments = req.Attachments
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.toResponse(task), nil
}

// Delete deletes a task; subtasks, comments and time entries cascade
func (s *TaskService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List retrieves tasks matching the filter with pagination
func (s *TaskService) List(filter repository.TaskFilter, page, pageSize int) (*TaskListResponse, error) {
	limit, offset := NormalizePagination(page, pageSize)

	tasks, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *s.toResponse(&tasks[i]))
	}

	return &TaskListResponse{
		Tasks:    responses,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// UpdateStatus transitions a task to a new status. Unknown statuses are
// rejected; transitioning to completed also forces completion to 100.
func (s *TaskService) UpdateStatus(id uuid.UUID, newStatus string) (*TaskResponse, error) {
	status := models.TaskStatus(newStatus)
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("status", "unknown task status")
	}

	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Status = status
	if status == models.TaskStatusCompleted {
		task.CompletionPercentage = 100
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.toResponse(task), nil
}

// MarkCompleted bulk-transitions tasks to completed, forcing completion
// percentage to 100 regardless of prior value
func (s *TaskService) MarkCompleted(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.MarkCompleted(ids); err != nil {
		return fmt.Errorf("failed to mark tasks completed: %w", err)
	}
	return nil
}

// MarkInProgress bulk-transitions tasks to in_progress
func (s *TaskService) MarkInProgress(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.MarkInProgress(ids); err != nil {
		return fmt.Errorf("failed to mark tasks in progress: %w", err)
	}
	return nil
}

// TimeLogged reports the hours logged against a task, paired with the
// estimate when present
func (s *TaskService) TimeLogged(id uuid.UUID) (string, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrTaskNotFound
		}
		return "", fmt.Errorf("failed to get task: %w", err)
	}

	logged, err := s.repo.SumLoggedHours(id)
	if err != nil {
		return "", fmt.Errorf("failed to sum logged hours: %w", err)
	}

	return FormatTimeLogged(logged, task.EstimatedHours), nil
}

// AddDependency stores a directed dependency edge between two tasks.
// The graph shape is not validated; cycles are accepted.
func (s *TaskService) AddDependency(taskID, dependsOnID uuid.UUID) error {
	for _, id := range []uuid.UUID{taskID, dependsOnID} {
		if _, err := s.repo.GetByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return fmt.Errorf("failed to verify task: %w", err)
		}
	}
	if err := s.repo.AddDependency(taskID, dependsOnID); err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}
	return nil
}

// RemoveDependency removes a directed dependency edge
func (s *TaskService) RemoveDependency(taskID, dependsOnID uuid.UUID) error {
	if err := s.repo.RemoveDependency(taskID, dependsOnID); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	return nil
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:                   task.ID,
		ProjectID:            task.ProjectID,
		ParentTaskID:         task.ParentTaskID,
		AssignedToID:         task.AssignedToID,
		Title:                task.Title,
		Description:          task.Description,
		DueDate:              FormatDate(task.DueDate),
		EstimatedHours:       task.EstimatedHours,
		ActualHours:          task.ActualHours,
		Status:               task.Status,
		Priority:             task.Priority,
		CompletionPercentage: task.CompletionPercentage,
		Attachments:          task.Attachments,
		CreatedAt:            task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            task.UpdatedAt.Format(time.RFC3339),
	}
	for _, dep := range task.Dependencies {
		resp.DependsOn = append(resp.DependsOn, dep.DependsOnID)
	}
	return resp
}
