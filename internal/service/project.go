package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo      *repository.ProjectRepository
	teamRepo  *repository.TeamRepository
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo *repository.ProjectRepository, teamRepo *repository.TeamRepository, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		repo:      repo,
		teamRepo:  teamRepo,
		validator: validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name             string          `json:"name" validate:"required,max=200"`
	Description      string          `json:"description" validate:"required"`
	StartDate        string          `json:"start_date" validate:"required"`
	EndDate          string          `json:"end_date,omitempty"`
	Status           string          `json:"status,omitempty"`
	Priority         string          `json:"priority,omitempty"`
	Budget           *float64        `json:"budget,omitempty" validate:"omitempty,gt=0"`
	TeamID           uuid.UUID       `json:"team_id" validate:"required"`
	ProjectManagerID *uuid.UUID      `json:"project_manager_id,omitempty"`
	RepoURL          string          `json:"repo_url,omitempty" validate:"omitempty,url"`
	Tags             json.RawMessage `json:"tags,omitempty"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Name             *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Description      *string         `json:"description,omitempty"`
	StartDate        *string         `json:"start_date,omitempty"`
	EndDate          *string         `json:"end_date,omitempty"`
	Status           *string         `json:"status,omitempty"`
	Priority         *string         `json:"priority,omitempty"`
	Budget           *float64        `json:"budget,omitempty" validate:"omitempty,gt=0"`
	ProjectManagerID *uuid.UUID      `json:"project_manager_id,omitempty"`
	RepoURL          *string         `json:"repo_url,omitempty" validate:"omitempty,url"`
	Tags             json.RawMessage `json:"tags,omitempty"`
}

// ProjectResponse represents the response for project operations
type ProjectResponse struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	StartDate        string               `json:"start_date"`
	EndDate          *string              `json:"end_date,omitempty"`
	Status           models.ProjectStatus `json:"status"`
	Priority         models.Priority      `json:"priority"`
	Budget           *float64             `json:"budget,omitempty"`
	TeamID           uuid.UUID            `json:"team_id"`
	ProjectManagerID *uuid.UUID           `json:"project_manager_id,omitempty"`
	RepoURL          string               `json:"repo_url,omitempty"`
	Tags             json.RawMessage      `json:"tags,omitempty"`
	IsArchived       bool                 `json:"is_archived"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// TasksSummaryResponse reports rollup counts over a project's tasks
type TasksSummaryResponse struct {
	TotalTasks           int64   `json:"total_tasks"`
	CompletedTasks       int64   `json:"completed_tasks"`
	OverdueTasks         int64   `json:"overdue_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ValidateProjectDates checks the project date-range invariant: end date, if
// set, must not be before the start date.
func ValidateProjectDates(startDate time.Time, endDate *time.Time) error {
	if endDate != nil && endDate.Before(startDate) {
		return apperrors.NewValidationError("end_date", "end date cannot be before start date")
	}
	return nil
}

// CompletionPercentage computes completed/total as a percentage, defined as
// 0 when a project has no tasks
func CompletionPercentage(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// FormatBudgetStatus renders logged spend against the project budget with
// thousands grouping. The spend figure is the sum of logged hours,
// reported as-is.
func FormatBudgetStatus(spent float64, budget *float64) string {
	if budget == nil {
		return "No budget set"
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%.2f / $%.2f", spent, *budget)
}

// Create creates a new project after validating the date-range invariant
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	startDate, err := ParseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := ParseDate("end_date", req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}
	if err := ValidateProjectDates(startDate, endDate); err != nil {
		return nil, err
	}

	status := models.ProjectStatusNotStarted
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown project status")
		}
	}
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "unknown priority")
		}
	}

	if _, err := s.teamRepo.GetByID(req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to verify team: %w", err)
	}

	project := &models.Project{
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           status,
		Priority:         priority,
		Budget:           req.Budget,
		TeamID:           req.TeamID,
		ProjectManagerID: req.ProjectManagerID,
		RepoURL:          req.RepoURL,
		Tags:             req.Tags,
	}

	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.toResponse(project), nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return s.toResponse(project), nil
}

// Update updates a project, re-validating the date-range invariant against
// the effective dates
func (s *ProjectService) Update(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	startDate := project.StartDate
	endDate := project.EndDate
	if req.StartDate != nil {
		parsed, err := ParseDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = parsed
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			endDate = nil
		} else {
			parsed, err := ParseDate("end_date", *req.EndDate)
			if err != nil {
				return nil, err
			}
			endDate = &parsed
		}
	}
	if err := ValidateProjectDates(startDate, endDate); err != nil {
		return nil, err
	}

	project.StartDate = startDate
	project.EndDate = endDate
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown project status")
		}
		project.Status = status
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "unknown priority")
		}
		project.Priority = priority
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.ProjectManagerID != nil {
		project.ProjectManagerID = req.ProjectManagerID
	}
	if req.RepoURL != nil {
		project.RepoURL = *req.RepoURL
	}
	if req.Tags != nil {
		project.Tags = req.Tags
	}

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.toResponse(project), nil
}

// Delete deletes a project; tasks and test cases cascade
func (s *ProjectService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// List retrieves projects matching the filter with pagination
func (s *ProjectService) List(filter repository.ProjectFilter, page, pageSize int) (*ProjectListResponse, error) {
	limit, offset := NormalizePagination(page, pageSize)

	projects, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *s.toResponse(&projects[i]))
	}

	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Archive flags the given projects archived. No cascading side effects on
// child tasks.
func (s *ProjectService) Archive(ids []uuid.UUID) error {
	return s.repo.SetArchived(ids, true)
}

// Unarchive clears the archived flag on the given projects
func (s *ProjectService) Unarchive(ids []uuid.UUID) error {
	return s.repo.SetArchived(ids, false)
}

// TasksSummary computes the task rollup for a project at read time
func (s *ProjectService) TasksSummary(id uuid.UUID) (*TasksSummaryResponse, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	total, err := s.repo.CountTasks(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	completed, err := s.repo.CountTasksByStatus(id, models.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	overdue, err := s.repo.CountOverdueTasks(id, Today(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return &TasksSummaryResponse{
		TotalTasks:           total,
		CompletedTasks:       completed,
		OverdueTasks:         overdue,
		CompletionPercentage: math.Round(CompletionPercentage(completed, total)*100) / 100,
	}, nil
}

// BudgetStatus reports logged hours against the project budget
func (s *ProjectService) BudgetStatus(id uuid.UUID) (string, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrProjectNotFound
		}
		return "", fmt.Errorf("failed to get project: %w", err)
	}

	spent, err := s.repo.SumLoggedHours(id)
	if err != nil {
		return "", fmt.Errorf("failed to sum logged hours: %w", err)
	}

	return FormatBudgetStatus(spent, project.Budget), nil
}

func (s *ProjectService) toResponse(project *models.Project) *ProjectResponse {
	resp := &ProjectResponse{
		ID:               project.ID,
		Name:             project.Name,
		Description:      project.Description,
		StartDate:        FormatDate(project.StartDate),
		Status:           project.Status,
		Priority:         project.Priority,
		Budget:           project.Budget,
		TeamID:           project.TeamID,
		ProjectManagerID: project.ProjectManagerID,
		RepoURL:          project.RepoURL,
		Tags:             project.Tags,
		IsArchived:       project.IsArchived,
		CreatedAt:        project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        project.UpdatedAt.Format(time.RFC3339),
	}
	if project.EndDate != nil {
		end := FormatDate(*project.EndDate)
		resp.EndDate = &end
	}
	return resp
}
