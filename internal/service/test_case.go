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

// TestCaseService handles business logic for test cases
type TestCaseService struct {
	repo        *repository.TestCaseRepository
	stepRepo    *repository.TestStepRepository
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	catRepo     *repository.TestCategoryRepository
	prioRepo    *repository.TestPriorityRepository
	envRepo     *repository.TestEnvironmentRepository
	validator   *validator.Validate
}

// NewTestCaseService creates a new test case service
func NewTestCaseService(
	repo *repository.TestCaseRepository,
	stepRepo *repository.TestStepRepository,
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	catRepo *repository.TestCategoryRepository,
	prioRepo *repository.TestPriorityRepository,
	envRepo *repository.TestEnvironmentRepository,
	validator *validator.Validate,
) *TestCaseService {
	return &TestCaseService{
		repo:        repo,
		stepRepo:    stepRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		catRepo:     catRepo,
		prioRepo:    prioRepo,
		envRepo:     envRepo,
		validator:   validator,
	}
}

// CreateTestCaseRequest represents the request to create a test case
type CreateTestCaseRequest struct {
	ProjectID        uuid.UUID  `json:"project_id" validate:"required"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	PriorityID       *uuid.UUID `json:"priority_id,omitempty"`
	EnvironmentID    *uuid.UUID `json:"environment_id,omitempty"`
	Title            string     `json:"title" validate:"required,max=200"`
	Description      string     `json:"description" validate:"required"`
	TestType         string     `json:"test_type,omitempty"`
	AutomationStatus string     `json:"automation_status,omitempty"`
	Status           string     `json:"status,omitempty"`
	Prerequisites    string     `json:"prerequisites,omitempty"`
	Comments         string     `json:"comments,omitempty"`
	Attachment       string     `json:"attachment,omitempty" validate:"omitempty,max=255"`
	AssignedToID     *uuid.UUID `json:"assigned_to_id,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty" validate:"omitempty,gt=0"`
}

// UpdateTestCaseRequest represents the request to update a test case.
// The creator is audit metadata and can never be changed.
type UpdateTestCaseRequest struct {
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	PriorityID       *uuid.UUID `json:"priority_id,omitempty"`
	EnvironmentID    *uuid.UUID `json:"environment_id,omitempty"`
	Title            *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description      *string    `json:"description,omitempty"`
	TestType         *string    `json:"test_type,omitempty"`
	AutomationStatus *string    `json:"automation_status,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Prerequisites    *string    `json:"prerequisites,omitempty"`
	ActualResult     *string    `json:"actual_result,omitempty"`
	Comments         *string    `json:"comments,omitempty"`
	Attachment       *string    `json:"attachment,omitempty" validate:"omitempty,max=255"`
	AssignedToID     *uuid.UUID `json:"assigned_to_id,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty" validate:"omitempty,gt=0"`
}

// TestCaseResponse represents the response for test case operations
type TestCaseResponse struct {
	ID               uuid.UUID               `json:"id"`
	ProjectID        uuid.UUID               `json:"project_id"`
	ProjectName      string                  `json:"project_name,omitempty"`
	CategoryID       *uuid.UUID              `json:"category_id,omitempty"`
	PriorityID       *uuid.UUID              `json:"priority_id,omitempty"`
	EnvironmentID    *uuid.UUID              `json:"environment_id,omitempty"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	TestType         models.TestType         `json:"test_type"`
	AutomationStatus models.AutomationStatus `json:"automation_status"`
	Status           models.TestCaseStatus   `json:"status"`
	Prerequisites    string                  `json:"prerequisites,omitempty"`
	ActualResult     string                  `json:"actual_result,omitempty"`
	Comments         string                  `json:"comments,omitempty"`
	Attachment       string                  `json:"attachment,omitempty"`
	AssignedToID     *uuid.UUID              `json:"assigned_to_id,omitempty"`
	CreatedByID      uuid.UUID               `json:"created_by_id"`
	EstimatedMinutes *int                    `json:"estimated_minutes,omitempty"`
	StepsCount       int                     `json:"steps_count"`
	ExecutionStatus  string                  `json:"execution_status,omitempty"`
	Steps            []models.TestStep       `json:"steps,omitempty"`
	DependsOn        []uuid.UUID             `json:"depends_on,omitempty"`
	CreatedAt        string                  `json:"created_at"`
	UpdatedAt        string                  `json:"updated_at"`
}

// TestCaseListResponse represents a paginated list of test cases
type TestCaseListResponse struct {
	TestCases []TestCaseResponse `json:"test_cases"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// ExecutionStatus summarizes step results into a single display string.
// Precedence: no steps or none executed reports "Not Started"; any failed
// step reports "Failed"; all passed reports "Passed"; anything else is
// still "In Progress". The "(p/t)" suffix counts passed over total steps.
func ExecutionStatus(steps []models.TestStep) string {
	total := len(steps)
	if total == 0 {
		return "Not Started"
	}

	passed, failed, executed := 0, 0, 0
	for _, step := range steps {
		switch step.Status {
		case models.TestStepStatusPassed:
			passed++
			executed++
		case models.TestStepStatusFailed:
			failed++
			executed++
		case models.TestStepStatusNotExecuted:
		default:
			executed++
		}
	}

	if executed == 0 {
		return "Not Started"
	}
	if failed > 0 {
		return fmt.Sprintf("Failed (%d/%d)", passed, total)
	}
	if passed == total {
		return fmt.Sprintf("Passed (%d/%d)", passed, total)
	}
	return fmt.Sprintf("In Progress (%d/%d)", passed, total)
}

// Create creates a test case. The creator is stamped from the acting
// principal and never taken from the request body.
func (s *TestCaseService) Create(principal Principal, req *CreateTestCaseRequest) (*TestCaseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.projectRepo.GetByID(req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	testType := models.TestTypeFunctional
	if req.TestType != "" {
		testType = models.TestType(req.TestType)
		if !testType.IsValid() {
			return nil, apperrors.NewValidationError("test_type", "unknown test type")
		}
	}
	automation := models.AutomationStatusNotAutomated
	if req.AutomationStatus != "" {
		automation = models.AutomationStatus(req.AutomationStatus)
		if !automation.IsValid() {
			return nil, apperrors.NewValidationError("automation_status", "unknown automation status")
		}
	}
	status := models.TestCaseStatusDraft
	if req.Status != "" {
		status = models.TestCaseStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown test case status")
		}
	}

	if err := s.verifyLookups(req.CategoryID, req.PriorityID, req.EnvironmentID); err != nil {
		return nil, err
	}
	if req.AssignedToID != nil {
		if _, err := s.userRepo.GetByID(*req.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	testCase := &models.TestCase{
		ProjectID:        req.ProjectID,
		CategoryID:       req.CategoryID,
		PriorityID:       req.PriorityID,
		EnvironmentID:    req.EnvironmentID,
		Title:            req.Title,
		Description:      req.Description,
		TestType:         testType,
		AutomationStatus: automation,
		Status:           status,
		Prerequisites:    req.Prerequisites,
		Comments:         req.Comments,
		Attachment:       req.Attachment,
		AssignedToID:     req.AssignedToID,
		CreatedByID:      principal.UserID,
		EstimatedMinutes: req.EstimatedMinutes,
	}

	if err := s.repo.Create(testCase); err != nil {
		return nil, fmt.Errorf("failed to create test case: %w", err)
	}

	return s.toResponse(testCase), nil
}

// GetByID retrieves a test case with steps, execution status and dependency
// edges expanded
func (s *TestCaseService) GetByID(id uuid.UUID) (*TestCaseResponse, error) {
	testCase, err := s.repo.GetWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}
	return s.toResponse(testCase), nil
}

// Update updates a test case. Any attempt to change the creator is ignored
// since the field is absent from the request shape.
func (s *TestCaseService) Update(id uuid.UUID, req *UpdateTestCaseRequest) (*TestCaseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	testCase, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}

	if err := s.verifyLookups(req.CategoryID, req.PriorityID, req.EnvironmentID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		testCase.CategoryID = req.CategoryID
	}
	if req.PriorityID != nil {
		testCase.PriorityID = req.PriorityID
	}
	if req.EnvironmentID != nil {
		testCase.EnvironmentID = req.EnvironmentID
	}
	if req.Title != nil {
		testCase.Title = *req.Title
	}
	if req.Description != nil {
		testCase.Description = *req.Description
	}
	if req.TestType != nil {
		testType := models.TestType(*req.TestType)
		if !testType.IsValid() {
			return nil, apperrors.NewValidationError("test_type", "unknown test type")
		}
		testCase.TestType = testType
	}
	if req.AutomationStatus != nil {
		automation := models.AutomationStatus(*req.AutomationStatus)
		if !automation.IsValid() {
			return nil, apperrors.NewValidationError("automation_status", "unknown automation status")
		}
		testCase.AutomationStatus = automation
	}
	if req.Status != nil {
		status := models.TestCaseStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown test case status")
		}
		testCase.Status = status
	}
	if req.Prerequisites != nil {
		testCase.Prerequisites = *req.Prerequisites
	}
	if req.ActualResult != nil {
		testCase.ActualResult = *req.ActualResult
	}
	if req.Comments != nil {
		testCase.Comments = *req.Comments
	}
	if req.Attachment != nil {
		testCase.Attachment = *req.Attachment
	}
	if req.AssignedToID != nil {
		if _, err := s.userRepo.GetByID(*req.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		testCase.AssignedToID = req.AssignedToID
	}
	if req.EstimatedMinutes != nil {
		testCase.EstimatedMinutes = req.EstimatedMinutes
	}

	if err := s.repo.Update(testCase); err != nil {
		return nil, fmt.Errorf("failed to update test case: %w", err)
	}

	return s.toResponse(testCase), nil
}

// Delete deletes a test case; its steps cascade
func (s *TestCaseService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestCaseNotFound
		}
		return fmt.Errorf("failed to get test case: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete test case: %w", err)
	}
	return nil
}

// List retrieves test cases matching the filter with pagination. Each entry
// carries its step count and summarized execution status.
func (s *TestCaseService) List(filter repository.TestCaseFilter, page, pageSize int) (*TestCaseListResponse, error) {
	limit, offset := NormalizePagination(page, pageSize)

	testCases, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}

	responses := make([]TestCaseResponse, 0, len(testCases))
	for i := range testCases {
		resp := s.toResponse(&testCases[i])
		steps, err := s.stepRepo.ListByTestCase(testCases[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load steps: %w", err)
		}
		resp.StepsCount = len(steps)
		resp.ExecutionStatus = ExecutionStatus(steps)
		resp.Steps = nil
		responses = append(responses, *resp)
	}

	return &TestCaseListResponse{
		TestCases: responses,
		Total:     total,
		Page:      page,
		PageSize:  limit,
	}, nil
}

// AddDependency stores a directed dependency edge between two test cases.
// Cycles are accepted.
func (s *TestCaseService) AddDependency(testCaseID, dependsOnID uuid.UUID) error {
	for _, id := range []uuid.UUID{testCaseID, dependsOnID} {
		if _, err := s.repo.GetByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTestCaseNotFound
			}
			return fmt.Errorf("failed to verify test case: %w", err)
		}
	}
	if err := s.repo.AddDependency(testCaseID, dependsOnID); err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}
	return nil
}

// RemoveDependency removes a directed dependency edge
func (s *TestCaseService) RemoveDependency(testCaseID, dependsOnID uuid.UUID) error {
	if err := s.repo.RemoveDependency(testCaseID, dependsOnID); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	return nil
}

func (s *TestCaseService) verifyLookups(categoryID, priorityID, environmentID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.catRepo.GetByID(*categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTestCategoryNotFound
			}
			return fmt.Errorf("failed to verify category: %w", err)
		}
	}
	if priorityID != nil {
		if _, err := s.prioRepo.GetByID(*priorityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTestPriorityNotFound
			}
			return fmt.Errorf("failed to verify priority: %w", err)
		}
	}
	if environmentID != nil {
		if _, err := s.envRepo.GetByID(*environmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTestEnvironmentNotFound
			}
			return fmt.Errorf("failed to verify environment: %w", err)
		}
	}
	return nil
}

func (s *TestCaseService) toResponse(testCase *models.TestCase) *TestCaseResponse {
	resp := &TestCaseResponse{
		ID:               testCase.ID,
		ProjectID:        testCase.ProjectID,
		CategoryID:       testCase.CategoryID,
		PriorityID:       testCase.PriorityID,
		EnvironmentID:    testCase.EnvironmentID,
		Title:            testCase.Title,
		Description:      testCase.Description,
		TestType:         testCase.TestType,
		AutomationStatus: testCase.AutomationStatus,
		Status:           testCase.Status,
		Prerequisites:    testCase.Prerequisites,
		ActualResult:     testCase.ActualResult,
		Comments:         testCase.Comments,
		Attachment:       testCase.Attachment,
		AssignedToID:     testCase.AssignedToID,
		CreatedByID:      testCase.CreatedByID,
		EstimatedMinutes: testCase.EstimatedMinutes,
		CreatedAt:        testCase.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        testCase.UpdatedAt.Format(time.RFC3339),
	}
	if testCase.Project.ID != uuid.Nil {
		resp.ProjectName = testCase.Project.Name
	}
	if testCase.Steps != nil {
		resp.Steps = testCase.Steps
		resp.StepsCount = len(testCase.Steps)
		resp.ExecutionStatus = ExecutionStatus(testCase.Steps)
	}
	for _, dep := range testCase.Dependencies {
		resp.DependsOn = append(resp.DependsOn, dep.DependsOnID)
	}
	return resp
}
