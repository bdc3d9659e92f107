package service

import (
	"errors"
	"fmt"

	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestStepService handles business logic for test steps
type TestStepService struct {
	repo         *repository.TestStepRepository
	testCaseRepo *repository.TestCaseRepository
	validator    *validator.Validate
}

// NewTestStepService creates a new test step service
func NewTestStepService(repo *repository.TestStepRepository, testCaseRepo *repository.TestCaseRepository, validator *validator.Validate) *TestStepService {
	return &TestStepService{
		repo:         repo,
		testCaseRepo: testCaseRepo,
		validator:    validator,
	}
}

// CreateTestStepRequest represents the request to add a single step.
// A zero StepNumber means "append after the current highest number".
type CreateTestStepRequest struct {
	TestCaseID     uuid.UUID `json:"test_case_id" validate:"required"`
	StepNumber     int       `json:"step_number" validate:"gte=0"`
	Action         string    `json:"action" validate:"required"`
	ExpectedResult string    `json:"expected_result" validate:"required"`
}

// UpdateTestStepRequest represents the request to update a step
type UpdateTestStepRequest struct {
	Action         *string `json:"action,omitempty"`
	ExpectedResult *string `json:"expected_result,omitempty"`
	ActualResult   *string `json:"actual_result,omitempty"`
	Status         *string `json:"status,omitempty"`
	Screenshot     *string `json:"screenshot,omitempty" validate:"omitempty,max=255"`
}

// StepInput is one row of a bulk step save. A nil ID creates a new step,
// a set ID updates the existing one, and Delete marks it for removal.
type StepInput struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	StepNumber     int        `json:"step_number" validate:"gte=0"`
	Action         string     `json:"action"`
	ExpectedResult string     `json:"expected_result"`
	ActualResult   string     `json:"actual_result,omitempty"`
	Status         string     `json:"status,omitempty"`
	Screenshot     string     `json:"screenshot,omitempty"`
	Delete         bool       `json:"delete,omitempty"`
}

// SaveStepsRequest represents a bulk save of a test case's steps
type SaveStepsRequest struct {
	Steps []StepInput `json:"steps" validate:"required,dive"`
}

// MaxSurvivingStepNumber returns the highest step number among the existing
// steps that the batch does not mark for deletion. Renumbering starts after
// this value, so deleting the top step frees its number for the batch.
func MaxSurvivingStepNumber(existing []models.TestStep, inputs []StepInput) int {
	deleted := make(map[uuid.UUID]bool)
	for _, in := range inputs {
		if in.Delete && in.ID != nil {
			deleted[*in.ID] = true
		}
	}

	max := 0
	for _, step := range existing {
		if deleted[step.ID] {
			continue
		}
		if step.StepNumber > max {
			max = step.StepNumber
		}
	}
	return max
}

// AssignStepNumbers resolves the numbers for a bulk save. Deletions are
// applied first, then every input without an explicit number is given the
// next number after the highest surviving one. maxExisting is the highest
// number among the steps that survive the batch's deletions.
func AssignStepNumbers(inputs []StepInput, maxExisting int) []int {
	next := maxExisting
	for _, in := range inputs {
		if !in.Delete && in.StepNumber > next {
			next = in.StepNumber
		}
	}

	numbers := make([]int, len(inputs))
	for i, in := range inputs {
		if in.Delete {
			continue
		}
		if in.StepNumber > 0 {
			numbers[i] = in.StepNumber
			continue
		}
		next++
		numbers[i] = next
	}
	return numbers
}

// Create adds a single step to a test case. A zero step number appends the
// step after the current highest number.
func (s *TestStepService) Create(req *CreateTestStepRequest) (*models.TestStep, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.testCaseRepo.GetByID(req.TestCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("failed to verify test case: %w", err)
	}

	number := req.StepNumber
	if number == 0 {
		max, err := s.repo.MaxStepNumber(req.TestCaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get max step number: %w", err)
		}
		number = max + 1
	}

	step := &models.TestStep{
		TestCaseID:     req.TestCaseID,
		StepNumber:     number,
		Action:         req.Action,
		ExpectedResult: req.ExpectedResult,
		Status:         models.TestStepStatusNotExecuted,
	}

	if err := s.repo.Create(step); err != nil {
		return nil, fmt.Errorf("failed to create test step: %w", err)
	}
	return step, nil
}

// GetByID retrieves a test step by ID
func (s *TestStepService) GetByID(id uuid.UUID) (*models.TestStep, error) {
	step, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestStepNotFound
		}
		return nil, fmt.Errorf("failed to get test step: %w", err)
	}
	return step, nil
}

// Update edits a step's content or execution result. The step number is
// fixed after creation; reordering goes through SaveSteps.
func (s *TestStepService) Update(id uuid.UUID, req *UpdateTestStepRequest) (*models.TestStep, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	step, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestStepNotFound
		}
		return nil, fmt.Errorf("failed to get test step: %w", err)
	}

	if req.Action != nil {
		step.Action = *req.Action
	}
	if req.ExpectedResult != nil {
		step.ExpectedResult = *req.ExpectedResult
	}
	if req.ActualResult != nil {
		step.ActualResult = *req.ActualResult
	}
	if req.Status != nil {
		status := models.TestStepStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown test step status")
		}
		step.Status = status
	}
	if req.Screenshot != nil {
		step.Screenshot = *req.Screenshot
	}

	if err := s.repo.Update(step); err != nil {
		return nil, fmt.Errorf("failed to update test step: %w", err)
	}
	return step, nil
}

// Delete removes a test step. A later append takes the next number after
// the remaining steps.
func (s *TestStepService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestStepNotFound
		}
		return fmt.Errorf("failed to get test step: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete test step: %w", err)
	}
	return nil
}

// ListByTestCase retrieves the steps of a test case in execution order
func (s *TestStepService) ListByTestCase(testCaseID uuid.UUID) ([]models.TestStep, error) {
	if _, err := s.testCaseRepo.GetByID(testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("failed to verify test case: %w", err)
	}

	steps, err := s.repo.ListByTestCase(testCaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list test steps: %w", err)
	}
	return steps, nil
}

// SaveSteps applies a bulk edit of a test case's steps in one transaction.
// Rows marked for deletion are removed first, then remaining rows are
// created or updated with numbers resolved by AssignStepNumbers.
func (s *TestStepService) SaveSteps(testCaseID uuid.UUID, req *SaveStepsRequest) ([]models.TestStep, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.testCaseRepo.GetByID(testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("failed to verify test case: %w", err)
	}

	existing, err := s.repo.ListByTestCase(testCaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list test steps: %w", err)
	}
	numbers := AssignStepNumbers(req.Steps, MaxSurvivingStepNumber(existing, req.Steps))

	var deleteIDs []uuid.UUID
	var steps []*models.TestStep
	for i, in := range req.Steps {
		if in.Delete {
			if in.ID == nil {
				return nil, apperrors.NewValidationError("steps", "cannot delete a step without an id")
			}
			deleteIDs = append(deleteIDs, *in.ID)
			continue
		}
		if in.Action == "" || in.ExpectedResult == "" {
			return nil, apperrors.NewValidationError("steps", "action and expected result are required")
		}

		status := models.TestStepStatusNotExecuted
		if in.Status != "" {
			status = models.TestStepStatus(in.Status)
			if !status.IsValid() {
				return nil, apperrors.NewValidationError("steps", "unknown test step status")
			}
		}

		step := &models.TestStep{
			TestCaseID:     testCaseID,
			StepNumber:     numbers[i],
			Action:         in.Action,
			ExpectedResult: in.ExpectedResult,
			ActualResult:   in.ActualResult,
			Status:         status,
			Screenshot:     in.Screenshot,
		}
		if in.ID != nil {
			existing, err := s.repo.GetByID(*in.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrTestStepNotFound
				}
				return nil, fmt.Errorf("failed to get test step: %w", err)
			}
			if existing.TestCaseID != testCaseID {
				return nil, apperrors.NewValidationError("steps", "step belongs to a different test case")
			}
			step.TimestampedModel = existing.TimestampedModel
		}
		steps = append(steps, step)
	}

	if err := s.repo.SaveBatch(deleteIDs, steps); err != nil {
		return nil, fmt.Errorf("failed to save test steps: %w", err)
	}

	result, err := s.repo.ListByTestCase(testCaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload test steps: %w", err)
	}
	return result, nil
}
