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

// TestCategoryService handles business logic for test categories
type TestCategoryService struct {
	repo      *repository.TestCategoryRepository
	validator *validator.Validate
}

// NewTestCategoryService creates a new test category service
func NewTestCategoryService(repo *repository.TestCategoryRepository, validator *validator.Validate) *TestCategoryService {
	return &TestCategoryService{repo: repo, validator: validator}
}

// CreateTestCategoryRequest represents the request to create a test category
type CreateTestCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// UpdateTestCategoryRequest represents the request to update a test category
type UpdateTestCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// Create creates a test category with a unique name
func (s *TestCategoryService) Create(req *CreateTestCategoryRequest) (*models.TestCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, apperrors.ErrTestCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	category := &models.TestCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}
	return category, nil
}

// GetByID retrieves a test category by ID
func (s *TestCategoryService) GetByID(id uuid.UUID) (*models.TestCategory, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get test category: %w", err)
	}
	return category, nil
}

// Update updates a test category, keeping the name unique
func (s *TestCategoryService) Update(id uuid.UUID, req *UpdateTestCategoryRequest) (*models.TestCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get test category: %w", err)
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.repo.GetByName(*req.Name); err == nil && existing.ID != id {
			return nil, apperrors.ErrTestCategoryExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.repo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update test category: %w", err)
	}
	return category, nil
}

// Delete deletes a test category; referencing test cases keep running with
// a NULL category
func (s *TestCategoryService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestCategoryNotFound
		}
		return fmt.Errorf("failed to get test category: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete test category: %w", err)
	}
	return nil
}

// List retrieves all test categories ordered by name
func (s *TestCategoryService) List() ([]models.TestCategory, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list test categories: %w", err)
	}
	return categories, nil
}

// TestPriorityService handles business logic for test priorities
type TestPriorityService struct {
	repo      *repository.TestPriorityRepository
	validator *validator.Validate
}

// NewTestPriorityService creates a new test priority service
func NewTestPriorityService(repo *repository.TestPriorityRepository, validator *validator.Validate) *TestPriorityService {
	return &TestPriorityService{repo: repo, validator: validator}
}

// CreateTestPriorityRequest represents the request to create a test priority
type CreateTestPriorityRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description,omitempty" validate:"max=200"`
	Order       int    `json:"order" validate:"gte=0"`
}

// UpdateTestPriorityRequest represents the request to update a test priority
type UpdateTestPriorityRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	Order       *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// Create creates a test priority with a globally unique sort order
func (s *TestPriorityService) Create(req *CreateTestPriorityRequest) (*models.TestPriority, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByOrder(req.Order); err == nil {
		return nil, apperrors.ErrTestPriorityExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check order uniqueness: %w", err)
	}

	priority := &models.TestPriority{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.repo.Create(priority); err != nil {
		return nil, fmt.Errorf("failed to create test priority: %w", err)
	}
	return priority, nil
}

// GetByID retrieves a test priority by ID
func (s *TestPriorityService) GetByID(id uuid.UUID) (*models.TestPriority, error) {
	priority, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestPriorityNotFound
		}
		return nil, fmt.Errorf("failed to get test priority: %w", err)
	}
	return priority, nil
}

// Update updates a test priority, keeping sort orders unique
func (s *TestPriorityService) Update(id uuid.UUID, req *UpdateTestPriorityRequest) (*models.TestPriority, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	priority, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestPriorityNotFound
		}
		return nil, fmt.Errorf("failed to get test priority: %w", err)
	}

	if req.Order != nil && *req.Order != priority.Order {
		if existing, err := s.repo.GetByOrder(*req.Order); err == nil && existing.ID != id {
			return nil, apperrors.ErrTestPriorityExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check order uniqueness: %w", err)
		}
		priority.Order = *req.Order
	}
	if req.Name != nil {
		priority.Name = *req.Name
	}
	if req.Description != nil {
		priority.Description = *req.Description
	}

	if err := s.repo.Update(priority); err != nil {
		return nil, fmt.Errorf("failed to update test priority: %w", err)
	}
	return priority, nil
}

// Delete deletes a test priority; referencing test cases keep running with
// a NULL priority
func (s *TestPriorityService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestPriorityNotFound
		}
		return fmt.Errorf("failed to get test priority: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete test priority: %w", err)
	}
	return nil
}

// List retrieves all test priorities sorted by their display order
func (s *TestPriorityService) List() ([]models.TestPriority, error) {
	priorities, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list test priorities: %w", err)
	}
	return priorities, nil
}

// TestEnvironmentService handles business logic for test environments
type TestEnvironmentService struct {
	repo      *repository.TestEnvironmentRepository
	validator *validator.Validate
}

// NewTestEnvironmentService creates a new test environment service
func NewTestEnvironmentService(repo *repository.TestEnvironmentRepository, validator *validator.Validate) *TestEnvironmentService {
	return &TestEnvironmentService{repo: repo, validator: validator}
}

// CreateTestEnvironmentRequest represents the request to create a test environment
type CreateTestEnvironmentRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
	BaseURL     string `json:"base_url,omitempty" validate:"omitempty,url,max=255"`
}

// UpdateTestEnvironmentRequest represents the request to update a test environment
type UpdateTestEnvironmentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	BaseURL     *string `json:"base_url,omitempty" validate:"omitempty,url,max=255"`
}

// Create creates a test environment with a unique name
func (s *TestEnvironmentService) Create(req *CreateTestEnvironmentRequest) (*models.TestEnvironment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, apperrors.ErrTestEnvironmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	environment := &models.TestEnvironment{
		Name:        req.Name,
		Description: req.Description,
		BaseURL:     req.BaseURL,
	}
	if err := s.repo.Create(environment); err != nil {
		return nil, fmt.Errorf("failed to create test environment: %w", err)
	}
	return environment, nil
}

// GetByID retrieves a test environment by ID
func (s *TestEnvironmentService) GetByID(id uuid.UUID) (*models.TestEnvironment, error) {
	environment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestEnvironmentNotFound
		}
		return nil, fmt.Errorf("failed to get test environment: %w", err)
	}
	return environment, nil
}

// Update updates a test environment, keeping the name unique
func (s *TestEnvironmentService) Update(id uuid.UUID, req *UpdateTestEnvironmentRequest) (*models.TestEnvironment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	environment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestEnvironmentNotFound
		}
		return nil, fmt.Errorf("failed to get test environment: %w", err)
	}

	if req.Name != nil && *req.Name != environment.Name {
		if existing, err := s.repo.GetByName(*req.Name); err == nil && existing.ID != id {
			return nil, apperrors.ErrTestEnvironmentExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		environment.Name = *req.Name
	}
	if req.Description != nil {
		environment.Description = *req.Description
	}
	if req.BaseURL != nil {
		environment.BaseURL = *req.BaseURL
	}

	if err := s.repo.Update(environment); err != nil {
		return nil, fmt.Errorf("failed to update test environment: %w", err)
	}
	return environment, nil
}

// Delete deletes a test environment; referencing test cases keep running
// with a NULL environment
func (s *TestEnvironmentService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestEnvironmentNotFound
		}
		return fmt.Errorf("failed to get test environment: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete test environment: %w", err)
	}
	return nil
}

// List retrieves all test environments ordered by name
func (s *TestEnvironmentService) List() ([]models.TestEnvironment, error) {
	environments, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list test environments: %w", err)
	}
	return environments, nil
}
