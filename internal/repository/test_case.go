package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestCaseFilter narrows test case listings
type TestCaseFilter struct {
	Status           models.TestCaseStatus
	ProjectID        *uuid.UUID
	CategoryID       *uuid.UUID
	PriorityID       *uuid.UUID
	EnvironmentID    *uuid.UUID
	TestType         models.TestType
	AutomationStatus models.AutomationStatus
	AssignedToID     *uuid.UUID
	Search           string
}

// TestCaseRepository handles database operations for test cases and their
// dependency edges
type TestCaseRepository struct {
	db *gorm.DB
}

// NewTestCaseRepository creates a new test case repository
func NewTestCaseRepository(db *gorm.DB) *TestCaseRepository {
	return &TestCaseRepository{db: db}
}

// Create creates a new test case
func (r *TestCaseRepository) Create(testCase *models.TestCase) error {
	return r.db.Create(testCase).Error
}

// GetByID retrieves a test case by ID
func (r *TestCaseRepository) GetByID(id uuid.UUID) (*models.TestCase, error) {
	var testCase models.TestCase
	err := r.db.First(&testCase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &testCase, nil
}

// GetWithDetails retrieves a test case with project, lookups, assignment and
// ordered steps expanded
func (r *TestCaseRepository) GetWithDetails(id uuid.UUID) (*models.TestCase, error) {
	var testCase models.TestCase
	err := r.db.
		Preload("Project").
		Preload("Category").
		Preload("Priority").
		Preload("Environment").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_steps.step_number")
		}).
		Preload("Dependencies").
		First(&testCase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &testCase, nil
}

// Update updates a test case
func (r *TestCaseRepository) Update(testCase *models.TestCase) error {
	return r.db.Save(testCase).Error
}

// Delete deletes a test case and cascades to its steps
func (r *TestCaseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TestCase{}, "id = ?", id).Error
}

// List retrieves test cases matching the filter, newest first, with pagination.
// Search covers title, description and the owning project's name.
func (r *TestCaseRepository) List(filter TestCaseFilter, limit, offset int) ([]models.TestCase, int64, error) {
	var testCases []models.TestCase
	var total int64

	query := r.db.Model(&models.TestCase{}).
		Joins("JOIN projects ON test_cases.project_id = projects.id")

	if filter.Status != "" {
		query = query.Where("test_cases.status = ?", filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("test_cases.project_id = ?", *filter.ProjectID)
	}
	if filter.CategoryID != nil {
		query = query.Where("test_cases.category_id = ?", *filter.CategoryID)
	}
	if filter.PriorityID != nil {
		query = query.Where("test_cases.priority_id = ?", *filter.PriorityID)
	}
	if filter.EnvironmentID != nil {
		query = query.Where("test_cases.environment_id = ?", *filter.EnvironmentID)
	}
	if filter.TestType != "" {
		query = query.Where("test_cases.test_type = ?", filter.TestType)
	}
	if filter.AutomationStatus != "" {
		query = query.Where("test_cases.automation_status = ?", filter.AutomationStatus)
	}
	if filter.AssignedToID != nil {
		query = query.Where("test_cases.assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"test_cases.title ILIKE ? OR test_cases.description ILIKE ? OR projects.name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).
		Order("test_cases.created_at DESC").
		Find(&testCases).Error
	if err != nil {
		return nil, 0, err
	}

	return testCases, total, nil
}

// CountByCreatedBy returns how many test cases a user created
func (r *TestCaseRepository) CountByCreatedBy(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestCase{}).Where("created_by_id = ?", userID).Count(&count).Error
	return count, err
}

// AddDependency stores a directed dependency edge between two test cases.
// Cycles are accepted.
func (r *TestCaseRepository) AddDependency(testCaseID, dependsOnID uuid.UUID) error {
	edge := &models.TestCaseDependency{TestCaseID: testCaseID, DependsOnID: dependsOnID}
	return r.db.Create(edge).Error
}

// RemoveDependency removes a directed dependency edge
func (r *TestCaseRepository) RemoveDependency(testCaseID, dependsOnID uuid.UUID) error {
	return r.db.Delete(&models.TestCaseDependency{},
		"test_case_id = ? AND depends_on_id = ?", testCaseID, dependsOnID).Error
}
