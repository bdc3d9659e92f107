package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestCategoryRepository handles database operations for test categories
type TestCategoryRepository struct {
	db *gorm.DB
}

// NewTestCategoryRepository creates a new test category repository
func NewTestCategoryRepository(db *gorm.DB) *TestCategoryRepository {
	return &TestCategoryRepository{db: db}
}

// Create creates a new test category
func (r *TestCategoryRepository) Create(category *models.TestCategory) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a test category by ID
func (r *TestCategoryRepository) GetByID(id uuid.UUID) (*models.TestCategory, error) {
	var category models.TestCategory
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName retrieves a test category by name
func (r *TestCategoryRepository) GetByName(name string) (*models.TestCategory, error) {
	var category models.TestCategory
	err := r.db.First(&category, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update updates a test category
func (r *TestCategoryRepository) Update(category *models.TestCategory) error {
	return r.db.Save(category).Error
}

// Delete deletes a test category; referencing test cases fall back to NULL
func (r *TestCategoryRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TestCategory{}, "id = ?", id).Error
}

// List retrieves all test categories ordered by name
func (r *TestCategoryRepository) List() ([]models.TestCategory, error) {
	var categories []models.TestCategory
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// TestPriorityRepository handles database operations for test priorities
type TestPriorityRepository struct {
	db *gorm.DB
}

// NewTestPriorityRepository creates a new test priority repository
func NewTestPriorityRepository(db *gorm.DB) *TestPriorityRepository {
	return &TestPriorityRepository{db: db}
}

// Create creates a new test priority
func (r *TestPriorityRepository) Create(priority *models.TestPriority) error {
	return r.db.Create(priority).Error
}

// GetByID retrieves a test priority by ID
func (r *TestPriorityRepository) GetByID(id uuid.UUID) (*models.TestPriority, error) {
	var priority models.TestPriority
	err := r.db.First(&priority, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

// GetByOrder retrieves a test priority by its unique sort order
func (r *TestPriorityRepository) GetByOrder(order int) (*models.TestPriority, error) {
	var priority models.TestPriority
	err := r.db.First(&priority, "sort_order = ?", order).Error
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

// Update updates a test priority
func (r *TestPriorityRepository) Update(priority *models.TestPriority) error {
	return r.db.Save(priority).Error
}

// Delete deletes a test priority; referencing test cases fall back to NULL
func (r *TestPriorityRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TestPriority{}, "id = ?", id).Error
}

// List retrieves all test priorities sorted by their display order
func (r *TestPriorityRepository) List() ([]models.TestPriority, error) {
	var priorities []models.TestPriority
	err := r.db.Order("sort_order").Find(&priorities).Error
	return priorities, err
}

// TestEnvironmentRepository handles database operations for test environments
type TestEnvironmentRepository struct {
	db *gorm.DB
}

// NewTestEnvironmentRepository creates a new test environment repository
func NewTestEnvironmentRepository(db *gorm.DB) *TestEnvironmentRepository {
	return &TestEnvironmentRepository{db: db}
}

// Create creates a new test environment
func (r *TestEnvironmentRepository) Create(environment *models.TestEnvironment) error {
	return r.db.Create(environment).Error
}

// GetByID retrieves a test environment by ID
func (r *TestEnvironmentRepository) GetByID(id uuid.UUID) (*models.TestEnvironment, error) {
	var environment models.TestEnvironment
	err := r.db.First(&environment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &environment, nil
}

// GetByName retrieves a test environment by name
func (r *TestEnvironmentRepository) GetByName(name string) (*models.TestEnvironment, error) {
	var environment models.TestEnvironment
	err := r.db.First(&environment, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &environment, nil
}

// Update updates a test environment
func (r *TestEnvironmentRepository) Update(environment *models.TestEnvironment) error {
	return r.db.Save(environment).Error
}

// Delete deletes a test environment; referencing test cases fall back to NULL
func (r *TestEnvironmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TestEnvironment{}, "id = ?", id).Error
}

// List retrieves all test environments ordered by name
func (r *TestEnvironmentRepository) List() ([]models.TestEnvironment, error) {
	var environments []models.TestEnvironment
	err := r.db.Order("name").Find(&environments).Error
	return environments, err
}
