package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestStepRepository handles database operations for test steps
type TestStepRepository struct {
	db *gorm.DB
}

// NewTestStepRepository creates a new test step repository
func NewTestStepRepository(db *gorm.DB) *TestStepRepository {
	return &TestStepRepository{db: db}
}

// Create creates a new test step
func (r *TestStepRepository) Create(step *models.TestStep) error {
	return r.db.Create(step).Error
}

// GetByID retrieves a test step by ID
func (r *TestStepRepository) GetByID(id uuid.UUID) (*models.TestStep, error) {
	var step models.TestStep
	err := r.db.First(&step, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// Update updates a test step
func (r *TestStepRepository) Update(step *models.TestStep) error {
	return r.db.Save(step).Error
}

// Delete deletes a test step
func (r *TestStepRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TestStep{}, "id = ?", id).Error
}

// ListByTestCase retrieves the steps of a test case ordered by step number
func (r *TestStepRepository) ListByTestCase(testCaseID uuid.UUID) ([]models.TestStep, error) {
	var steps []models.TestStep
	err := r.db.Where("test_case_id = ?", testCaseID).Order("step_number").Find(&steps).Error
	return steps, err
}

// CountByTestCase returns the number of steps in a test case
func (r *TestStepRepository) CountByTestCase(testCaseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestStep{}).Where("test_case_id = ?", testCaseID).Count(&count).Error
	return count, err
}

// MaxStepNumber returns the highest step number in a test case, 0 if none
func (r *TestStepRepository) MaxStepNumber(testCaseID uuid.UUID) (int, error) {
	var max int
	err := r.db.Model(&models.TestStep{}).
		Where("test_case_id = ?", testCaseID).
		Select("COALESCE(MAX(step_number), 0)").
		Scan(&max).Error
	return max, err
}

// SaveBatch applies step deletions and creations/updates in one transaction
func (r *TestStepRepository) SaveBatch(deleteIDs []uuid.UUID, steps []*models.TestStep) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(deleteIDs) > 0 {
			if err := tx.Delete(&models.TestStep{}, "id IN ?", deleteIDs).Error; err != nil {
				return err
			}
		}
		for _, step := range steps {
			if err := tx.Save(step).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
