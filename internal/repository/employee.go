package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	Position   string
	Department string
	IsActive   *bool
	Search     string
}

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByUserID retrieves the employee profile linked to a login identity
func (r *EmployeeRepository) GetByUserID(userID uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetWithUser retrieves an employee with the linked user expanded
func (r *EmployeeRepository) GetWithUser(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Preload("User").First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update updates an employee
func (r *EmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete deletes an employee. Memberships, comments and time entries cascade;
// team lead, project manager and task assignee references are set to NULL.
func (r *EmployeeRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Employee{}, "id = ?", id).Error
}

// List retrieves employees matching the filter with pagination.
// Search covers the linked user's name plus position and department.
func (r *EmployeeRepository) List(filter EmployeeFilter, limit, offset int) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := r.db.Model(&models.Employee{}).
		Joins("JOIN users ON employees.user_id = users.id")

	if filter.Position != "" {
		query = query.Where("employees.position = ?", filter.Position)
	}
	if filter.Department != "" {
		query = query.Where("employees.department = ?", filter.Department)
	}
	if filter.IsActive != nil {
		query = query.Where("employees.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"users.username ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ? OR employees.position ILIKE ? OR employees.department ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Limit(limit).Offset(offset).
		Order("users.first_name, users.last_name").
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}
