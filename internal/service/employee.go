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

// EmployeeService handles business logic for employees
type EmployeeService struct {
	repo        *repository.EmployeeRepository
	userService *UserService
	taskRepo    *repository.TaskRepository
	validator   *validator.Validate
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo *repository.EmployeeRepository, userService *UserService, taskRepo *repository.TaskRepository, validator *validator.Validate) *EmployeeService {
	return &EmployeeService{
		repo:        repo,
		userService: userService,
		taskRepo:    taskRepo,
		validator:   validator,
	}
}

// CreateEmployeeRequest represents the request to create an employee together
// with its login identity
type CreateEmployeeRequest struct {
	User       CreateUserRequest `json:"user" validate:"required"`
	Position   string            `json:"position" validate:"required,max=100"`
	Department string            `json:"department" validate:"max=100"`
	Phone      string            `json:"phone" validate:"max=15"`
	Address    string            `json:"address"`
	Skills     string            `json:"skills"`
	HourlyRate *float64          `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
}

// UpdateEmployeeRequest represents the request to update an employee
type UpdateEmployeeRequest struct {
	Position   *string  `json:"position,omitempty" validate:"omitempty,max=100"`
	Department *string  `json:"department,omitempty" validate:"omitempty,max=100"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,max=15"`
	Address    *string  `json:"address,omitempty"`
	Skills     *string  `json:"skills,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

// EmployeeResponse represents the response for employee operations
type EmployeeResponse struct {
	ID         uuid.UUID     `json:"id"`
	User       *UserResponse `json:"user,omitempty"`
	Position   string        `json:"position"`
	Department string        `json:"department"`
	Phone      string        `json:"phone"`
	Address    string        `json:"address"`
	Skills     string        `json:"skills"`
	HourlyRate *float64      `json:"hourly_rate,omitempty"`
	IsActive   bool          `json:"is_active"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
}

// EmployeeListResponse represents a paginated list of employees
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// Create creates a new employee and its login identity
func (s *EmployeeService) Create(req *CreateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userService.Create(&req.User)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		UserID:     user.ID,
		Position:   req.Position,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
		IsActive:   true,
	}

	if err := s.repo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	resp := s.toResponse(employee)
	resp.User = user
	return resp, nil
}

// GetByID retrieves an employee with its user expanded
func (s *EmployeeService) GetByID(id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.repo.GetWithUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	resp := s.toResponse(employee)
	resp.User = s.userService.toResponse(&employee.User)
	return resp, nil
}

// Update updates an employee
func (s *EmployeeService) Update(id uuid.UUID, req *UpdateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	employee, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}
	if req.Skills != nil {
		employee.Skills = *req.Skills
	}
	if req.HourlyRate != nil {
		employee.HourlyRate = req.HourlyRate
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := s.repo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return s.toResponse(employee), nil
}

// Delete deletes an employee. Memberships, comments and time entries cascade;
// lead/manager/assignee references are nullified.
func (s *EmployeeService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// List retrieves employees matching the filter with pagination
func (s *EmployeeService) List(filter repository.EmployeeFilter, page, pageSize int) (*EmployeeListResponse, error) {
	limit, offset := NormalizePagination(page, pageSize)

	employees, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp := s.toResponse(&employees[i])
		resp.User = s.userService.toResponse(&employees[i].User)
		responses = append(responses, *resp)
	}

	return &EmployeeListResponse{
		Employees: responses,
		Total:     total,
		Page:      page,
		PageSize:  limit,
	}, nil
}

// Tasks retrieves the tasks assigned to an employee
func (s *EmployeeService) Tasks(id uuid.UUID) ([]models.Task, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return s.taskRepo.GetByAssignee(id)
}

func (s *EmployeeService) toResponse(employee *models.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:         employee.ID,
		Position:   employee.Position,
		Department: employee.Department,
		Phone:      employee.Phone,
		Address:    employee.Address,
		Skills:     employee.Skills,
		HourlyRate: employee.HourlyRate,
		IsActive:   employee.IsActive,
		CreatedAt:  employee.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  employee.UpdatedAt.Format(time.RFC3339),
	}
}
