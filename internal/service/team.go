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

// TeamService handles business logic for teams and memberships
type TeamService struct {
	repo         *repository.TeamRepository
	employeeRepo *repository.EmployeeRepository
	validator    *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo *repository.TeamRepository, employeeRepo *repository.EmployeeRepository, validator *validator.Validate) *TeamService {
	return &TeamService{
		repo:         repo,
		employeeRepo: employeeRepo,
		validator:    validator,
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description"`
	TeamLeadID  *uuid.UUID `json:"team_lead_id,omitempty"`
}

// UpdateTeamRequest represents the request to update a team
type UpdateTeamRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty"`
	TeamLeadID  *uuid.UUID `json:"team_lead_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// AddMemberRequest represents the request to add an employee to a team
type AddMemberRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Role       string    `json:"role" validate:"max=50"`
}

// MembershipResponse represents a membership in team detail responses
type MembershipResponse struct {
	ID         uuid.UUID         `json:"id"`
	Employee   *EmployeeResponse `json:"employee,omitempty"`
	Role       string            `json:"role"`
	JoinedDate string            `json:"joined_date"`
	LeftDate   *string           `json:"left_date,omitempty"`
}

// TeamResponse represents the response for team operations
type TeamResponse struct {
	ID                  uuid.UUID            `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	TeamLeadID          *uuid.UUID           `json:"team_lead_id,omitempty"`
	TeamLead            *EmployeeResponse    `json:"team_lead,omitempty"`
	IsActive            bool                 `json:"is_active"`
	MemberCount         int64                `json:"member_count"`
	ActiveProjectsCount int64                `json:"active_projects_count"`
	Members             []MembershipResponse `json:"members,omitempty"`
	CreatedAt           string               `json:"created_at"`
	UpdatedAt           string               `json:"updated_at"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams    []TeamResponse `json:"teams"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new team
func (s *TeamService) Create(req *CreateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.TeamLeadID != nil {
		if _, err := s.employeeRepo.GetByID(*req.TeamLeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to verify team lead: %w", err)
		}
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		TeamLeadID:  req.TeamLeadID,
		IsActive:    true,
	}

	if err := s.repo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.toResponse(team), nil
}

// GetByID retrieves a team with members, lead and rollup counts expanded
func (s *TeamService) GetByID(id uuid.UUID) (*TeamResponse, error) {
	team, err := s.repo.GetWithMembers(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	resp := s.toResponse(team)

	if team.TeamLead != nil {
		lead := &EmployeeResponse{
			ID:         team.TeamLead.ID,
			Position:   team.TeamLead.Position,
			Department: team.TeamLead.Department,
			IsActive:   team.TeamLead.IsActive,
		}
		if team.TeamLead.User.ID != uuid.Nil {
			lead.User = &UserResponse{
				ID:        team.TeamLead.User.ID,
				Username:  team.TeamLead.User.Username,
				FirstName: team.TeamLead.User.FirstName,
				LastName:  team.TeamLead.User.LastName,
			}
		}
		resp.TeamLead = lead
	}

	for i := range team.Memberships {
		m := &team.Memberships[i]
		member := MembershipResponse{
			ID:         m.ID,
			Role:       m.Role,
			JoinedDate: FormatDate(m.JoinedDate),
		}
		if m.LeftDate != nil {
			left := FormatDate(*m.LeftDate)
			member.LeftDate = &left
		}
		member.Employee = &EmployeeResponse{
			ID:         m.Employee.ID,
			Position:   m.Employee.Position,
			Department: m.Employee.Department,
			IsActive:   m.Employee.IsActive,
		}
		if m.Employee.User.ID != uuid.Nil {
			member.Employee.User = &UserResponse{
				ID:        m.Employee.User.ID,
				Username:  m.Employee.User.Username,
				FirstName: m.Employee.User.FirstName,
				LastName:  m.Employee.User.LastName,
			}
		}
		resp.Members = append(resp.Members, member)
	}

	if err := s.attachCounts(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Update updates a team
func (s *TeamService) Update(id uuid.UUID, req *UpdateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.TeamLeadID != nil {
		if _, err := s.employeeRepo.GetByID(*req.TeamLeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to verify team lead: %w", err)
		}
		team.TeamLeadID = req.TeamLeadID
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}

	if err := s.repo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return s.toResponse(team), nil
}

// Delete deletes a team; memberships and projects cascade
func (s *TeamService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// List retrieves teams matching the filter with rollup counts
func (s *TeamService) List(filter repository.TeamFilter, page, pageSize int) (*TeamListResponse, error) {
	limit, offset := NormalizePagination(page, pageSize)

	teams, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	responses := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		resp := s.toResponse(&teams[i])
		if err := s.attachCounts(resp); err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return &TeamListResponse{
		Teams:    responses,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// AddMember adds an employee to a team. Fails with NotFound if the employee
// does not exist and with AlreadyExists if a membership for the pair is
// already present.
func (s *TeamService) AddMember(teamID uuid.UUID, req *AddMemberRequest) (*models.TeamMembership, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to verify employee: %w", err)
	}

	existing, err := s.repo.GetMembership(teamID, req.EmployeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrMembershipExists
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	membership := &models.TeamMembership{
		TeamID:     teamID,
		EmployeeID: req.EmployeeID,
		Role:       role,
		JoinedDate: Today(time.Now()),
	}

	if err := s.repo.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return membership, nil
}

// Activate marks the given teams active
func (s *TeamService) Activate(ids []uuid.UUID) error {
	return s.repo.SetActive(ids, true)
}

// Deactivate marks the given teams inactive
func (s *TeamService) Deactivate(ids []uuid.UUID) error {
	return s.repo.SetActive(ids, false)
}

func (s *TeamService) attachCounts(resp *TeamResponse) error {
	memberCount, err := s.repo.MemberCount(resp.ID)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	activeProjects, err := s.repo.ActiveProjectsCount(resp.ID)
	if err != nil {
		return fmt.Errorf("failed to count active projects: %w", err)
	}
	resp.MemberCount = memberCount
	resp.ActiveProjectsCount = activeProjects
	return nil
}

func (s *TeamService) toResponse(team *models.Team) *TeamResponse {
	return &TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		TeamLeadID:  team.TeamLeadID,
		IsActive:    team.IsActive,
		CreatedAt:   team.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   team.UpdatedAt.Format(time.RFC3339),
	}
}
