package repository

import (
	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamFilter narrows team listings
type TeamFilter struct {
	IsActive *bool
	Search   string
}

// TeamRepository handles database operations for teams and memberships
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetWithMembers retrieves a team with its lead and all memberships expanded
func (r *TeamRepository) GetWithMembers(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.
		Preload("TeamLead").
		Preload("TeamLead.User").
		Preload("Memberships").
		Preload("Memberships.Employee").
		Preload("Memberships.Employee.User").
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team
func (r *TeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team and cascades to memberships and projects
func (r *TeamRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Team{}, "id = ?", id).Error
}

// List retrieves teams matching the filter with pagination
func (r *TeamRepository) List(filter TeamFilter, limit, offset int) ([]models.Team, int64, error) {
	var teams []models.Team
	var total int64

	query := r.db.Model(&models.Team{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("name").Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// SetActive sets the active flag on the given teams
func (r *TeamRepository) SetActive(ids []uuid.UUID, active bool) error {
	return r.db.Model(&models.Team{}).Where("id IN ?", ids).Update("is_active", active).Error
}

// CreateMembership creates a team membership row
func (r *TeamRepository) CreateMembership(membership *models.TeamMembership) error {
	return r.db.Create(membership).Error
}

// GetMembership retrieves the membership linking a team and an employee
func (r *TeamRepository) GetMembership(teamID, employeeID uuid.UUID) (*models.TeamMembership, error) {
	var membership models.TeamMembership
	err := r.db.First(&membership, "team_id = ? AND employee_id = ?", teamID, employeeID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// MemberCount returns the number of employees ever linked to a team.
// Memberships with a past left_date are deliberately included.
func (r *TeamRepository) MemberCount(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMembership{}).
		Where("team_id = ?", teamID).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}

// ActiveProjectsCount returns the number of distinct projects under the team
// whose status is not_started or in_progress
func (r *TeamRepository) ActiveProjectsCount(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("team_id = ? AND status IN ?", teamID,
			[]models.ProjectStatus{models.ProjectStatusNotStarted, models.ProjectStatusInProgress}).
		Count(&count).Error
	return count, err
}
