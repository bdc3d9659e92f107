package repository

import (
	"testing"
	"time"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createEmployee persists a user plus its employee profile
func (suite *TeamRepositoryTestSuite) createEmployee() *models.Employee {
	user := suite.factories.User.Create()
	err := suite.baseTestSuite.DB.Create(user).Error
	suite.NoError(err)

	employee := suite.factories.Employee.WithUser(user.ID)
	err = suite.baseTestSuite.DB.Create(employee).Error
	suite.NoError(err)
	return employee
}

// TestCreate tests creating a new team
func (suite *TeamRepositoryTestSuite) TestCreate() {
	team := suite.factories.Team.Create()

	err := suite.repo.Create(team)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, team.ID)
	suite.NotZero(team.CreatedAt)
	suite.NotZero(team.UpdatedAt)
}

// TestGetByIDNotFound tests retrieving a non-existent team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	team, err := suite.repo.GetByID(uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(team)
}

// TestMembershipUnique tests that an employee can only be linked to a team once
func (suite *TeamRepositoryTestSuite) TestMembershipUnique() {
	team := suite.factories.Team.Create()
	err := suite.repo.Create(team)
	suite.NoError(err)

	employee := suite.createEmployee()

	m1 := suite.factories.Membership.Create(team.ID, employee.ID)
	err = suite.repo.CreateMembership(m1)
	suite.NoError(err)

	m2 := suite.factories.Membership.Create(team.ID, employee.ID)
	err = suite.repo.CreateMembership(m2)
	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestMemberCountIncludesPastMembers tests that employees who left still count
func (suite *TeamRepositoryTestSuite) TestMemberCountIncludesPastMembers() {
	team := suite.factories.Team.Create()
	err := suite.repo.Create(team)
	suite.NoError(err)

	current := suite.createEmployee()
	former := suite.createEmployee()

	err = suite.repo.CreateMembership(suite.factories.Membership.Create(team.ID, current.ID))
	suite.NoError(err)

	left := time.Now().AddDate(0, -2, 0)
	membership := suite.factories.Membership.Create(team.ID, former.ID)
	membership.LeftDate = &left
	err = suite.repo.CreateMembership(membership)
	suite.NoError(err)

	count, err := suite.repo.MemberCount(team.ID)
	suite.NoError(err)
	suite.Equal(int64(2), count)
}

// TestDeleteCascadesMemberships tests that deleting a team removes its memberships
func (suite *TeamRepositoryTestSuite) TestDeleteCascadesMemberships() {
	team := suite.factories.Team.Create()
	err := suite.repo.Create(team)
	suite.NoError(err)

	employee := suite.createEmployee()
	err = suite.repo.CreateMembership(suite.factories.Membership.Create(team.ID, employee.ID))
	suite.NoError(err)

	err = suite.repo.Delete(team.ID)
	suite.NoError(err)

	var count int64
	err = suite.baseTestSuite.DB.Model(&models.TeamMembership{}).
		Where("team_id = ?", team.ID).Count(&count).Error
	suite.NoError(err)
	suite.Equal(int64(0), count)
}

// TestSetActive tests bulk activation and deactivation
func (suite *TeamRepositoryTestSuite) TestSetActive() {
	team1 := suite.factories.Team.WithName("alpha")
	team2 := suite.factories.Team.WithName("beta")
	suite.NoError(suite.repo.Create(team1))
	suite.NoError(suite.repo.Create(team2))

	err := suite.repo.SetActive([]uuid.UUID{team1.ID, team2.ID}, false)
	suite.NoError(err)

	got1, err := suite.repo.GetByID(team1.ID)
	suite.NoError(err)
	suite.False(got1.IsActive)

	got2, err := suite.repo.GetByID(team2.ID)
	suite.NoError(err)
	suite.False(got2.IsActive)
}

// TestActiveProjectsCount tests the active project aggregate
func (suite *TeamRepositoryTestSuite) TestActiveProjectsCount() {
	team := suite.factories.Team.Create()
	suite.NoError(suite.repo.Create(team))

	active := suite.factories.Project.WithTeam(team.ID)
	active.Status = models.ProjectStatusInProgress
	suite.NoError(suite.baseTestSuite.DB.Create(active).Error)

	done := suite.factories.Project.WithTeam(team.ID)
	done.Status = models.ProjectStatusCompleted
	suite.NoError(suite.baseTestSuite.DB.Create(done).Error)

	count, err := suite.repo.ActiveProjectsCount(team.ID)
	suite.NoError(err)
	suite.Equal(int64(1), count)
}

// Run the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
