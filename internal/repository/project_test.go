package repository

import (
	"testing"
	"time"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ProjectRepositoryTestSuite tests the ProjectRepository
type ProjectRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ProjectRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createProject persists a team and a project under it
func (suite *ProjectRepositoryTestSuite) createProject() *models.Project {
	team := suite.factories.Team.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(team).Error)

	project := suite.factories.Project.WithTeam(team.ID)
	suite.NoError(suite.repo.Create(project))
	return project
}

// createEmployee persists a user plus its employee profile
func (suite *ProjectRepositoryTestSuite) createEmployee() *models.Employee {
	user := suite.factories.User.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)

	employee := suite.factories.Employee.WithUser(user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(employee).Error)
	return employee
}

// TestCreate tests creating a new project
func (suite *ProjectRepositoryTestSuite) TestCreate() {
	project := suite.createProject()

	suite.NotEqual(uuid.Nil, project.ID)
	suite.NotZero(project.CreatedAt)
}

// TestTaskCounts tests the per-status task aggregates
func (suite *ProjectRepositoryTestSuite) TestTaskCounts() {
	project := suite.createProject()

	pending := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(pending).Error)

	completed := suite.factories.Task.WithStatus(project.ID, models.TaskStatusCompleted)
	suite.NoError(suite.baseTestSuite.DB.Create(completed).Error)

	total, err := suite.repo.CountTasks(project.ID)
	suite.NoError(err)
	suite.Equal(int64(2), total)

	done, err := suite.repo.CountTasksByStatus(project.ID, models.TaskStatusCompleted)
	suite.NoError(err)
	suite.Equal(int64(1), done)
}

// TestCountOverdueTasks tests that only open tasks past their due date count
func (suite *ProjectRepositoryTestSuite) TestCountOverdueTasks() {
	project := suite.createProject()
	yesterday := time.Now().AddDate(0, 0, -1)

	overdue := suite.factories.Task.Create(project.ID)
	overdue.DueDate = yesterday
	suite.NoError(suite.baseTestSuite.DB.Create(overdue).Error)

	// Completed tasks are never overdue
	finished := suite.factories.Task.WithStatus(project.ID, models.TaskStatusCompleted)
	finished.DueDate = yesterday
	suite.NoError(suite.baseTestSuite.DB.Create(finished).Error)

	// Future tasks are not overdue
	future := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(future).Error)

	count, err := suite.repo.CountOverdueTasks(project.ID, time.Now())
	suite.NoError(err)
	suite.Equal(int64(1), count)
}

// TestSumLoggedHours tests summing time entries across the project's tasks
func (suite *ProjectRepositoryTestSuite) TestSumLoggedHours() {
	project := suite.createProject()
	employee := suite.createEmployee()

	task := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(task).Error)

	e1 := suite.factories.TimeEntry.Create(task.ID, employee.ID)
	e1.HoursSpent = 3
	suite.NoError(suite.baseTestSuite.DB.Create(e1).Error)

	e2 := suite.factories.TimeEntry.Create(task.ID, employee.ID)
	e2.HoursSpent = 1.5
	e2.Date = time.Now().AddDate(0, 0, -2)
	suite.NoError(suite.baseTestSuite.DB.Create(e2).Error)

	total, err := suite.repo.SumLoggedHours(project.ID)
	suite.NoError(err)
	suite.InDelta(4.5, total, 0.001)
}

// TestSumLoggedHoursEmpty tests that a project without entries sums to zero
func (suite *ProjectRepositoryTestSuite) TestSumLoggedHoursEmpty() {
	project := suite.createProject()

	total, err := suite.repo.SumLoggedHours(project.ID)
	suite.NoError(err)
	suite.Zero(total)
}

// TestSetArchived tests bulk archiving without touching tasks
func (suite *ProjectRepositoryTestSuite) TestSetArchived() {
	project := suite.createProject()

	task := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(task).Error)

	err := suite.repo.SetArchived([]uuid.UUID{project.ID}, true)
	suite.NoError(err)

	got, err := suite.repo.GetByID(project.ID)
	suite.NoError(err)
	suite.True(got.IsArchived)

	// Task status is untouched
	var kept models.Task
	suite.NoError(suite.baseTestSuite.DB.First(&kept, "id = ?", task.ID).Error)
	suite.Equal(models.TaskStatusPending, kept.Status)
}

// TestDeleteCascadesTasks tests that deleting a project removes its tasks
func (suite *ProjectRepositoryTestSuite) TestDeleteCascadesTasks() {
	project := suite.createProject()

	task := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(task).Error)

	err := suite.repo.Delete(project.ID)
	suite.NoError(err)

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.Task{}).
		Where("project_id = ?", project.ID).Count(&count).Error)
	suite.Equal(int64(0), count)
}

// Run the test suite
func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
