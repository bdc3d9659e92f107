package repository

import (
	"testing"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TaskRepositoryTestSuite tests the TaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TaskRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TaskRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTaskRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TaskRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TaskRepositoryTestSuite) createTask() *models.Task {
	team := suite.factories.Team.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(team).Error)

	project := suite.factories.Project.WithTeam(team.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(project).Error)

	task := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.repo.Create(task))
	return task
}

// TestMarkCompleted tests that bulk completion forces 100 percent
func (suite *TaskRepositoryTestSuite) TestMarkCompleted() {
	task := suite.createTask()
	task.CompletionPercentage = 40
	suite.NoError(suite.repo.Update(task))

	err := suite.repo.MarkCompleted([]uuid.UUID{task.ID})
	suite.NoError(err)

	got, err := suite.repo.GetByID(task.ID)
	suite.NoError(err)
	suite.Equal(models.TaskStatusCompleted, got.Status)
	suite.Equal(100, got.CompletionPercentage)
}

// TestMarkInProgressKeepsPercentage tests that moving back to in_progress
// leaves the completion percentage alone
func (suite *TaskRepositoryTestSuite) TestMarkInProgressKeepsPercentage() {
	task := suite.createTask()
	task.CompletionPercentage = 60
	suite.NoError(suite.repo.Update(task))

	err := suite.repo.MarkInProgress([]uuid.UUID{task.ID})
	suite.NoError(err)

	got, err := suite.repo.GetByID(task.ID)
	suite.NoError(err)
	suite.Equal(models.TaskStatusInProgress, got.Status)
	suite.Equal(60, got.CompletionPercentage)
}

// TestAddDependencyDuplicate tests that the same edge cannot be stored twice
func (suite *TaskRepositoryTestSuite) TestAddDependencyDuplicate() {
	task := suite.createTask()
	other := suite.factories.Task.Create(task.ProjectID)
	suite.NoError(suite.repo.Create(other))

	suite.NoError(suite.repo.AddDependency(task.ID, other.ID))

	err := suite.repo.AddDependency(task.ID, other.ID)
	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestDependencyCycleAccepted tests that mutual dependencies are stored as-is
func (suite *TaskRepositoryTestSuite) TestDependencyCycleAccepted() {
	task := suite.createTask()
	other := suite.factories.Task.Create(task.ProjectID)
	suite.NoError(suite.repo.Create(other))

	suite.NoError(suite.repo.AddDependency(task.ID, other.ID))
	suite.NoError(suite.repo.AddDependency(other.ID, task.ID))

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.TaskDependency{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

// TestRemoveDependency tests removing an edge
func (suite *TaskRepositoryTestSuite) TestRemoveDependency() {
	task := suite.createTask()
	other := suite.factories.Task.Create(task.ProjectID)
	suite.NoError(suite.repo.Create(other))

	suite.NoError(suite.repo.AddDependency(task.ID, other.ID))
	suite.NoError(suite.repo.RemoveDependency(task.ID, other.ID))

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.TaskDependency{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

// TestSumLoggedHours tests the per-task time aggregate
func (suite *TaskRepositoryTestSuite) TestSumLoggedHours() {
	task := suite.createTask()

	user := suite.factories.User.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)
	employee := suite.factories.Employee.WithUser(user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(employee).Error)

	entry := suite.factories.TimeEntry.Create(task.ID, employee.ID)
	entry.HoursSpent = 2.5
	suite.NoError(suite.baseTestSuite.DB.Create(entry).Error)

	total, err := suite.repo.SumLoggedHours(task.ID)
	suite.NoError(err)
	suite.InDelta(2.5, total, 0.001)
}

// TestDeleteCascades tests that deleting a task removes comments and time entries
func (suite *TaskRepositoryTestSuite) TestDeleteCascades() {
	task := suite.createTask()

	user := suite.factories.User.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)
	employee := suite.factories.Employee.WithUser(user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(employee).Error)

	comment := &models.Comment{TaskID: task.ID, AuthorID: employee.ID, Content: "note"}
	suite.NoError(suite.baseTestSuite.DB.Create(comment).Error)

	entry := suite.factories.TimeEntry.Create(task.ID, employee.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(entry).Error)

	suite.NoError(suite.repo.Delete(task.ID))

	var comments, entries int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.Comment{}).
		Where("task_id = ?", task.ID).Count(&comments).Error)
	suite.NoError(suite.baseTestSuite.DB.Model(&models.TimeEntry{}).
		Where("task_id = ?", task.ID).Count(&entries).Error)
	suite.Equal(int64(0), comments)
	suite.Equal(int64(0), entries)
}

// Run the test suite
func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
