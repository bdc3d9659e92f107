package repository

import (
	"testing"
	"time"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CommentRepositoryTestSuite tests the CommentRepository
type CommentRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *CommentRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *CommentRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewCommentRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *CommentRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *CommentRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *CommentRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createTask persists the chain a comment needs: employee, team, project, task
func (suite *CommentRepositoryTestSuite) createTask() (*models.Task, *models.Employee) {
	user := suite.factories.User.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)

	employee := suite.factories.Employee.WithUser(user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(employee).Error)

	team := suite.factories.Team.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(team).Error)

	project := suite.factories.Project.WithTeam(team.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(project).Error)

	task := suite.factories.Task.Create(project.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(task).Error)

	return task, employee
}

// createComment persists a comment on a task with a fixed creation time
func (suite *CommentRepositoryTestSuite) createComment(taskID, authorID uuid.UUID, content string, createdAt time.Time) *models.Comment {
	comment := &models.Comment{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	}
	suite.NoError(suite.baseTestSuite.DB.Create(comment).Error)
	return comment
}

// TestCreateAndGetByID tests creating and retrieving a comment
func (suite *CommentRepositoryTestSuite) TestCreateAndGetByID() {
	task, employee := suite.createTask()

	comment := &models.Comment{
		TimestampedModel: models.TimestampedModel{ID: uuid.New()},
		TaskID:           task.ID,
		AuthorID:         employee.ID,
		Content:          "looks good",
	}
	err := suite.repo.Create(comment)
	suite.NoError(err)

	got, err := suite.repo.GetByID(comment.ID)
	suite.NoError(err)
	suite.Equal("looks good", got.Content)
	suite.Equal(employee.ID, got.AuthorID)
}

// TestListByTaskNewestFirst tests the ordering of a task's comments
func (suite *CommentRepositoryTestSuite) TestListByTaskNewestFirst() {
	task, employee := suite.createTask()
	base := time.Now().Add(-time.Hour)

	suite.createComment(task.ID, employee.ID, "first", base)
	suite.createComment(task.ID, employee.ID, "second", base.Add(time.Minute))
	suite.createComment(task.ID, employee.ID, "third", base.Add(2*time.Minute))

	comments, total, err := suite.repo.ListByTask(task.ID, 20, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(comments, 3)
	suite.Equal("third", comments[0].Content)
	suite.Equal("first", comments[2].Content)
}

// TestListByTaskPagination tests limit/offset with the total unaffected
func (suite *CommentRepositoryTestSuite) TestListByTaskPagination() {
	task, employee := suite.createTask()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		suite.createComment(task.ID, employee.ID, "note", base.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := suite.repo.ListByTask(task.ID, 2, 2)

	suite.NoError(err)
	suite.Equal(int64(5), total)
	suite.Len(page, 2)
}

// TestListByTaskScopedToTask tests that other tasks' comments are excluded
func (suite *CommentRepositoryTestSuite) TestListByTaskScopedToTask() {
	task, employee := suite.createTask()
	otherTask, otherEmployee := suite.createTask()

	suite.createComment(task.ID, employee.ID, "mine", time.Now())
	suite.createComment(otherTask.ID, otherEmployee.ID, "theirs", time.Now())

	comments, total, err := suite.repo.ListByTask(task.ID, 20, 0)

	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(comments, 1)
	suite.Equal("mine", comments[0].Content)
}

// TestCommentRepositoryTestSuite runs the test suite
func TestCommentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CommentRepositoryTestSuite))
}
