package repository

import (
	"testing"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateAndGetByUsername tests the username lookup used by login
func (suite *UserRepositoryTestSuite) TestCreateAndGetByUsername() {
	user := suite.factories.User.WithUsername("alice")
	suite.NoError(suite.repo.Create(user))

	got, err := suite.repo.GetByUsername("alice")
	suite.NoError(err)
	suite.Equal(user.ID, got.ID)
}

// TestUsernameUnique tests the unique constraint on username
func (suite *UserRepositoryTestSuite) TestUsernameUnique() {
	first := suite.factories.User.WithUsername("bob")
	suite.NoError(suite.repo.Create(first))

	second := suite.factories.User.WithUsername("bob")
	err := suite.repo.Create(second)
	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestDeleteBlockedByTestCases tests that a test case creator cannot be deleted
func (suite *UserRepositoryTestSuite) TestDeleteBlockedByTestCases() {
	user := suite.factories.User.Create()
	suite.NoError(suite.repo.Create(user))

	team := suite.factories.Team.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(team).Error)
	project := suite.factories.Project.WithTeam(team.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(project).Error)

	testCase := suite.factories.TestCase.Create(project.ID, user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(testCase).Error)

	count, err := suite.repo.CountCreatedTestCases(user.ID)
	suite.NoError(err)
	suite.Equal(int64(1), count)

	err = suite.repo.Delete(user.ID)
	suite.Error(err)
}

// TestDeleteCascadesEmployee tests that deleting a user removes its employee profile
func (suite *UserRepositoryTestSuite) TestDeleteCascadesEmployee() {
	user := suite.factories.User.Create()
	suite.NoError(suite.repo.Create(user))

	employee := suite.factories.Employee.WithUser(user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(employee).Error)

	suite.NoError(suite.repo.Delete(user.ID))

	var gone models.Employee
	err := suite.baseTestSuite.DB.First(&gone, "id = ?", employee.ID).Error
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// Run the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
