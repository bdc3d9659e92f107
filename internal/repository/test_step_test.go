package repository

import (
	"testing"

	"pms-backend/internal/database/models"
	"pms-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TestStepRepositoryTestSuite tests the TestStepRepository
type TestStepRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TestStepRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TestStepRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTestStepRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TestStepRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TestStepRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TestStepRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TestStepRepositoryTestSuite) createTestCase() *models.TestCase {
	user := suite.factories.User.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)

	team := suite.factories.Team.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(team).Error)

	project := suite.factories.Project.WithTeam(team.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(project).Error)

	testCase := suite.factories.TestCase.Create(project.ID, user.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(testCase).Error)
	return testCase
}

// TestStepNumberUniquePerCase tests the unique constraint on (test_case_id, step_number)
func (suite *TestStepRepositoryTestSuite) TestStepNumberUniquePerCase() {
	testCase := suite.createTestCase()

	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 1)))

	err := suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 1))
	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestMaxStepNumber tests the max aggregate used for appending steps
func (suite *TestStepRepositoryTestSuite) TestMaxStepNumber() {
	testCase := suite.createTestCase()

	max, err := suite.repo.MaxStepNumber(testCase.ID)
	suite.NoError(err)
	suite.Equal(0, max)

	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 3)))
	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 7)))

	max, err = suite.repo.MaxStepNumber(testCase.ID)
	suite.NoError(err)
	suite.Equal(7, max)
}

// TestSaveBatch tests deletions and saves applied together
func (suite *TestStepRepositoryTestSuite) TestSaveBatch() {
	testCase := suite.createTestCase()

	step1 := suite.factories.TestStep.Create(testCase.ID, 1)
	step2 := suite.factories.TestStep.Create(testCase.ID, 2)
	suite.NoError(suite.repo.Create(step1))
	suite.NoError(suite.repo.Create(step2))

	step2.ActualResult = "observed"
	step2.Status = models.TestStepStatusPassed
	newStep := suite.factories.TestStep.Create(testCase.ID, 3)

	err := suite.repo.SaveBatch([]uuid.UUID{step1.ID}, []*models.TestStep{step2, newStep})
	suite.NoError(err)

	steps, err := suite.repo.ListByTestCase(testCase.ID)
	suite.NoError(err)
	suite.Len(steps, 2)
	suite.Equal(2, steps[0].StepNumber)
	suite.Equal(models.TestStepStatusPassed, steps[0].Status)
	suite.Equal(3, steps[1].StepNumber)
}

// TestListOrdered tests that steps come back in execution order
func (suite *TestStepRepositoryTestSuite) TestListOrdered() {
	testCase := suite.createTestCase()

	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 5)))
	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 2)))
	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 9)))

	steps, err := suite.repo.ListByTestCase(testCase.ID)
	suite.NoError(err)
	suite.Len(steps, 3)
	suite.Equal(2, steps[0].StepNumber)
	suite.Equal(5, steps[1].StepNumber)
	suite.Equal(9, steps[2].StepNumber)
}

// TestDeleteCaseCascadesSteps tests that steps go with their test case
func (suite *TestStepRepositoryTestSuite) TestDeleteCaseCascadesSteps() {
	testCase := suite.createTestCase()
	suite.NoError(suite.repo.Create(suite.factories.TestStep.Create(testCase.ID, 1)))

	suite.NoError(suite.baseTestSuite.DB.Delete(&models.TestCase{}, "id = ?", testCase.ID).Error)

	count, err := suite.repo.CountByTestCase(testCase.ID)
	suite.NoError(err)
	suite.Equal(int64(0), count)
}

// Run the test suite
func TestTestStepRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TestStepRepositoryTestSuite))
}
