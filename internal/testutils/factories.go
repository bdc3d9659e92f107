package testutils

import (
	"time"

	"pms-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	// Username derived from the UUID to avoid unique index collisions
	username := "user-" + id.String()[:8]
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	return &models.User{
		TimestampedModel: models.TimestampedModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     username,
		Email:        username + "@test.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
		IsSuperuser:  false,
		IsActive:     true,
	}
}

// WithUsername sets a custom username for the user
func (f *UserFactory) WithUsername(username string) *models.User {
	user := f.Create()
	user.Username = username
	user.Email = username + "@test.com"
	return user
}

// WithSuperuser marks the user as a superuser
func (f *UserFactory) WithSuperuser() *models.User {
	user := f.Create()
	user.IsSuperuser = true
	return user
}

// WithPassword sets a bcrypt hash for the given plaintext password
func (f *UserFactory) WithPassword(password string) *models.User {
	user := f.Create()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user.PasswordHash = string(hash)
	return user
}

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates a test Employee with default values
func (f *EmployeeFactory) Create() *models.Employee {
	return &models.Employee{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:     uuid.New(),
		Position:   "Developer",
		Department: "Engineering",
		Phone:      "+1-555-0123",
		IsActive:   true,
	}
}

// WithUser sets the user ID for the employee
func (f *EmployeeFactory) WithUser(userID uuid.UUID) *models.Employee {
	employee := f.Create()
	employee.UserID = userID
	return employee
}

// WithPosition sets a custom position for the employee
func (f *EmployeeFactory) WithPosition(position string) *models.Employee {
	employee := f.Create()
	employee.Position = position
	return employee
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Team",
		Description: "A test team",
		IsActive:    true,
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// WithLead sets the team lead for the team
func (f *TeamFactory) WithLead(employeeID uuid.UUID) *models.Team {
	team := f.Create()
	team.TeamLeadID = &employeeID
	return team
}

// MembershipFactory provides methods to create test TeamMembership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a membership linking the given employee to the given team
func (f *MembershipFactory) Create(teamID, employeeID uuid.UUID) *models.TeamMembership {
	return &models.TeamMembership{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TeamID:     teamID,
		EmployeeID: employeeID,
		Role:       "member",
		JoinedDate: time.Now().AddDate(0, -1, 0),
	}
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	end := time.Now().AddDate(0, 6, 0)
	return &models.Project{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Project",
		Description: "A test project",
		StartDate:   time.Now().AddDate(0, -1, 0),
		EndDate:     &end,
		Status:      models.ProjectStatusInProgress,
		Priority:    models.PriorityMedium,
		TeamID:      uuid.New(),
	}
}

// WithTeam sets the team ID for the project
func (f *ProjectFactory) WithTeam(teamID uuid.UUID) *models.Project {
	project := f.Create()
	project.TeamID = teamID
	return project
}

// WithName sets a custom name for the project
func (f *ProjectFactory) WithName(name string) *models.Project {
	project := f.Create()
	project.Name = name
	return project
}

// WithStatus sets a custom status for the project
func (f *ProjectFactory) WithStatus(status models.ProjectStatus) *models.Project {
	project := f.Create()
	project.Status = status
	return project
}

// WithDates sets the project window
func (f *ProjectFactory) WithDates(start time.Time, end *time.Time) *models.Project {
	project := f.Create()
	project.StartDate = start
	project.EndDate = end
	return project
}

// WithBudget sets the project budget
func (f *ProjectFactory) WithBudget(budget float64) *models.Project {
	project := f.Create()
	project.Budget = &budget
	return project
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task under the given project
func (f *TaskFactory) Create(projectID uuid.UUID) *models.Task {
	return &models.Task{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		Title:       "Test Task",
		Description: "A test task",
		DueDate:     time.Now().AddDate(0, 1, 0),
		Status:      models.TaskStatusPending,
		Priority:    models.PriorityMedium,
	}
}

// WithAssignee sets the assigned employee for the task
func (f *TaskFactory) WithAssignee(projectID, employeeID uuid.UUID) *models.Task {
	task := f.Create(projectID)
	task.AssignedToID = &employeeID
	return task
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(projectID uuid.UUID, status models.TaskStatus) *models.Task {
	task := f.Create(projectID)
	task.Status = status
	return task
}

// TimeEntryFactory provides methods to create test TimeEntry data
type TimeEntryFactory struct{}

// NewTimeEntryFactory creates a new TimeEntryFactory
func NewTimeEntryFactory() *TimeEntryFactory {
	return &TimeEntryFactory{}
}

// Create creates a time entry for the given task and employee
func (f *TimeEntryFactory) Create(taskID, employeeID uuid.UUID) *models.TimeEntry {
	return &models.TimeEntry{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TaskID:      taskID,
		EmployeeID:  employeeID,
		Date:        time.Now().AddDate(0, 0, -1),
		HoursSpent:  2.5,
		Description: "Test work",
	}
}

// TestCaseFactory provides methods to create test TestCase data
type TestCaseFactory struct{}

// NewTestCaseFactory creates a new TestCaseFactory
func NewTestCaseFactory() *TestCaseFactory {
	return &TestCaseFactory{}
}

// Create creates a test case under the given project created by the given user
func (f *TestCaseFactory) Create(projectID, createdByID uuid.UUID) *models.TestCase {
	return &models.TestCase{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:        projectID,
		Title:            "Test Case",
		Description:      "A test case",
		TestType:         models.TestTypeFunctional,
		AutomationStatus: models.AutomationStatusNotAutomated,
		Status:           models.TestCaseStatusDraft,
		CreatedByID:      createdByID,
	}
}

// TestStepFactory provides methods to create test TestStep data
type TestStepFactory struct{}

// NewTestStepFactory creates a new TestStepFactory
func NewTestStepFactory() *TestStepFactory {
	return &TestStepFactory{}
}

// Create creates a step for the given test case with the given number
func (f *TestStepFactory) Create(testCaseID uuid.UUID, number int) *models.TestStep {
	return &models.TestStep{
		TimestampedModel: models.TimestampedModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TestCaseID:     testCaseID,
		StepNumber:     number,
		Action:         "Do something",
		ExpectedResult: "Something happens",
		Status:         models.TestStepStatusNotExecuted,
	}
}

// WithStatus sets the execution status of the step
func (f *TestStepFactory) WithStatus(testCaseID uuid.UUID, number int, status models.TestStepStatus) *models.TestStep {
	step := f.Create(testCaseID, number)
	step.Status = status
	return step
}

// FactorySet provides access to all factories
type FactorySet struct {
	User       *UserFactory
	Employee   *EmployeeFactory
	Team       *TeamFactory
	Membership *MembershipFactory
	Project    *ProjectFactory
	Task       *TaskFactory
	TimeEntry  *TimeEntryFactory
	TestCase   *TestCaseFactory
	TestStep   *TestStepFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Employee:   NewEmployeeFactory(),
		Team:       NewTeamFactory(),
		Membership: NewMembershipFactory(),
		Project:    NewProjectFactory(),
		Task:       NewTaskFactory(),
		TimeEntry:  NewTimeEntryFactory(),
		TestCase:   NewTestCaseFactory(),
		TestStep:   NewTestStepFactory(),
	}
}
