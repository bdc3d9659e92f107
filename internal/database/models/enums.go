package models

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not_started"
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusPlanning, ProjectStatusInProgress,
		ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Priority represents the priority of a project or task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the Priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusPending, TaskStatusInProgress,
		TaskStatusInReview, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// TestCaseStatus represents the overall status of a test case
type TestCaseStatus string

const (
	TestCaseStatusDraft      TestCaseStatus = "draft"
	TestCaseStatusReady      TestCaseStatus = "ready"
	TestCaseStatusInProgress TestCaseStatus = "in_progress"
	TestCaseStatusPassed     TestCaseStatus = "passed"
	TestCaseStatusFailed     TestCaseStatus = "failed"
	TestCaseStatusBlocked    TestCaseStatus = "blocked"
	TestCaseStatusSkipped    TestCaseStatus = "skipped"
)

// IsValid checks if the TestCaseStatus is valid
func (s TestCaseStatus) IsValid() bool {
	switch s {
	case TestCaseStatusDraft, TestCaseStatusReady, TestCaseStatusInProgress,
		TestCaseStatusPassed, TestCaseStatusFailed, TestCaseStatusBlocked, TestCaseStatusSkipped:
		return true
	}
	return false
}

// TestType classifies what kind of verification a test case performs
type TestType string

const (
	TestTypeFunctional  TestType = "functional"
	TestTypeIntegration TestType = "integration"
	TestTypeRegression  TestType = "regression"
	TestTypeUsability   TestType = "usability"
	TestTypePerformance TestType = "performance"
	TestTypeSecurity    TestType = "security"
	TestTypeSmoke       TestType = "smoke"
	TestTypeSanity      TestType = "sanity"
)

// IsValid checks if the TestType is valid
func (t TestType) IsValid() bool {
	switch t {
	case TestTypeFunctional, TestTypeIntegration, TestTypeRegression, TestTypeUsability,
		TestTypePerformance, TestTypeSecurity, TestTypeSmoke, TestTypeSanity:
		return true
	}
	return false
}

// AutomationStatus tracks how far a test case has been automated
type AutomationStatus string

const (
	AutomationStatusNotAutomated AutomationStatus = "not_automated"
	AutomationStatusAutomated    AutomationStatus = "automated"
	AutomationStatusInProgress   AutomationStatus = "in_progress"
	AutomationStatusNeedsUpdate  AutomationStatus = "needs_update"
)

// IsValid checks if the AutomationStatus is valid
func (s AutomationStatus) IsValid() bool {
	switch s {
	case AutomationStatusNotAutomated, AutomationStatusAutomated,
		AutomationStatusInProgress, AutomationStatusNeedsUpdate:
		return true
	}
	return false
}

// TestStepStatus represents the execution status of a single test step
type TestStepStatus string

const (
	TestStepStatusNotExecuted TestStepStatus = "not_executed"
	TestStepStatusPassed      TestStepStatus = "passed"
	TestStepStatusFailed      TestStepStatus = "failed"
	TestStepStatusBlocked     TestStepStatus = "blocked"
	TestStepStatusSkipped     TestStepStatus = "skipped"
)

// IsValid checks if the TestStepStatus is valid
func (s TestStepStatus) IsValid() bool {
	switch s {
	case TestStepStatusNotExecuted, TestStepStatusPassed, TestStepStatusFailed,
		TestStepStatusBlocked, TestStepStatusSkipped:
		return true
	}
	return false
}
