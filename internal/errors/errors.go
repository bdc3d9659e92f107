package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in team"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a violated data invariant. It is always raised
// before persistence so a failed write is never partially applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ProtectedReferenceError represents a deletion blocked because a dependent
// record still references the entity (e.g. a user referenced as the creator
// of a test case).
type ProtectedReferenceError struct {
	Entity       string
	ReferencedBy string
}

func (e *ProtectedReferenceError) Error() string {
	return fmt.Sprintf("%s cannot be deleted: still referenced by %s", e.Entity, e.ReferencedBy)
}

// Is enables errors.Is() comparison for ProtectedReferenceError
func (e *ProtectedReferenceError) Is(target error) bool {
	t, ok := target.(*ProtectedReferenceError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound            = &NotFoundError{Entity: "user"}
	ErrEmployeeNotFound        = &NotFoundError{Entity: "employee"}
	ErrTeamNotFound            = &NotFoundError{Entity: "team"}
	ErrMembershipNotFound      = &NotFoundError{Entity: "team membership"}
	ErrProjectNotFound         = &NotFoundError{Entity: "project"}
	ErrTaskNotFound            = &NotFoundError{Entity: "task"}
	ErrCommentNotFound         = &NotFoundError{Entity: "comment"}
	ErrTimeEntryNotFound       = &NotFoundError{Entity: "time entry"}
	ErrTestCategoryNotFound    = &NotFoundError{Entity: "test category"}
	ErrTestPriorityNotFound    = &NotFoundError{Entity: "test priority"}
	ErrTestEnvironmentNotFound = &NotFoundError{Entity: "test environment"}
	ErrTestCaseNotFound        = &NotFoundError{Entity: "test case"}
	ErrTestStepNotFound        = &NotFoundError{Entity: "test step"}
)

// Already Exists Errors
var (
	ErrUserExists            = &AlreadyExistsError{Entity: "user", Context: "with this username"}
	ErrEmployeeExists        = &AlreadyExistsError{Entity: "employee", Context: "for this user"}
	ErrMembershipExists      = &AlreadyExistsError{Entity: "team membership", Context: "for this team and employee"}
	ErrTestCategoryExists    = &AlreadyExistsError{Entity: "test category", Context: "with this name"}
	ErrTestPriorityExists    = &AlreadyExistsError{Entity: "test priority", Context: "with this order"}
	ErrTestEnvironmentExists = &AlreadyExistsError{Entity: "test environment", Context: "with this name"}
	ErrTestStepExists        = &AlreadyExistsError{Entity: "test step", Context: "with this step number"}
)

// Protected Reference Errors
var (
	ErrUserCreatedTestCases = &ProtectedReferenceError{Entity: "user", ReferencedBy: "test cases"}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrEndDateBeforeStart      = errors.New("end date cannot be before start date")
	ErrDueDateBeforeStart      = errors.New("task due date cannot be before project start date")
	ErrDueDateAfterEnd         = errors.New("task due date cannot be after project end date")
	ErrCompletionOutOfBounds   = errors.New("completion percentage must be between 0 and 100")
	ErrNonPositiveHours        = errors.New("hours spent must be greater than 0")
	ErrFutureTimeEntry         = errors.New("cannot log time for future dates")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "invalid username or password"}
	ErrInactiveUser        = &AuthenticationError{Message: "user account is inactive"}
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	ErrPrincipalMissing    = &AuthenticationError{Message: "acting user not found in context"}
	ErrNotEntryOwner       = &AuthorizationError{Message: "time entries of other employees are not visible"}
	ErrNotCommentAuthor    = &AuthorizationError{Message: "only the comment author may modify it"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsProtectedReference checks if an error is a ProtectedReferenceError
func IsProtectedReference(err error) bool {
	var protectedErr *ProtectedReferenceError
	return errors.As(err, &protectedErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewProtectedReferenceError creates a new ProtectedReferenceError
func NewProtectedReferenceError(entity, referencedBy string) error {
	return &ProtectedReferenceError{Entity: entity, ReferencedBy: referencedBy}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
