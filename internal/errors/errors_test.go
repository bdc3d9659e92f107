package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "project"}
		assert.Equal(t, "project not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "project"}
		err2 := &NotFoundError{Entity: "project"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "project"}
		err2 := &NotFoundError{Entity: "task"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrTeamNotFound, ErrTeamNotFound))
		assert.False(t, errors.Is(ErrTeamNotFound, ErrProjectNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrTaskNotFound))
		assert.True(t, IsNotFound(ErrTestCaseNotFound))
		assert.False(t, IsNotFound(ErrUserExists))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "test priority", Context: "with this order"}
		assert.Equal(t, "test priority already exists with this order", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "test category"}
		assert.Equal(t, "test category already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err1 := &AlreadyExistsError{Entity: "user", Context: "with this username"}
		err2 := &AlreadyExistsError{Entity: "user", Context: "with this username"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrMembershipExists))
		assert.False(t, IsAlreadyExists(ErrMembershipNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "end_date", Message: "cannot be before start date"}
		assert.Equal(t, "validation error: end_date - cannot be before start date", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid status"}
		assert.Equal(t, "validation error: invalid status", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		assert.True(t, IsValidation(NewValidationError("hours_spent", "must be greater than 0")))
		assert.False(t, IsValidation(ErrProjectNotFound))
	})

	t.Run("IsValidation through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("failed to create task: %w", NewValidationError("due_date", "out of range"))
		assert.True(t, IsValidation(wrapped))
	})
}

func TestProtectedReferenceError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ProtectedReferenceError{Entity: "user", ReferencedBy: "test cases"}
		assert.Equal(t, "user cannot be deleted: still referenced by test cases", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err := &ProtectedReferenceError{Entity: "user", ReferencedBy: "test cases"}
		assert.True(t, errors.Is(err, ErrUserCreatedTestCases))
	})

	t.Run("IsProtectedReference helper", func(t *testing.T) {
		assert.True(t, IsProtectedReference(ErrUserCreatedTestCases))
		assert.False(t, IsProtectedReference(ErrUserNotFound))
	})

	t.Run("IsProtectedReference through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("failed to delete user: %w", ErrUserCreatedTestCases)
		assert.True(t, IsProtectedReference(wrapped))
	})
}

func TestAuthenticationError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		assert.Equal(t, "invalid username or password", ErrInvalidCredentials.Error())
	})

	t.Run("IsAuthentication helper", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrInvalidCredentials))
		assert.True(t, IsAuthentication(ErrInactiveUser))
		assert.True(t, IsAuthentication(ErrPrincipalMissing))
		assert.False(t, IsAuthentication(ErrInvalidRefreshToken))
	})
}

func TestAuthorizationError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		assert.Equal(t, "only the comment author may modify it", ErrNotCommentAuthor.Error())
	})

	t.Run("IsAuthorization helper", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrNotCommentAuthor))
		assert.True(t, IsAuthorization(ErrNotEntryOwner))
		assert.False(t, IsAuthorization(ErrPrincipalMissing))
	})
}

func TestHelpersRejectForeignErrors(t *testing.T) {
	plain := errors.New("connection reset")

	assert.False(t, IsNotFound(plain))
	assert.False(t, IsAlreadyExists(plain))
	assert.False(t, IsValidation(plain))
	assert.False(t, IsProtectedReference(plain))
	assert.False(t, IsAuthentication(plain))
	assert.False(t, IsAuthorization(plain))
}

func TestConstructors(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("attachment")
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "attachment not found", err.Error())
	})

	t.Run("NewAlreadyExistsError", func(t *testing.T) {
		err := NewAlreadyExistsError("task dependency", "for these tasks")
		assert.True(t, IsAlreadyExists(err))
		assert.Equal(t, "task dependency already exists for these tasks", err.Error())
	})

	t.Run("NewValidationError", func(t *testing.T) {
		err := NewValidationError("completion_percentage", "must be between 0 and 100")
		assert.True(t, IsValidation(err))
	})

	t.Run("NewProtectedReferenceError", func(t *testing.T) {
		err := NewProtectedReferenceError("employee", "projects")
		assert.True(t, IsProtectedReference(err))
	})

	t.Run("NewAuthenticationError", func(t *testing.T) {
		err := NewAuthenticationError("token revoked")
		assert.True(t, IsAuthentication(err))
	})

	t.Run("NewAuthorizationError", func(t *testing.T) {
		err := NewAuthorizationError("read-only access")
		assert.True(t, IsAuthorization(err))
	})
}
