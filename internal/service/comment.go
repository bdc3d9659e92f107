package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentService handles business logic for task comments
type CommentService struct {
	repo         *repository.CommentRepository
	taskRepo     *repository.TaskRepository
	employeeRepo *repository.EmployeeRepository
	validator    *validator.Validate
}

// NewCommentService creates a new comment service
func NewCommentService(repo *repository.CommentRepository, taskRepo *repository.TaskRepository, employeeRepo *repository.EmployeeRepository, validator *validator.Validate) *CommentService {
	return &CommentService{
		repo:         repo,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		validator:    validator,
	}
}

// CreateCommentRequest represents the request to create a comment
type CreateCommentRequest struct {
	TaskID      uuid.UUID       `json:"task_id" validate:"required"`
	Content     string          `json:"content" validate:"required"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
}

// UpdateCommentRequest represents the request to update a comment
type UpdateCommentRequest struct {
	Content     *string         `json:"content,omitempty"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CommentResponse represents the response for comment operations
type CommentResponse struct {
	ID          uuid.UUID       `json:"id"`
	TaskID      uuid.UUID       `json:"task_id"`
	AuthorID    uuid.UUID       `json:"author_id"`
	AuthorName  string          `json:"author_name,omitempty"`
	Content     string          `json:"content"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// Create adds a comment to a task. The author is always the acting
// principal's employee record, never a caller-supplied ID.
func (s *CommentService) Create(principal Principal, req *CreateCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.taskRepo.GetByID(req.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	author, err := s.employeeRepo.GetByUserID(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	comment := &models.Comment{
		TaskID:      req.TaskID,
		AuthorID:    author.ID,
		Content:     req.Content,
		Attachments: req.Attachments,
	}

	if err := s.repo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.toResponse(comment), nil
}

// GetByID retrieves a comment by ID
func (s *CommentService) GetByID(id uuid.UUID) (*CommentResponse, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return s.toResponse(comment), nil
}

// Update edits a comment. Only the original author or a superuser may edit.
func (s *CommentService) Update(principal Principal, id uuid.UUID, req *UpdateCommentRequest) (*CommentResponse, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if err := s.authorizeAuthor(principal, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Attachments != nil {
		comment.Attachments = req.Attachments
	}

	if err := s.repo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.toResponse(comment), nil
}

// Delete removes a comment. Only the original author or a superuser may delete.
func (s *CommentService) Delete(principal Principal, id uuid.UUID) error {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if err := s.authorizeAuthor(principal, comment.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ListByTask retrieves the comments on a task, newest first
func (s *CommentService) ListByTask(taskID uuid.UUID, page, pageSize int) (*CommentListResponse, error) {
	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	limit, offset := NormalizePagination(page, pageSize)

	comments, total, err := s.repo.ListByTask(taskID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *s.toResponse(&comments[i]))
	}

	return &CommentListResponse{
		Comments: responses,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

func (s *CommentService) authorizeAuthor(principal Principal, authorID uuid.UUID) error {
	if principal.IsSuperuser {
		return nil
	}
	author, err := s.employeeRepo.GetByUserID(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotCommentAuthor
		}
		return fmt.Errorf("failed to resolve principal employee: %w", err)
	}
	if author.ID != authorID {
		return apperrors.ErrNotCommentAuthor
	}
	return nil
}

func (s *CommentService) toResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:          comment.ID,
		TaskID:      comment.TaskID,
		AuthorID:    comment.AuthorID,
		Content:     comment.Content,
		Attachments: comment.Attachments,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   comment.UpdatedAt.Format(time.RFC3339),
	}
	if comment.Author.User.ID != uuid.Nil {
		resp.AuthorName = comment.Author.User.FullName()
	}
	return resp
}
