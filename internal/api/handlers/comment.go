package handlers

import (
	"net/http"

	"pms-backend/internal/auth"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler handles HTTP requests for task comments
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment handles POST /comments
// @Summary Add a comment to a task
// @Description Create a comment authored by the authenticated user's employee record
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body service.CreateCommentRequest true "Comment data"
// @Success 201 {object} service.CommentResponse "Successfully created comment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetComment handles GET /comments/:id
// @Summary Get comment by ID
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID (UUID)"
// @Success 200 {object} service.CommentResponse "Successfully retrieved comment"
// @Failure 400 {object} map[string]interface{} "Invalid comment ID"
// @Failure 404 {object} map[string]interface{} "Comment not found"
// @Security BearerAuth
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment handles PUT /comments/:id
// @Summary Edit a comment
// @Description Edit a comment. Only the original author or a superuser may edit.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID (UUID)"
// @Param comment body service.UpdateCommentRequest true "Fields to update"
// @Success 200 {object} service.CommentResponse "Successfully updated comment"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Not the comment author"
// @Failure 404 {object} map[string]interface{} "Comment not found"
// @Security BearerAuth
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /comments/:id
// @Summary Delete a comment
// @Description Delete a comment. Only the original author or a superuser may delete.
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID (UUID)"
// @Success 204 "Successfully deleted comment"
// @Failure 400 {object} map[string]interface{} "Invalid comment ID"
// @Failure 403 {object} map[string]interface{} "Not the comment author"
// @Failure 404 {object} map[string]interface{} "Comment not found"
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTaskComments handles GET /tasks/:id/comments
// @Summary List a task's comments
// @Description Get the comments on a task, newest first
// @Tags comments
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.CommentListResponse "Successfully retrieved comments"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/comments [get]
func (h *CommentHandler) ListTaskComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)

	comments, err := h.commentService.ListByTask(id, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
