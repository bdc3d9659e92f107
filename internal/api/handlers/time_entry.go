package handlers

import (
	"net/http"

	"pms-backend/internal/auth"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TimeEntryHandler handles HTTP requests for time entries
type TimeEntryHandler struct {
	timeEntryService *service.TimeEntryService
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(timeEntryService *service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{timeEntryService: timeEntryService}
}

// CreateTimeEntry handles POST /time-entries
// @Summary Log time against a task
// @Description Create a time entry owned by the authenticated user's employee record. Hours must be positive and the date must not be in the future.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry body service.CreateTimeEntryRequest true "Time entry data"
// @Success 201 {object} service.TimeEntryResponse "Successfully logged time"
// @Failure 400 {object} map[string]interface{} "Invalid request body, non-positive hours or future date"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /time-entries [post]
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	var req service.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.timeEntryService.Create(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetTimeEntry handles GET /time-entries/:id
// @Summary Get time entry by ID
// @Description Get a time entry. Non-superusers can only see their own entries.
// @Tags time-entries
// @Produce json
// @Param id path string true "Time entry ID (UUID)"
// @Success 200 {object} service.TimeEntryResponse "Successfully retrieved time entry"
// @Failure 400 {object} map[string]interface{} "Invalid time entry ID"
// @Failure 403 {object} map[string]interface{} "Not the entry owner"
// @Failure 404 {object} map[string]interface{} "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [get]
func (h *TimeEntryHandler) GetTimeEntry(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.timeEntryService.GetByID(principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListTimeEntries handles GET /time-entries
// @Summary List time entries
// @Description Get time entries with optional filters. Non-superusers always see only their own entries.
// @Tags time-entries
// @Produce json
// @Param task_id query string false "Filter by task (UUID)"
// @Param employee_id query string false "Filter by employee (UUID, superuser only)"
// @Param project_id query string false "Filter by project (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TimeEntryListResponse "Successfully retrieved time entries"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Security BearerAuth
// @Router /time-entries [get]
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	taskID, ok := parseUUIDQuery(c, "task_id")
	if !ok {
		return
	}
	employeeID, ok := parseUUIDQuery(c, "employee_id")
	if !ok {
		return
	}
	projectID, ok := parseUUIDQuery(c, "project_id")
	if !ok {
		return
	}

	filter := repository.TimeEntryFilter{
		TaskID:     taskID,
		EmployeeID: employeeID,
		ProjectID:  projectID,
	}

	page, pageSize := parsePagination(c)

	entries, err := h.timeEntryService.List(principal, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// UpdateTimeEntry handles PUT /time-entries/:id
// @Summary Edit a time entry
// @Description Edit a time entry. Only the owning employee or a superuser may edit, and the logging rules still apply.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param id path string true "Time entry ID (UUID)"
// @Param entry body service.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} service.TimeEntryResponse "Successfully updated time entry"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Not the entry owner"
// @Failure 404 {object} map[string]interface{} "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [put]
func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.timeEntryService.Update(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteTimeEntry handles DELETE /time-entries/:id
// @Summary Delete a time entry
// @Description Delete a time entry. Only the owning employee or a superuser may delete.
// @Tags time-entries
// @Produce json
// @Param id path string true "Time entry ID (UUID)"
// @Success 204 "Successfully deleted time entry"
// @Failure 400 {object} map[string]interface{} "Invalid time entry ID"
// @Failure 403 {object} map[string]interface{} "Not the entry owner"
// @Failure 404 {object} map[string]interface{} "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [delete]
func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.timeEntryService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
