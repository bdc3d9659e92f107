package handlers

import (
	"net/http"

	"pms-backend/internal/database/models"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject handles POST /projects
// @Summary Create a new project
// @Description Create a project owned by a team. The end date, when set, must not precede the start date.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse "Successfully created project"
// @Failure 400 {object} map[string]interface{} "Invalid request body or dates"
// @Failure 404 {object} map[string]interface{} "Team or manager not found"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /projects/:id
// @Summary Get project by ID
// @Description Get a project with its team and manager expanded
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Successfully retrieved project"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects handles GET /projects
// @Summary List projects
// @Description Get projects with optional filters and pagination
// @Tags projects
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param team_id query string false "Filter by owning team (UUID)"
// @Param is_archived query bool false "Filter by archived flag"
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.ProjectListResponse "Successfully retrieved projects"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	teamID, ok := parseUUIDQuery(c, "team_id")
	if !ok {
		return
	}
	isArchived, ok := parseBoolQuery(c, "is_archived")
	if !ok {
		return
	}

	filter := repository.ProjectFilter{
		Status:     models.ProjectStatus(c.Query("status")),
		Priority:   models.Priority(c.Query("priority")),
		TeamID:     teamID,
		IsArchived: isArchived,
		Search:     c.Query("search"),
	}

	page, pageSize := parsePagination(c)

	projects, err := h.projectService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// UpdateProject handles PUT /projects/:id
// @Summary Update a project
// @Description Update a project's fields. Date changes are validated against the end-after-start rule.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param project body service.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} service.ProjectResponse "Successfully updated project"
// @Failure 400 {object} map[string]interface{} "Invalid request or dates"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/:id
// @Summary Delete a project
// @Description Delete a project; its tasks and test cases are removed with it
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 204 "Successfully deleted project"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ArchiveProjects handles POST /projects/archive
// @Summary Archive projects
// @Description Bulk-archive the given projects
// @Tags projects
// @Accept json
// @Produce json
// @Param ids body IDListRequest true "Project IDs"
// @Success 200 {object} map[string]interface{} "Projects archived"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /projects/archive [post]
func (h *ProjectHandler) ArchiveProjects(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.Archive(req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.IDs)})
}

// UnarchiveProjects handles POST /projects/unarchive
// @Summary Unarchive projects
// @Description Bulk-unarchive the given projects
// @Tags projects
// @Accept json
// @Produce json
// @Param ids body IDListRequest true "Project IDs"
// @Success 200 {object} map[string]interface{} "Projects unarchived"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /projects/unarchive [post]
func (h *ProjectHandler) UnarchiveProjects(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.Unarchive(req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.IDs)})
}

// GetProjectTasksSummary handles GET /projects/:id/tasks-summary
// @Summary Get a project's task summary
// @Description Get task counts by status, overdue count and completion percentage
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.TasksSummaryResponse "Successfully retrieved summary"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks-summary [get]
func (h *ProjectHandler) GetProjectTasksSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.projectService.TasksSummary(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetProjectBudgetStatus handles GET /projects/:id/budget-status
// @Summary Get a project's budget status
// @Description Get spent hours against the project budget as a display string
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} map[string]interface{} "Successfully retrieved budget status"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/budget-status [get]
func (h *ProjectHandler) GetProjectBudgetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.projectService.BudgetStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_status": status})
}
