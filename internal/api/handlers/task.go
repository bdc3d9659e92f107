package handlers

import (
	"net/http"

	"pms-backend/internal/database/models"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// UpdateTaskStatusRequest carries the new status for a task transition
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DependencyRequest identifies the task a dependency edge points at
type DependencyRequest struct {
	DependsOnID string `json:"depends_on_id" binding:"required"`
}

// CreateTask handles POST /tasks
// @Summary Create a new task
// @Description Create a task whose due date must fall inside the owning project's date range
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Successfully created task"
// @Failure 400 {object} map[string]interface{} "Invalid request body or due date outside project window"
// @Failure 404 {object} map[string]interface{} "Project, parent task or assignee not found"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /tasks/:id
// @Summary Get task by ID
// @Description Get a task with its subtasks and dependency edges expanded
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} service.TaskResponse "Successfully retrieved task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Description Get tasks with optional filters and pagination
// @Tags tasks
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param project_id query string false "Filter by project (UUID)"
// @Param assigned_to_id query string false "Filter by assignee (UUID)"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TaskListResponse "Successfully retrieved tasks"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, ok := parseUUIDQuery(c, "project_id")
	if !ok {
		return
	}
	assignedToID, ok := parseUUIDQuery(c, "assigned_to_id")
	if !ok {
		return
	}

	filter := repository.TaskFilter{
		Status:       models.TaskStatus(c.Query("status")),
		Priority:     models.Priority(c.Query("priority")),
		ProjectID:    projectID,
		AssignedToID: assignedToID,
		Search:       c.Query("search"),
	}

	page, pageSize := parsePagination(c)

	tasks, err := h.taskService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask handles PUT /tasks/:id
// @Summary Update a task
// @Description Update a task's fields. Due date changes are re-validated against the project window.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} service.TaskResponse "Successfully updated task"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete a task
// @Description Delete a task; subtasks, comments and time entries cascade
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 204 "Successfully deleted task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateTaskStatus handles PATCH /tasks/:id/status
// @Summary Change a task's status
// @Description Transition a task to a new status. Completed tasks get 100% completion.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param status body UpdateTaskStatusRequest true "New status"
// @Success 200 {object} service.TaskResponse "Successfully updated status"
// @Failure 400 {object} map[string]interface{} "Unknown status"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// MarkTasksCompleted handles POST /tasks/mark-completed
// @Summary Mark tasks completed
// @Description Bulk-transition tasks to completed with completion forced to 100%
// @Tags tasks
// @Accept json
// @Produce json
// @Param ids body IDListRequest true "Task IDs"
// @Success 200 {object} map[string]interface{} "Tasks updated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /tasks/mark-completed [post]
func (h *TaskHandler) MarkTasksCompleted(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.MarkCompleted(req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.IDs)})
}

// MarkTasksInProgress handles POST /tasks/mark-in-progress
// @Summary Mark tasks in progress
// @Description Bulk-transition tasks to in_progress without touching completion percentages
// @Tags tasks
// @Accept json
// @Produce json
// @Param ids body IDListRequest true "Task IDs"
// @Success 200 {object} map[string]interface{} "Tasks updated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /tasks/mark-in-progress [post]
func (h *TaskHandler) MarkTasksInProgress(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.MarkInProgress(req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.IDs)})
}

// GetTaskTimeLogged handles GET /tasks/:id/time-logged
// @Summary Get logged time for a task
// @Description Get hours logged against the task, paired with the estimate when present
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "Successfully retrieved logged time"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/time-logged [get]
func (h *TaskHandler) GetTaskTimeLogged(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	timeLogged, err := h.taskService.TimeLogged(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_logged": timeLogged})
}

// AddTaskDependency handles POST /tasks/:id/dependencies
// @Summary Add a task dependency
// @Description Record that this task depends on another task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param dependency body DependencyRequest true "Dependency target"
// @Success 201 {object} map[string]interface{} "Dependency added"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/dependencies [post]
func (h *TaskHandler) AddTaskDependency(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dependsOnID, err := uuid.Parse(req.DependsOnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid depends_on_id"})
		return
	}

	if err := h.taskService.AddDependency(id, dependsOnID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task_id": id, "depends_on_id": dependsOnID})
}

// RemoveTaskDependency handles DELETE /tasks/:id/dependencies/:depends_on_id
// @Summary Remove a task dependency
// @Description Remove a dependency edge between two tasks
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param depends_on_id path string true "Depended-on task ID (UUID)"
// @Success 204 "Dependency removed"
// @Failure 400 {object} map[string]interface{} "Invalid IDs"
// @Security BearerAuth
// @Router /tasks/{id}/dependencies/{depends_on_id} [delete]
func (h *TaskHandler) RemoveTaskDependency(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dependsOnID, ok := parseIDParam(c, "depends_on_id")
	if !ok {
		return
	}

	if err := h.taskService.RemoveDependency(id, dependsOnID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
