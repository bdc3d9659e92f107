package handlers

import (
	"net/http"

	"pms-backend/internal/auth"
	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestCaseHandler handles HTTP requests for test case operations
type TestCaseHandler struct {
	testCaseService *service.TestCaseService
	testStepService *service.TestStepService
}

// NewTestCaseHandler creates a new test case handler
func NewTestCaseHandler(testCaseService *service.TestCaseService, testStepService *service.TestStepService) *TestCaseHandler {
	return &TestCaseHandler{
		testCaseService: testCaseService,
		testStepService: testStepService,
	}
}

// CreateTestCase handles POST /test-cases
// @Summary Create a new test case
// @Description Create a test case. The creator is stamped from the authenticated user and can never change.
// @Tags test-cases
// @Accept json
// @Produce json
// @Param testCase body service.CreateTestCaseRequest true "Test case data"
// @Success 201 {object} service.TestCaseResponse "Successfully created test case"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 404 {object} map[string]interface{} "Project or lookup not found"
// @Security BearerAuth
// @Router /test-cases [post]
func (h *TestCaseHandler) CreateTestCase(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	var req service.CreateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	testCase, err := h.testCaseService.Create(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, testCase)
}

// GetTestCase handles GET /test-cases/:id
// @Summary Get test case by ID
// @Description Get a test case with its ordered steps, execution status and dependencies
// @Tags test-cases
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Success 200 {object} service.TestCaseResponse "Successfully retrieved test case"
// @Failure 400 {object} map[string]interface{} "Invalid test case ID"
// @Failure 404 {object} map[string]interface{} "Test case not found"
// @Security BearerAuth
// @Router /test-cases/{id} [get]
func (h *TestCaseHandler) GetTestCase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	testCase, err := h.testCaseService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, testCase)
}

// ListTestCases handles GET /test-cases
// @Summary List test cases
// @Description Get test cases with optional filters and pagination. Search also covers the owning project's name.
// @Tags test-cases
// @Produce json
// @Param status query string false "Filter by status"
// @Param project_id query string false "Filter by project (UUID)"
// @Param category_id query string false "Filter by category (UUID)"
// @Param priority_id query string false "Filter by priority (UUID)"
// @Param environment_id query string false "Filter by environment (UUID)"
// @Param test_type query string false "Filter by test type"
// @Param automation_status query string false "Filter by automation status"
// @Param assigned_to_id query string false "Filter by assignee (UUID)"
// @Param search query string false "Search in title, description and project name"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TestCaseListResponse "Successfully retrieved test cases"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Security BearerAuth
// @Router /test-cases [get]
func (h *TestCaseHandler) ListTestCases(c *gin.Context) {
	projectID, ok := parseUUIDQuery(c, "project_id")
	if !ok {
		return
	}
	categoryID, ok := parseUUIDQuery(c, "category_id")
	if !ok {
		return
	}
	priorityID, ok := parseUUIDQuery(c, "priority_id")
	if !ok {
		return
	}
	environmentID, ok := parseUUIDQuery(c, "environment_id")
	if !ok {
		return
	}
	assignedToID, ok := parseUUIDQuery(c, "assigned_to_id")
	if !ok {
		return
	}

	filter := repository.TestCaseFilter{
		Status:           models.TestCaseStatus(c.Query("status")),
		ProjectID:        projectID,
		CategoryID:       categoryID,
		PriorityID:       priorityID,
		EnvironmentID:    environmentID,
		TestType:         models.TestType(c.Query("test_type")),
		AutomationStatus: models.AutomationStatus(c.Query("automation_status")),
		AssignedToID:     assignedToID,
		Search:           c.Query("search"),
	}

	page, pageSize := parsePagination(c)

	testCases, err := h.testCaseService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, testCases)
}

// UpdateTestCase handles PUT /test-cases/:id
// @Summary Update a test case
// @Description Update a test case's fields. The creator is immutable.
// @Tags test-cases
// @Accept json
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Param testCase body service.UpdateTestCaseRequest true "Fields to update"
// @Success 200 {object} service.TestCaseResponse "Successfully updated test case"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Test case or lookup not found"
// @Security BearerAuth
// @Router /test-cases/{id} [put]
func (h *TestCaseHandler) UpdateTestCase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	testCase, err := h.testCaseService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, testCase)
}

// DeleteTestCase handles DELETE /test-cases/:id
// @Summary Delete a test case
// @Description Delete a test case; its steps are removed with it
// @Tags test-cases
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Success 204 "Successfully deleted test case"
// @Failure 400 {object} map[string]interface{} "Invalid test case ID"
// @Failure 404 {object} map[string]interface{} "Test case not found"
// @Security BearerAuth
// @Router /test-cases/{id} [delete]
func (h *TestCaseHandler) DeleteTestCase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.testCaseService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveTestCaseSteps handles PUT /test-cases/:id/steps
// @Summary Save a test case's steps
// @Description Bulk create, update and delete steps in one transaction. Steps without a number are appended after the highest number ever used.
// @Tags test-cases
// @Accept json
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Param steps body service.SaveStepsRequest true "Step rows"
// @Success 200 {array} models.TestStep "Steps after the save, in execution order"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Test case or step not found"
// @Security BearerAuth
// @Router /test-cases/{id}/steps [put]
func (h *TestCaseHandler) SaveTestCaseSteps(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.SaveStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	steps, err := h.testStepService.SaveSteps(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, steps)
}

// ListTestCaseSteps handles GET /test-cases/:id/steps
// @Summary List a test case's steps
// @Description Get the steps of a test case in execution order
// @Tags test-cases
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Success 200 {array} models.TestStep "Successfully retrieved steps"
// @Failure 400 {object} map[string]interface{} "Invalid test case ID"
// @Failure 404 {object} map[string]interface{} "Test case not found"
// @Security BearerAuth
// @Router /test-cases/{id}/steps [get]
func (h *TestCaseHandler) ListTestCaseSteps(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	steps, err := h.testStepService.ListByTestCase(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, steps)
}

// AddTestCaseDependency handles POST /test-cases/:id/dependencies
// @Summary Add a test case dependency
// @Description Record that this test case depends on another test case
// @Tags test-cases
// @Accept json
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Param dependency body DependencyRequest true "Dependency target"
// @Success 201 {object} map[string]interface{} "Dependency added"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Test case not found"
// @Security BearerAuth
// @Router /test-cases/{id}/dependencies [post]
func (h *TestCaseHandler) AddTestCaseDependency(c *gin.Context) {
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

	if err := h.testCaseService.AddDependency(id, dependsOnID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"test_case_id": id, "depends_on_id": dependsOnID})
}

// RemoveTestCaseDependency handles DELETE /test-cases/:id/dependencies/:depends_on_id
// @Summary Remove a test case dependency
// @Description Remove a dependency edge between two test cases
// @Tags test-cases
// @Produce json
// @Param id path string true "Test case ID (UUID)"
// @Param depends_on_id path string true "Depended-on test case ID (UUID)"
// @Success 204 "Dependency removed"
// @Failure 400 {object} map[string]interface{} "Invalid IDs"
// @Security BearerAuth
// @Router /test-cases/{id}/dependencies/{depends_on_id} [delete]
func (h *TestCaseHandler) RemoveTestCaseDependency(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dependsOnID, ok := parseIDParam(c, "depends_on_id")
	if !ok {
		return
	}

	if err := h.testCaseService.RemoveDependency(id, dependsOnID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
