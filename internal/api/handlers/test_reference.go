package handlers

import (
	"net/http"

	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TestReferenceHandler handles HTTP requests for the test lookup tables
// (categories, priorities, environments).
type TestReferenceHandler struct {
	categoryService    *service.TestCategoryService
	priorityService    *service.TestPriorityService
	environmentService *service.TestEnvironmentService
}

// NewTestReferenceHandler creates a new test reference handler
func NewTestReferenceHandler(
	categoryService *service.TestCategoryService,
	priorityService *service.TestPriorityService,
	environmentService *service.TestEnvironmentService,
) *TestReferenceHandler {
	return &TestReferenceHandler{
		categoryService:    categoryService,
		priorityService:    priorityService,
		environmentService: environmentService,
	}
}

// CreateTestCategory handles POST /test-categories
// @Summary Create a test category
// @Tags test-references
// @Accept json
// @Produce json
// @Param category body service.CreateTestCategoryRequest true "Category data"
// @Success 201 {object} models.TestCategory "Successfully created category"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Category name already exists"
// @Security BearerAuth
// @Router /test-categories [post]
func (h *TestReferenceHandler) CreateTestCategory(c *gin.Context) {
	var req service.CreateTestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetTestCategory handles GET /test-categories/:id
// @Summary Get test category by ID
// @Tags test-references
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 200 {object} models.TestCategory "Successfully retrieved category"
// @Failure 404 {object} map[string]interface{} "Category not found"
// @Security BearerAuth
// @Router /test-categories/{id} [get]
func (h *TestReferenceHandler) GetTestCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// ListTestCategories handles GET /test-categories
// @Summary List test categories
// @Tags test-references
// @Produce json
// @Success 200 {array} models.TestCategory "Successfully retrieved categories"
// @Security BearerAuth
// @Router /test-categories [get]
func (h *TestReferenceHandler) ListTestCategories(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateTestCategory handles PUT /test-categories/:id
// @Summary Update a test category
// @Tags test-references
// @Accept json
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Param category body service.UpdateTestCategoryRequest true "Fields to update"
// @Success 200 {object} models.TestCategory "Successfully updated category"
// @Failure 404 {object} map[string]interface{} "Category not found"
// @Failure 409 {object} map[string]interface{} "Category name already exists"
// @Security BearerAuth
// @Router /test-categories/{id} [put]
func (h *TestReferenceHandler) UpdateTestCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteTestCategory handles DELETE /test-categories/:id
// @Summary Delete a test category
// @Description Delete a category. Test cases that reference it keep working with the category cleared.
// @Tags test-references
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 204 "Successfully deleted category"
// @Failure 404 {object} map[string]interface{} "Category not found"
// @Security BearerAuth
// @Router /test-categories/{id} [delete]
func (h *TestReferenceHandler) DeleteTestCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTestPriority handles POST /test-priorities
// @Summary Create a test priority
// @Tags test-references
// @Accept json
// @Produce json
// @Param priority body service.CreateTestPriorityRequest true "Priority data"
// @Success 201 {object} models.TestPriority "Successfully created priority"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Priority order already taken"
// @Security BearerAuth
// @Router /test-priorities [post]
func (h *TestReferenceHandler) CreateTestPriority(c *gin.Context) {
	var req service.CreateTestPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority, err := h.priorityService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, priority)
}

// GetTestPriority handles GET /test-priorities/:id
// @Summary Get test priority by ID
// @Tags test-references
// @Produce json
// @Param id path string true "Priority ID (UUID)"
// @Success 200 {object} models.TestPriority "Successfully retrieved priority"
// @Failure 404 {object} map[string]interface{} "Priority not found"
// @Security BearerAuth
// @Router /test-priorities/{id} [get]
func (h *TestReferenceHandler) GetTestPriority(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	priority, err := h.priorityService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, priority)
}

// ListTestPriorities handles GET /test-priorities
// @Summary List test priorities
// @Description Get all priorities sorted by their order value
// @Tags test-references
// @Produce json
// @Success 200 {array} models.TestPriority "Successfully retrieved priorities"
// @Security BearerAuth
// @Router /test-priorities [get]
func (h *TestReferenceHandler) ListTestPriorities(c *gin.Context) {
	priorities, err := h.priorityService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, priorities)
}

// UpdateTestPriority handles PUT /test-priorities/:id
// @Summary Update a test priority
// @Tags test-references
// @Accept json
// @Produce json
// @Param id path string true "Priority ID (UUID)"
// @Param priority body service.UpdateTestPriorityRequest true "Fields to update"
// @Success 200 {object} models.TestPriority "Successfully updated priority"
// @Failure 404 {object} map[string]interface{} "Priority not found"
// @Failure 409 {object} map[string]interface{} "Priority order already taken"
// @Security BearerAuth
// @Router /test-priorities/{id} [put]
func (h *TestReferenceHandler) UpdateTestPriority(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTestPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority, err := h.priorityService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, priority)
}

// DeleteTestPriority handles DELETE /test-priorities/:id
// @Summary Delete a test priority
// @Tags test-references
// @Produce json
// @Param id path string true "Priority ID (UUID)"
// @Success 204 "Successfully deleted priority"
// @Failure 404 {object} map[string]interface{} "Priority not found"
// @Security BearerAuth
// @Router /test-priorities/{id} [delete]
func (h *TestReferenceHandler) DeleteTestPriority(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.priorityService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTestEnvironment handles POST /test-environments
// @Summary Create a test environment
// @Tags test-references
// @Accept json
// @Produce json
// @Param environment body service.CreateTestEnvironmentRequest true "Environment data"
// @Success 201 {object} models.TestEnvironment "Successfully created environment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Environment name already exists"
// @Security BearerAuth
// @Router /test-environments [post]
func (h *TestReferenceHandler) CreateTestEnvironment(c *gin.Context) {
	var req service.CreateTestEnvironmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	environment, err := h.environmentService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, environment)
}

// GetTestEnvironment handles GET /test-environments/:id
// @Summary Get test environment by ID
// @Tags test-references
// @Produce json
// @Param id path string true "Environment ID (UUID)"
// @Success 200 {object} models.TestEnvironment "Successfully retrieved environment"
// @Failure 404 {object} map[string]interface{} "Environment not found"
// @Security BearerAuth
// @Router /test-environments/{id} [get]
func (h *TestReferenceHandler) GetTestEnvironment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	environment, err := h.environmentService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, environment)
}

// ListTestEnvironments handles GET /test-environments
// @Summary List test environments
// @Tags test-references
// @Produce json
// @Success 200 {array} models.TestEnvironment "Successfully retrieved environments"
// @Security BearerAuth
// @Router /test-environments [get]
func (h *TestReferenceHandler) ListTestEnvironments(c *gin.Context) {
	environments, err := h.environmentService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, environments)
}

// UpdateTestEnvironment handles PUT /test-environments/:id
// @Summary Update a test environment
// @Tags test-references
// @Accept json
// @Produce json
// @Param id path string true "Environment ID (UUID)"
// @Param environment body service.UpdateTestEnvironmentRequest true "Fields to update"
// @Success 200 {object} models.TestEnvironment "Successfully updated environment"
// @Failure 404 {object} map[string]interface{} "Environment not found"
// @Failure 409 {object} map[string]interface{} "Environment name already exists"
// @Security BearerAuth
// @Router /test-environments/{id} [put]
func (h *TestReferenceHandler) UpdateTestEnvironment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTestEnvironmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	environment, err := h.environmentService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, environment)
}

// DeleteTestEnvironment handles DELETE /test-environments/:id
// @Summary Delete a test environment
// @Tags test-references
// @Produce json
// @Param id path string true "Environment ID (UUID)"
// @Success 204 "Successfully deleted environment"
// @Failure 404 {object} map[string]interface{} "Environment not found"
// @Security BearerAuth
// @Router /test-environments/{id} [delete]
func (h *TestReferenceHandler) DeleteTestEnvironment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.environmentService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
