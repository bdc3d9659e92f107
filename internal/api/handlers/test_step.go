package handlers

import (
	"net/http"

	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TestStepHandler handles HTTP requests for single test step operations
type TestStepHandler struct {
	testStepService *service.TestStepService
}

// NewTestStepHandler creates a new test step handler
func NewTestStepHandler(testStepService *service.TestStepService) *TestStepHandler {
	return &TestStepHandler{testStepService: testStepService}
}

// CreateTestStep handles POST /test-steps
// @Summary Create a test step
// @Description Append a single step to a test case. Without an explicit number it follows the highest number ever used.
// @Tags test-steps
// @Accept json
// @Produce json
// @Param step body service.CreateTestStepRequest true "Step data"
// @Success 201 {object} models.TestStep "Successfully created step"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Test case not found"
// @Security BearerAuth
// @Router /test-steps [post]
func (h *TestStepHandler) CreateTestStep(c *gin.Context) {
	var req service.CreateTestStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := h.testStepService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, step)
}

// GetTestStep handles GET /test-steps/:id
// @Summary Get test step by ID
// @Tags test-steps
// @Produce json
// @Param id path string true "Step ID (UUID)"
// @Success 200 {object} models.TestStep "Successfully retrieved step"
// @Failure 400 {object} map[string]interface{} "Invalid step ID"
// @Failure 404 {object} map[string]interface{} "Step not found"
// @Security BearerAuth
// @Router /test-steps/{id} [get]
func (h *TestStepHandler) GetTestStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	step, err := h.testStepService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// UpdateTestStep handles PUT /test-steps/:id
// @Summary Update a test step
// @Description Update a step's content and execution result. The step number stays fixed.
// @Tags test-steps
// @Accept json
// @Produce json
// @Param id path string true "Step ID (UUID)"
// @Param step body service.UpdateTestStepRequest true "Fields to update"
// @Success 200 {object} models.TestStep "Successfully updated step"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Step not found"
// @Security BearerAuth
// @Router /test-steps/{id} [put]
func (h *TestStepHandler) UpdateTestStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTestStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := h.testStepService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// DeleteTestStep handles DELETE /test-steps/:id
// @Summary Delete a test step
// @Description Delete a step. Remaining steps keep their numbers; the freed number is never reused.
// @Tags test-steps
// @Produce json
// @Param id path string true "Step ID (UUID)"
// @Success 204 "Successfully deleted step"
// @Failure 400 {object} map[string]interface{} "Invalid step ID"
// @Failure 404 {object} map[string]interface{} "Step not found"
// @Security BearerAuth
// @Router /test-steps/{id} [delete]
func (h *TestStepHandler) DeleteTestStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.testStepService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
