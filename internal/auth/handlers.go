package auth

import (
	"errors"
	"net/http"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service     *AuthService
	userService *service.UserService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{service: service, userService: userService}
}

// Login handles POST /api/auth/login
// @Summary Log in with username and password
// @Description Verify credentials and return an access token plus a refresh token
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Successfully authenticated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials or inactive account"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.Login(&req)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh an access token
// @Description Rotate a refresh token and return a new access token
// @Tags authentication
// @Accept json
// @Produce json
// @Param token body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} LoginResponse "New tokens issued"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid or expired refresh token"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRefreshToken) ||
			errors.Is(err, apperrors.ErrRefreshTokenExpired) ||
			apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Invalidate the supplied refresh token. Access tokens stay valid until expiry.
// @Tags authentication
// @Accept json
// @Produce json
// @Param token body RefreshTokenRequest true "Refresh token to invalidate"
// @Success 200 {object} LogoutResponse "Logged out"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.service.Logout(req.RefreshToken)
	c.JSON(http.StatusOK, LogoutResponse{Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated user
// @Description Return the profile of the user behind the access token
// @Tags authentication
// @Produce json
// @Success 200 {object} service.UserResponse "Authenticated user profile"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrPrincipalMissing.Error()})
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
