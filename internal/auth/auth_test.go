package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pms-backend/internal/config"
	"pms-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-signing-key-for-jwt-operations",
		AccessTokenMinutes: 60,
		RefreshTokenHours:  24,
	}
}

func testUser() *models.User {
	return &models.User{
		TimestampedModel: models.TimestampedModel{ID: uuid.New(), CreatedAt: time.Now()},
		Username:         "testuser",
		Email:            "test@example.com",
		FirstName:        "Test",
		LastName:         "User",
		IsSuperuser:      true,
		IsActive:         true,
	}
}

func TestJWTOperations(t *testing.T) {
	service := NewAuthService(testConfig(), nil)
	user := testUser()

	// Test token generation
	token, err := service.GenerateJWT(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Test token validation
	claims, err := service.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, user.ID.String(), claims.Subject)

	// Test invalid token
	_, err = service.ValidateJWT("invalid-token")
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	service := NewAuthService(testConfig(), nil)
	token, err := service.GenerateJWT(testUser())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-completely-different-secret"
	other := NewAuthService(otherCfg, nil)

	_, err = other.ValidateJWT(token)
	assert.Error(t, err)
}

func TestRefreshTokenUnknown(t *testing.T) {
	service := NewAuthService(testConfig(), nil)

	_, err := service.RefreshToken("never-issued-token")
	assert.Error(t, err)
}

func TestLogoutDropsRefreshToken(t *testing.T) {
	service := NewAuthService(testConfig(), nil)
	user := testUser()

	service.tokenMutex.Lock()
	service.refreshTokens["issued-token"] = &RefreshTokenData{
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	service.tokenMutex.Unlock()

	service.Logout("issued-token")

	_, err := service.RefreshToken("issued-token")
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := NewAuthService(testConfig(), nil)
	middleware := NewAuthMiddleware(service)

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": principal.Username})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := service.GenerateJWT(testUser())
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "testuser")
	})
}

func TestRequireSuperuser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	middleware := NewAuthMiddleware(NewAuthService(testConfig(), nil))

	t.Run("superuser passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/admin", nil)
		c.Set("is_superuser", true)

		middleware.RequireSuperuser()(c)

		assert.False(t, c.IsAborted())
	})

	t.Run("regular user rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/admin", nil)
		c.Set("is_superuser", false)

		middleware.RequireSuperuser()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/admin", nil)

		middleware.RequireSuperuser()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
