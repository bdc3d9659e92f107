package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.ErrProjectNotFound, http.StatusNotFound},
		{"validation", apperrors.NewValidationError("due_date", "out of range"), http.StatusBadRequest},
		{"already exists", apperrors.ErrUserExists, http.StatusConflict},
		{"protected reference", apperrors.ErrUserCreatedTestCases, http.StatusConflict},
		{"authentication", apperrors.ErrPrincipalMissing, http.StatusUnauthorized},
		{"authorization", apperrors.ErrNotCommentAuthor, http.StatusForbidden},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, recorder := testutils.CreateTestGinContext()
			ctx.Request = httptest.NewRequest("GET", "/", nil)

			respondError(ctx, tt.err)

			testutils.AssertErrorResponse(t, recorder, tt.wantStatus, tt.err.Error())
		})
	}
}

func TestParseIDParam(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		ctx, _ := testutils.CreateTestGinContext()
		ctx.Request = httptest.NewRequest("GET", "/", nil)
		want := uuid.New()
		testutils.SetURLParam(ctx, "id", want.String())

		got, ok := parseIDParam(ctx, "id")
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		ctx, recorder := testutils.CreateTestGinContext()
		ctx.Request = httptest.NewRequest("GET", "/", nil)
		testutils.SetURLParam(ctx, "id", "42")

		_, ok := parseIDParam(ctx, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestParseUUIDQuery(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		ctx, _ := testutils.CreateTestGinContext()
		ctx.Request = httptest.NewRequest("GET", "/", nil)

		got, ok := parseUUIDQuery(ctx, "project_id")
		assert.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("valid", func(t *testing.T) {
		ctx, _ := testutils.CreateTestGinContext()
		want := uuid.New()
		ctx.Request = httptest.NewRequest("GET", "/?project_id="+want.String(), nil)

		got, ok := parseUUIDQuery(ctx, "project_id")
		assert.True(t, ok)
		if assert.NotNil(t, got) {
			assert.Equal(t, want, *got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		ctx, recorder := testutils.CreateTestGinContext()
		ctx.Request = httptest.NewRequest("GET", "/?project_id=nope", nil)

		_, ok := parseUUIDQuery(ctx, "project_id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestParseBoolQuery(t *testing.T) {
	ctx, _ := testutils.CreateTestGinContext()
	ctx.Request = httptest.NewRequest("GET", "/?is_active=true", nil)

	got, ok := parseBoolQuery(ctx, "is_active")
	assert.True(t, ok)
	if assert.NotNil(t, got) {
		assert.True(t, *got)
	}

	ctx, recorder := testutils.CreateTestGinContext()
	ctx.Request = httptest.NewRequest("GET", "/?is_active=maybe", nil)

	_, ok = parseBoolQuery(ctx, "is_active")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&page_size=50", 3, 50},
		{"zero page", "?page=0", 1, 20},
		{"oversized page size", "?page_size=1000", 1, 20},
		{"garbage", "?page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testutils.CreateTestGinContext()
			ctx.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			page, pageSize := parsePagination(ctx)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestHealthEndpointShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	suite := testutils.SetupHTTPTest()
	handler := NewHealthHandler(nil)
	suite.Router.GET("/health/live", handler.Live)

	recorder := suite.MakeRequest("GET", "/health/live", nil)

	var body map[string]interface{}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &body)
	assert.Equal(t, true, body["alive"])
}
