package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campustrack/internal/app/controllers"
	"github.com/yigit/campustrack/internal/middleware"
	"github.com/yigit/campustrack/internal/pkg/auth"
)

func TestOperatorRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-secret", AccessTokenExp: time.Hour, TokenIssuer: "campustrack.test"})

	router := gin.New()
	SetupRouter(router, Controllers{
		Import:  controllers.NewImportController(nil),
		User:    controllers.NewUserController(nil),
		Summary: controllers.NewSummaryController(nil),
	}, middleware.NewAuthMiddleware(jwt), 1024)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	teacherToken, _, err := jwt.Generate("t-1", "teacher", "CS")
	require.NoError(t, err)

	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/imports/users"},
		{http.MethodGet, "/api/v1/imports/summaries"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodPost, "/api/v1/users/1/reset-password"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.path)

		req := httptest.NewRequest(rt.method, rt.path, nil)
		req.Header.Set("Authorization", "Bearer "+teacherToken)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, rt.path)
	}
}
