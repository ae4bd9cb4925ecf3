package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campustrack/internal/app/controllers"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Import  *controllers.ImportController
	User    *controllers.UserController
	Summary *controllers.SummaryController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrls Controllers, authMiddleware *middleware.AuthMiddleware, maxUploadBytes int64) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	v1 := router.Group("/api/v1")

	// Every route below is for operators only
	operators := v1.Group("")
	operators.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleDepartmentAdmin, models.RoleSuperAdmin))

	imports := operators.Group("/imports")
	{
		imports.POST("/users", middleware.UploadLimit(maxUploadBytes), ctrls.Import.ImportUsers)
		imports.GET("/summaries", ctrls.Summary.ListSummaries)
	}

	users := operators.Group("/users")
	{
		users.GET("", ctrls.User.ListUsers)
		users.POST("/:id/reset-password", ctrls.User.ResetPassword)
	}
}
