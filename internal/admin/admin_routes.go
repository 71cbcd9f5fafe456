package admin

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

func RegisterAdminRoutes(router *gin.RouterGroup, ac *AdminController, authMW gin.HandlerFunc) {
	a := router.Group("/admin")
	a.Use(authMW, mw.RequireRoles(user.RoleAdmin))
	{
		a.GET("/users", ac.ListUsers)
		a.GET("/users/:id", ac.GetUser)
		a.DELETE("/users/:id", ac.DeleteUser)
		a.PUT("/users/:id/status", ac.UpdateUserStatus)
		a.POST("/users/:id/reset-password", ac.ResetPassword)

		a.GET("/media", ac.ListMedia)
		a.DELETE("/media/:id", ac.DeleteMedia)
		a.PUT("/media/:id/status", ac.SetMediaStatus)

		a.GET("/locations", ac.ListLocations)
		a.POST("/locations", ac.AddLocation)
		a.DELETE("/locations/:id", ac.DeleteLocation)

		a.GET("/logs", ac.Logs)
		a.GET("/logs/export", ac.ExportLogs)
		a.GET("/dashboard", ac.Dashboard)
	}
}
