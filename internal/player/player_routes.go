package player

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

// RegisterPlayerRoutes mounts the player's own profile and stats endpoints.
func RegisterPlayerRoutes(router *gin.RouterGroup, pc *PlayerController, authMW gin.HandlerFunc) {
	p := router.Group("/player")
	p.Use(authMW, mw.RequireRoles(user.RolePlayer))
	{
		p.GET("/profile", pc.GetProfile)
		p.PUT("/profile", pc.UpdateProfile)
		p.GET("/stats", pc.GetStats)
		p.POST("/performance-stats", pc.UpdatePerformanceStats)
	}
}
