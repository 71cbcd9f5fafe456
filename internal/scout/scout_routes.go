package scout

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

func RegisterScoutRoutes(router *gin.RouterGroup, sc *ScoutController, authMW gin.HandlerFunc) {
	s := router.Group("/scout")
	s.Use(authMW, mw.RequireRoles(user.RoleScout))
	{
		s.GET("/profile", sc.GetProfile)
		s.PUT("/profile", sc.UpdateProfile)
		s.GET("/search", sc.Search)
		s.GET("/filter-options", sc.FilterOptions)
		s.GET("/players/:id", sc.PlayerDetail)
	}
}
