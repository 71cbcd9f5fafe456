package shortlist

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

func RegisterShortlistRoutes(router *gin.RouterGroup, sc *ShortlistController, authMW gin.HandlerFunc) {
	s := router.Group("/scout/shortlist")
	s.Use(authMW, mw.RequireRoles(user.RoleScout))
	{
		s.POST("", sc.Add)
		s.GET("", sc.List)
		s.DELETE("/:playerId", sc.Remove)
	}
}
