package media

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

// RegisterMediaRoutes mounts uploads, likes and comments under /player.
func RegisterMediaRoutes(router *gin.RouterGroup, mc *MediaController, authMW gin.HandlerFunc) {
	p := router.Group("/player")
	p.Use(authMW)

	playerOnly := mw.RequireRoles(user.RolePlayer)
	anyRole := mw.RequireRoles(user.RolePlayer, user.RoleScout, user.RoleAdmin)
	likers := mw.RequireRoles(user.RolePlayer, user.RoleScout)

	p.POST("/upload", playerOnly, mc.Upload)

	v := p.Group("/videos")
	{
		v.GET("", playerOnly, mc.ListOwn)
		v.GET("/feed", anyRole, mc.Feed)
		v.PUT("/:id", playerOnly, mc.UpdateVideo)
		v.DELETE("/:id", playerOnly, mc.DeleteVideo)

		v.POST("/like", likers, mc.Like)
		v.DELETE("/like/:videoId", likers, mc.Unlike)

		v.POST("/comment", playerOnly, mc.AddComment)
		v.GET("/comment/:videoId", anyRole, mc.ListComments)
		v.DELETE("/comment/:id", anyRole, mc.DeleteComment)
	}
}
