package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes mounts /auth. limit guards the public endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, ac *AuthController, authMW, limit gin.HandlerFunc) {
	authPublic := router.Group("/auth")
	authPublic.Use(limit)
	{
		authPublic.POST("/register", ac.Register)
		authPublic.POST("/login", ac.Login)
		authPublic.POST("/refresh-token", ac.RefreshToken)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(authMW)
	{
		authProtected.GET("/me", ac.GetProfile)
	}
}
