package tryout

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

// RegisterTryoutRoutes mounts the scout side and the player side of tryouts.
func RegisterTryoutRoutes(router *gin.RouterGroup, tc *TryoutController, authMW gin.HandlerFunc) {
	s := router.Group("/scout")
	s.Use(authMW, mw.RequireRoles(user.RoleScout))
	{
		s.POST("/tryouts", tc.CreateTryout)
		s.GET("/tryouts", tc.ListOwnTryouts)
		s.GET("/tryouts/:id", tc.GetTryout)
		s.PUT("/tryouts/:id", tc.UpdateTryout)
		s.DELETE("/tryouts/:id", tc.DeleteTryout)

		s.POST("/invite", tc.Invite)
		s.PUT("/invitations/:id", tc.Respond)
		s.DELETE("/invitations/:id", tc.CancelInvitation)
		s.GET("/locations", tc.ListLocations)
	}

	p := router.Group("/player")
	p.Use(authMW, mw.RequireRoles(user.RolePlayer))
	{
		p.GET("/tryouts", tc.ListUpcoming)
		p.POST("/tryouts", tc.RequestToJoin)
		p.GET("/invitations", tc.ListPlayerInvitations)
		p.PUT("/invitations/:id", tc.Respond)
		p.POST("/invitations/send", tc.SendProfile)
	}
}
