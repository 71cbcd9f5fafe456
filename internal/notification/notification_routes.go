package notification

import "github.com/gin-gonic/gin"

// RegisterNotificationRoutes mounts the inbox for any authenticated role.
func RegisterNotificationRoutes(router *gin.RouterGroup, nc *NotificationController, authMW gin.HandlerFunc) {
	n := router.Group("/notifications")
	n.Use(authMW)
	{
		n.GET("", nc.ListNotifications)
		n.GET("/unread-count", nc.UnreadCount)
		n.PUT("/read-all", nc.MarkAllRead)
		n.PUT("/:id/read", nc.MarkRead)
		n.DELETE("/:id", nc.DeleteNotification)
	}
}
