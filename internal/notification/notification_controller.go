package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

type NotificationController struct {
	service *NotificationService
}

func NewNotificationController(service *NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// ListNotifications godoc
// @Summary List my notifications
// @Description Newest first, with the unread total.
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} responses.SuccessResponse{data=Inbox}
// @Failure 401 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	page, limit := utils.Paginate(c)

	inbox, err := nc.service.List(c.Request.Context(), userID, c.Query("unread") == "true", models.Page{Page: page, Limit: limit})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notifications retrieved successfully", inbox)
}

// UnreadCount godoc
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	count, err := nc.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"unread_count": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}
	if err := nc.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary Mark all notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	updated, err := nc.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": updated})
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}
	if err := nc.service.Delete(c.Request.Context(), id, userID); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification deleted", nil)
}
