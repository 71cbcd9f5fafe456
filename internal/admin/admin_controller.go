package admin

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/audit"
	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	service *AdminService
}

func NewAdminController(service *AdminService) *AdminController {
	return &AdminController{service: service}
}

func pageOf(c *gin.Context) models.Page {
	page, limit := utils.Paginate(c)
	return models.Page{Page: page, Limit: limit}
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Param role query string false "player, scout or admin"
// @Param status query string false "active, inactive or suspended"
// @Param search query string false "Name or email contains"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]user.User}
// @Security BearerAuth
// @Router /admin/users [get]
func (ac *AdminController) ListUsers(c *gin.Context) {
	p := pageOf(c)
	filter := user.ListFilter{
		Role:   user.Role(strings.ToLower(c.Query("role"))),
		Status: user.Status(strings.ToLower(c.Query("status"))),
		Search: c.Query("search"),
	}
	users, total, err := ac.service.ListUsers(c.Request.Context(), filter, p)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Users retrieved successfully", users, total, p.Page, p.Limit)
}

// GetUser godoc
// @Summary Get a user with its profile
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=UserDetail}
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (ac *AdminController) GetUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	detail, err := ac.service.GetUser(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", detail)
}

// DeleteUser godoc
// @Summary Delete a user and everything it owns
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	if err := ac.service.DeleteUser(c.Request.Context(), admin, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// UpdateUserStatus godoc
// @Summary Change a user's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Failure 400 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (ac *AdminController) UpdateUserStatus(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	u, err := ac.service.UpdateUserStatus(c.Request.Context(), admin, id, user.Status(strings.ToLower(req.Status)))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User status updated", u)
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Description Without new_password a 12 character temporary password is generated and returned once.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body ResetPasswordRequest false "Optional new password"
// @Success 200 {object} responses.SuccessResponse{data=ResetPasswordResult}
// @Security BearerAuth
// @Router /admin/users/{id}/reset-password [post]
func (ac *AdminController) ResetPassword(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	var req ResetPasswordRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.BindError(c, err)
			return
		}
	}
	result, err := ac.service.ResetPassword(c.Request.Context(), admin, id, req.NewPassword)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password reset successfully", result)
}

// ListMedia godoc
// @Summary List uploads for moderation
// @Tags Admin
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param type query string false "image or video"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]media.Video}
// @Security BearerAuth
// @Router /admin/media [get]
func (ac *AdminController) ListMedia(c *gin.Context) {
	p := pageOf(c)
	filter := media.ListFilter{
		Status: media.Status(strings.ToLower(c.Query("status"))),
		Type:   storage.MediaType(strings.ToLower(c.Query("type"))),
	}
	videos, total, err := ac.service.ListMedia(c.Request.Context(), filter, p)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Media retrieved successfully", videos, total, p.Page, p.Limit)
}

// DeleteMedia godoc
// @Summary Delete an upload
// @Tags Admin
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/media/{id} [delete]
func (ac *AdminController) DeleteMedia(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid media ID")
		return
	}
	if err := ac.service.DeleteMedia(c.Request.Context(), admin, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Media deleted successfully", nil)
}

// SetMediaStatus godoc
// @Summary Approve or reject an upload
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Video ID"
// @Param body body StatusRequest true "pending, approved or rejected"
// @Success 200 {object} responses.SuccessResponse{data=media.Video}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/media/{id}/status [put]
func (ac *AdminController) SetMediaStatus(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid media ID")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	v, err := ac.service.SetMediaStatus(c.Request.Context(), admin, id, media.Status(strings.ToLower(req.Status)))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Media status updated", v)
}

// ListLocations godoc
// @Summary List tryout locations
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]tryout.Location}
// @Security BearerAuth
// @Router /admin/locations [get]
func (ac *AdminController) ListLocations(c *gin.Context) {
	locs, err := ac.service.ListLocations(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Locations retrieved successfully", locs)
}

// AddLocation godoc
// @Summary Add a tryout location
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body LocationRequest true "Location name"
// @Success 201 {object} responses.SuccessResponse{data=tryout.Location}
// @Failure 409 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/locations [post]
func (ac *AdminController) AddLocation(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	loc, err := ac.service.AddLocation(c.Request.Context(), admin, req.Name)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Location added", loc)
}

// DeleteLocation godoc
// @Summary Delete an unused tryout location
// @Tags Admin
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /admin/locations/{id} [delete]
func (ac *AdminController) DeleteLocation(c *gin.Context) {
	admin, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid location ID")
		return
	}
	if err := ac.service.DeleteLocation(c.Request.Context(), admin, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Location deleted", nil)
}

func logFilter(c *gin.Context) audit.Filter {
	return audit.Filter{
		Action:     audit.Action(c.Query("action")),
		EntityType: strings.ToLower(c.Query("entity_type")),
	}
}

// Logs godoc
// @Summary List the admin audit trail
// @Tags Admin
// @Produce json
// @Param action query string false "CREATE, UPDATE, DELETE or RESET_PASSWORD"
// @Param entity_type query string false "user, video or location"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]audit.SystemLog}
// @Security BearerAuth
// @Router /admin/logs [get]
func (ac *AdminController) Logs(c *gin.Context) {
	p := pageOf(c)
	logs, total, err := ac.service.Logs(c.Request.Context(), logFilter(c), p)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Logs retrieved successfully", logs, total, p.Page, p.Limit)
}

// ExportLogs godoc
// @Summary Download the audit trail as XLSX
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param action query string false "CREATE, UPDATE, DELETE or RESET_PASSWORD"
// @Param entity_type query string false "user, video or location"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/logs/export [get]
func (ac *AdminController) ExportLogs(c *gin.Context) {
	buf, err := ac.service.ExportLogs(c.Request.Context(), logFilter(c))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	name := fmt.Sprintf("audit-log-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Dashboard godoc
// @Summary Platform counts
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Dashboard}
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (ac *AdminController) Dashboard(c *gin.Context) {
	d, err := ac.service.Dashboard(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", d)
}
