package tryout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

type TryoutController struct {
	service *TryoutService
}

func NewTryoutController(service *TryoutService) *TryoutController {
	return &TryoutController{service: service}
}

type InviteRequest struct {
	TryoutID uint   `json:"tryout_id" binding:"required"`
	PlayerID uint   `json:"player_id" binding:"required"`
	Message  string `json:"message"`
}

type RespondRequest struct {
	Status InvitationStatus `json:"status" binding:"required"`
}

type JoinRequest struct {
	TryoutID uint   `json:"tryout_id" binding:"required"`
	Message  string `json:"message"`
}

type SendProfileRequest struct {
	ScoutID uint   `json:"scout_id" binding:"required"`
	Message string `json:"message"`
}

// CreateTryout godoc
// @Summary Schedule a tryout
// @Tags Tryouts
// @Accept json
// @Produce json
// @Param body body TryoutInput true "Tryout"
// @Success 201 {object} responses.SuccessResponse{data=Tryout}
// @Failure 400 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/tryouts [post]
func (tc *TryoutController) CreateTryout(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var in TryoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		responses.BindError(c, err)
		return
	}
	t, err := tc.service.CreateTryout(c.Request.Context(), scoutID, in)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tryout created successfully", t)
}

// ListOwnTryouts godoc
// @Summary List my tryouts
// @Tags Tryouts
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Tryout}
// @Security BearerAuth
// @Router /scout/tryouts [get]
func (tc *TryoutController) ListOwnTryouts(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	tryouts, err := tc.service.ListOwn(c.Request.Context(), scoutID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryouts retrieved successfully", tryouts)
}

// GetTryout godoc
// @Summary Get one of my tryouts with its invitations
// @Tags Tryouts
// @Produce json
// @Param id path int true "Tryout ID"
// @Success 200 {object} responses.SuccessResponse{data=TryoutDetail}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/tryouts/{id} [get]
func (tc *TryoutController) GetTryout(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid tryout ID")
		return
	}
	detail, err := tc.service.GetTryout(c.Request.Context(), scoutID, id)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryout retrieved successfully", detail)
}

// UpdateTryout godoc
// @Summary Update one of my tryouts
// @Tags Tryouts
// @Accept json
// @Produce json
// @Param id path int true "Tryout ID"
// @Param body body TryoutUpdate true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=Tryout}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/tryouts/{id} [put]
func (tc *TryoutController) UpdateTryout(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid tryout ID")
		return
	}
	var in TryoutUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		responses.BindError(c, err)
		return
	}
	t, err := tc.service.UpdateTryout(c.Request.Context(), scoutID, id, in)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryout updated successfully", t)
}

// DeleteTryout godoc
// @Summary Delete one of my tryouts and its invitations
// @Tags Tryouts
// @Produce json
// @Param id path int true "Tryout ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/tryouts/{id} [delete]
func (tc *TryoutController) DeleteTryout(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid tryout ID")
		return
	}
	if err := tc.service.DeleteTryout(c.Request.Context(), scoutID, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryout deleted successfully", nil)
}

// Invite godoc
// @Summary Invite a player to one of my tryouts
// @Tags Invitations
// @Accept json
// @Produce json
// @Param body body InviteRequest true "Invitation"
// @Success 201 {object} responses.SuccessResponse{data=Invitation}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/invite [post]
func (tc *TryoutController) Invite(c *gin.Context) {
	scout, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	inv, err := tc.service.Invite(c.Request.Context(), scout, req.TryoutID, req.PlayerID, req.Message)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Invitation sent successfully", inv)
}

// CancelInvitation godoc
// @Summary Withdraw a pending invitation
// @Tags Invitations
// @Produce json
// @Param id path int true "Invitation ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Invitation is no longer pending"
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/invitations/{id} [delete]
func (tc *TryoutController) CancelInvitation(c *gin.Context) {
	scout, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid invitation ID")
		return
	}
	if err := tc.service.CancelInvitation(c.Request.Context(), scout, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation cancelled successfully", nil)
}

// Respond godoc
// @Summary Accept or decline an invitation or join request
// @Description Players answer scout invitations; scouts answer join requests on their tryouts.
// @Tags Invitations
// @Accept json
// @Produce json
// @Param id path int true "Invitation ID"
// @Param body body RespondRequest true "accepted or declined"
// @Success 200 {object} responses.SuccessResponse{data=Invitation}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/invitations/{id} [put]
// @Router /scout/invitations/{id} [put]
func (tc *TryoutController) Respond(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid invitation ID")
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	inv, err := tc.service.Respond(c.Request.Context(), a, id, req.Status)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation "+string(inv.Status), inv)
}

// ListUpcoming godoc
// @Summary List upcoming tryouts
// @Tags Tryouts
// @Produce json
// @Param location query string false "Exact location name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]UpcomingTryout}
// @Security BearerAuth
// @Router /player/tryouts [get]
func (tc *TryoutController) ListUpcoming(c *gin.Context) {
	page, limit := utils.Paginate(c)
	tryouts, total, err := tc.service.ListUpcoming(c.Request.Context(), c.Query("location"), models.Page{Page: page, Limit: limit})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Tryouts retrieved successfully", tryouts, total, page, limit)
}

// RequestToJoin godoc
// @Summary Ask to join a tryout
// @Tags Tryouts
// @Accept json
// @Produce json
// @Param body body JoinRequest true "Tryout to join"
// @Success 201 {object} responses.SuccessResponse{data=Invitation}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/tryouts [post]
func (tc *TryoutController) RequestToJoin(c *gin.Context) {
	p, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	inv, err := tc.service.RequestToJoin(c.Request.Context(), p, req.TryoutID, req.Message)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request sent successfully", inv)
}

// ListPlayerInvitations godoc
// @Summary List my invitations
// @Tags Invitations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]PlayerInvitation}
// @Security BearerAuth
// @Router /player/invitations [get]
func (tc *TryoutController) ListPlayerInvitations(c *gin.Context) {
	playerID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	invs, err := tc.service.ListPlayerInvitations(c.Request.Context(), playerID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitations retrieved successfully", invs)
}

// SendProfile godoc
// @Summary Send my profile to a scout
// @Tags Invitations
// @Accept json
// @Produce json
// @Param body body SendProfileRequest true "Recipient scout"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/invitations/send [post]
func (tc *TryoutController) SendProfile(c *gin.Context) {
	p, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req SendProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	if err := tc.service.SendProfile(c.Request.Context(), p, req.ScoutID, req.Message); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile sent successfully", nil)
}

// ListLocations godoc
// @Summary List tryout locations
// @Tags Tryouts
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Location}
// @Security BearerAuth
// @Router /scout/locations [get]
func (tc *TryoutController) ListLocations(c *gin.Context) {
	locs, err := tc.service.ListLocations(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Locations retrieved successfully", locs)
}
