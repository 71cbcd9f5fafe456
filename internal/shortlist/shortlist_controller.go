package shortlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

type ShortlistController struct {
	service *ShortlistService
}

func NewShortlistController(service *ShortlistService) *ShortlistController {
	return &ShortlistController{service: service}
}

type AddRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Notes    string `json:"notes"`
}

// Add godoc
// @Summary Shortlist a player
// @Tags Shortlist
// @Accept json
// @Produce json
// @Param body body AddRequest true "Player to shortlist"
// @Success 201 {object} responses.SuccessResponse{data=Shortlist}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/shortlist [post]
func (sc *ShortlistController) Add(c *gin.Context) {
	scout, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	row, err := sc.service.Add(c.Request.Context(), scout, req.PlayerID, req.Notes)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added to shortlist", row)
}

// List godoc
// @Summary List my shortlist
// @Tags Shortlist
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Entry}
// @Security BearerAuth
// @Router /scout/shortlist [get]
func (sc *ShortlistController) List(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	entries, err := sc.service.List(c.Request.Context(), scoutID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Shortlist retrieved successfully", entries)
}

// Remove godoc
// @Summary Remove a player from my shortlist
// @Tags Shortlist
// @Produce json
// @Param playerId path int true "Player user ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/shortlist/{playerId} [delete]
func (sc *ShortlistController) Remove(c *gin.Context) {
	scoutID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	playerID, ok := utils.ParseID(c, "playerId")
	if !ok {
		responses.BadRequest(c, "Invalid player ID")
		return
	}
	if err := sc.service.Remove(c.Request.Context(), scoutID, playerID); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed from shortlist", nil)
}
