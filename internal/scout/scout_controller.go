package scout

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

type ScoutController struct {
	service *ScoutService
}

func NewScoutController(service *ScoutService) *ScoutController {
	return &ScoutController{service: service}
}

// SearchQuery are the query parameters of the player search.
type SearchQuery struct {
	Query     string  `form:"q"`
	Position  string  `form:"position"`
	Club      string  `form:"club"`
	MinRating float64 `form:"min_rating" binding:"omitempty,min=0,max=5"`
	MinAge    int     `form:"min_age" binding:"omitempty,min=0"`
	MaxAge    int     `form:"max_age" binding:"omitempty,min=0"`
}

// GetProfile godoc
// @Summary Get my scout profile
// @Tags Scout
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Security BearerAuth
// @Router /scout/profile [get]
func (sc *ScoutController) GetProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	profile, err := sc.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile godoc
// @Summary Create or update my scout profile
// @Tags Scout
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param organization formData string false "Club or agency"
// @Param phone formData string false "Contact number"
// @Param profile_image formData file false "Profile image"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 413 {object} responses.ErrorResponse
// @Failure 415 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/profile [put]
func (sc *ScoutController) UpdateProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var in ProfileInput
	var image *storage.File
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&in); err != nil {
			responses.BindError(c, err)
			return
		}
		if fh, err := c.FormFile("profile_image"); err == nil {
			file, closer, err := storage.OpenFormFile(fh)
			if err != nil {
				responses.HandleError(c, err)
				return
			}
			defer closer.Close()
			image = file
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		responses.BindError(c, err)
		return
	}

	profile, err := sc.service.UpdateProfile(c.Request.Context(), userID, in, image)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}

// Search godoc
// @Summary Search players
// @Tags Scout
// @Produce json
// @Param q query string false "Name or bio contains"
// @Param position query string false "Exact position"
// @Param club query string false "Club contains"
// @Param min_rating query number false "Minimum rating"
// @Param min_age query int false "Minimum age"
// @Param max_age query int false "Maximum age"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]player.Summary}
// @Failure 400 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/search [get]
func (sc *ScoutController) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.BindError(c, err)
		return
	}
	page, limit := utils.Paginate(c)
	res, err := sc.service.Search(c.Request.Context(), player.SearchFilter{
		Query:     q.Query,
		Position:  strings.TrimSpace(q.Position),
		Club:      strings.TrimSpace(q.Club),
		MinRating: q.MinRating,
		MinAge:    q.MinAge,
		MaxAge:    q.MaxAge,
	}, models.Page{Page: page, Limit: limit})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Players retrieved successfully", res.Players, res.Total, page, limit)
}

// FilterOptions godoc
// @Summary Distinct positions and clubs for the search filters
// @Tags Scout
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=player.FilterOptions}
// @Security BearerAuth
// @Router /scout/filter-options [get]
func (sc *ScoutController) FilterOptions(c *gin.Context) {
	opts, err := sc.service.FilterOptions(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Filter options retrieved successfully", opts)
}

// PlayerDetail godoc
// @Summary View a player's profile, stats and approved uploads
// @Tags Scout
// @Produce json
// @Param id path int true "Player user ID"
// @Success 200 {object} responses.SuccessResponse{data=PlayerDetail}
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /scout/players/{id} [get]
func (sc *ScoutController) PlayerDetail(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid player ID")
		return
	}
	detail, err := sc.service.PlayerDetail(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player retrieved successfully", detail)
}
