package player

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
)

type PlayerController struct {
	service *PlayerService
}

func NewPlayerController(service *PlayerService) *PlayerController {
	return &PlayerController{service: service}
}

// GetProfile godoc
// @Summary Get my player profile
// @Tags Player
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 401 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/profile [get]
func (pc *PlayerController) GetProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	profile, err := pc.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile godoc
// @Summary Create or update my player profile
// @Description Accepts JSON, or multipart form data with an optional profile_image file.
// @Tags Player
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param position formData string false "Playing position"
// @Param club formData string false "Current club"
// @Param bio formData string false "Short bio"
// @Param date_of_birth formData string false "YYYY-MM-DD"
// @Param profile_image formData file false "Profile image"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 413 {object} responses.ErrorResponse
// @Failure 415 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse "STORAGE_ERROR"
// @Security BearerAuth
// @Router /player/profile [put]
func (pc *PlayerController) UpdateProfile(c *gin.Context) {
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

	profile, err := pc.service.UpdateProfile(c.Request.Context(), userID, in, image)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}

// GetStats godoc
// @Summary Get my performance stats
// @Tags Player
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=StatsView}
// @Security BearerAuth
// @Router /player/stats [get]
func (pc *PlayerController) GetStats(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	stats, err := pc.service.GetStats(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// UpdatePerformanceStats godoc
// @Summary Replace my performance stats
// @Description All five counters are required and must be non-negative. The rating is recomputed.
// @Tags Player
// @Accept json
// @Produce json
// @Param stats body StatsInput true "Cumulative stats"
// @Success 200 {object} responses.SuccessResponse{data=StatsView}
// @Failure 400 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/performance-stats [post]
func (pc *PlayerController) UpdatePerformanceStats(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var in StatsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		responses.BindError(c, err)
		return
	}
	stats, err := pc.service.UpdatePerformanceStats(c.Request.Context(), userID, in)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Performance stats updated successfully", stats)
}
