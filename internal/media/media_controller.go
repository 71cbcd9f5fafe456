package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

// multipartSlack covers form fields and part headers around the file.
const multipartSlack = 1 << 20

type MediaController struct {
	service *MediaService
}

func NewMediaController(service *MediaService) *MediaController {
	return &MediaController{service: service}
}

type UpdateVideoRequest struct {
	Description string `json:"description"`
}

type LikeRequest struct {
	VideoID uint `json:"video_id" binding:"required"`
}

type CommentRequest struct {
	VideoID uint   `json:"video_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Upload godoc
// @Summary Upload an image or video
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video"
// @Param description formData string false "Caption"
// @Success 201 {object} responses.SuccessResponse{data=Video}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 413 {object} responses.ErrorResponse
// @Failure 415 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse "STORAGE_ERROR"
// @Security BearerAuth
// @Router /player/upload [post]
func (mc *MediaController) Upload(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	limit := mc.service.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responses.HandleError(c, apperrors.PayloadTooLarge(limit))
			return
		}
		responses.BadRequest(c, "No file uploaded")
		return
	}
	file, closer, err := storage.OpenFormFile(fh)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	defer closer.Close()

	v, err := mc.service.Upload(c.Request.Context(), a.ID, file, c.PostForm("description"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Media uploaded successfully", v)
}

// ListOwn godoc
// @Summary List my uploads
// @Tags Media
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Video}
// @Security BearerAuth
// @Router /player/videos [get]
func (mc *MediaController) ListOwn(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	videos, err := mc.service.ListOwn(c.Request.Context(), a.ID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Videos retrieved successfully", videos)
}

// Feed godoc
// @Summary Browse approved uploads
// @Tags Media
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]FeedItem}
// @Security BearerAuth
// @Router /player/videos/feed [get]
func (mc *MediaController) Feed(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	page, limit := utils.Paginate(c)
	items, total, err := mc.service.Feed(c.Request.Context(), a.ID, models.Page{Page: page, Limit: limit})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Feed retrieved successfully", items, total, page, limit)
}

// UpdateVideo godoc
// @Summary Edit the caption of my upload
// @Tags Media
// @Accept json
// @Produce json
// @Param id path int true "Video ID"
// @Param body body UpdateVideoRequest true "New caption"
// @Success 200 {object} responses.SuccessResponse{data=Video}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/{id} [put]
func (mc *MediaController) UpdateVideo(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid video ID")
		return
	}
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	v, err := mc.service.UpdateDescription(c.Request.Context(), a.ID, id, req.Description)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Video updated successfully", v)
}

// DeleteVideo godoc
// @Summary Delete my upload
// @Tags Media
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/{id} [delete]
func (mc *MediaController) DeleteVideo(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid video ID")
		return
	}
	if _, err := mc.service.Delete(c.Request.Context(), a, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Video deleted successfully", nil)
}

// Like godoc
// @Summary Like an upload
// @Description Returns 201 for a new like and 200 when the caller already liked it.
// @Tags Engagement
// @Accept json
// @Produce json
// @Param body body LikeRequest true "Video to like"
// @Success 201 {object} responses.SuccessResponse{data=LikeResult}
// @Success 200 {object} responses.SuccessResponse{data=LikeResult}
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/like [post]
func (mc *MediaController) Like(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	res, created, err := mc.service.Like(c.Request.Context(), a, req.VideoID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	if created {
		responses.SendSuccess(c, http.StatusCreated, "Video liked", res)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Video already liked", res)
}

// Unlike godoc
// @Summary Remove my like
// @Tags Engagement
// @Produce json
// @Param videoId path int true "Video ID"
// @Success 200 {object} responses.SuccessResponse{data=LikeResult}
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/like/{videoId} [delete]
func (mc *MediaController) Unlike(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	videoID, ok := utils.ParseID(c, "videoId")
	if !ok {
		responses.BadRequest(c, "Invalid video ID")
		return
	}
	res, err := mc.service.Unlike(c.Request.Context(), a, videoID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Video unliked", res)
}

// AddComment godoc
// @Summary Comment on an upload
// @Tags Engagement
// @Accept json
// @Produce json
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} responses.SuccessResponse{data=CommentView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/comment [post]
func (mc *MediaController) AddComment(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	view, err := mc.service.AddComment(c.Request.Context(), a, req.VideoID, req.Content)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Comment added successfully", view)
}

// ListComments godoc
// @Summary List comments on an upload
// @Tags Engagement
// @Produce json
// @Param videoId path int true "Video ID"
// @Success 200 {object} responses.SuccessResponse{data=[]CommentView}
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/comment/{videoId} [get]
func (mc *MediaController) ListComments(c *gin.Context) {
	videoID, ok := utils.ParseID(c, "videoId")
	if !ok {
		responses.BadRequest(c, "Invalid video ID")
		return
	}
	views, err := mc.service.ListComments(c.Request.Context(), videoID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Comments retrieved successfully", views)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Authors may delete their own comments, admins any comment.
// @Tags Engagement
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security BearerAuth
// @Router /player/videos/comment/{id} [delete]
func (mc *MediaController) DeleteComment(c *gin.Context) {
	a, ok := common.RequireActor(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c, "id")
	if !ok {
		responses.BadRequest(c, "Invalid comment ID")
		return
	}
	if err := mc.service.DeleteComment(c.Request.Context(), a, id); err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}
