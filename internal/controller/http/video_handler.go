package http

import (
	"errors"
	"net/http"
	"strconv"

	"classcast/internal/entity"
	"classcast/internal/usecase"
	"classcast/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *logger.Logger
}

func NewVideoHandler(catalogUseCase usecase.CatalogUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

type UploadVideoRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
}

// Upload godoc
// @Summary      Upload a video
// @Description  Upload a lecture video (mp4/avi/mov/wmv/flv/mkv). A thumbnail is derived with ffmpeg; when that fails the video is still stored and the response carries thumbnail_generated=false.
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Video title"
// @Param        description formData string false "Video description"
// @Param        media formData file true "Video file"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")
	role := entity.UserRole(c.GetString("user_role"))

	var req UploadVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	video, err := h.catalogUseCase.Upload(c.Request.Context(), userID, role, usecase.UploadInput{
		Title:       req.Title,
		Description: req.Description,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		File:        src,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only teachers can upload videos"})
		case errors.Is(err, entity.ErrInvalidFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	response := gin.H{
		"video":               video,
		"thumbnail_generated": video.ThumbnailURL != "",
	}
	if video.ThumbnailURL == "" {
		response["warning"] = entity.ErrThumbnailFailed.Error()
	}

	c.JSON(http.StatusCreated, response)
}

// Search godoc
// @Summary      Search the catalog
// @Description  Case-insensitive substring match on the title, newest first. Empty query lists everything.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "Search query"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /videos [get]
func (h *VideoHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	videos, err := h.catalogUseCase.Search(query, limit, offset)
	if err != nil {
		h.logger.Error("Search failed for %q: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"count":  len(videos),
		"query":  query,
	})
}

// ListByOwner godoc
// @Summary      List one teacher's uploads
// @Description  Returns a user's videos, newest first.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /users/{id}/videos [get]
func (h *VideoHandler) ListByOwner(c *gin.Context) {
	ownerID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	videos, err := h.catalogUseCase.ListByOwner(ownerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list videos for owner %s: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"count":  len(videos),
	})
}

// Watch godoc
// @Summary      Get a video for playback
// @Description  Returns the video metadata including the media URL and counts the view.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  entity.Video
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [get]
func (h *VideoHandler) Watch(c *gin.Context) {
	videoID := c.Param("id")

	video, err := h.catalogUseCase.Watch(videoID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load video"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// Delete godoc
// @Summary      Delete a video
// @Description  Removes the catalog entry and the stored media. Teachers only.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")
	role := entity.UserRole(c.GetString("user_role"))

	if err := h.catalogUseCase.Delete(videoID, userID, role); err != nil {
		switch {
		case errors.Is(err, entity.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only teachers can delete videos"})
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}
