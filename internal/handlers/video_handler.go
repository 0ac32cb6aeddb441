package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/clipvault/backend/internal/config"
	"github.com/clipvault/backend/internal/services"
	"github.com/clipvault/backend/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoService   *services.VideoService
	stagingService *services.StagingService
	cfg            *config.Config
}

func NewVideoHandler(videoService *services.VideoService, stagingService *services.StagingService, cfg *config.Config) *VideoHandler {
	return &VideoHandler{
		videoService:   videoService,
		stagingService: stagingService,
		cfg:            cfg,
	}
}

// ListVideos returns all videos, newest first
// GET /videos
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// GetVideo returns a single video
// GET /videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid video ID"})
		return
	}

	video, err := h.videoService.Get(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// UploadVideo handles a multipart video upload
// POST /videos
// Multipart form: video (required), title (required), description (optional)
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	file, header, err := c.Request.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "video file is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.UploadMaxVideoSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "video file too large"})
		return
	}

	// Buffer the payload to local staging before forwarding to the remote
	// store, and release the staged file on every exit path.
	absPath, size, _, err := h.stagingService.Save(c.Request.Context(), file)
	if err != nil {
		log.Printf("ERROR: failed to stage upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to buffer upload"})
		return
	}
	defer func() {
		if err := h.stagingService.Remove(absPath); err != nil {
			log.Printf("WARN: failed to remove staged upload %s: %v", absPath, err)
		}
	}()

	staged, err := os.Open(absPath)
	if err != nil {
		log.Printf("ERROR: failed to reopen staged upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to buffer upload"})
		return
	}
	defer staged.Close()

	video, err := h.videoService.Upload(c.Request.Context(), services.UploadInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		File:        staged,
		Size:        size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// UpdateVideo applies a partial title/description edit
// PATCH /videos/:id
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid video ID"})
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), videoID, services.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes the remote binary and the metadata record
// DELETE /videos/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid video ID"})
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), videoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}

// GetRecommendedVideos returns up to 5 other videos, newest first
// GET /videos/:id/recommended
func (h *VideoHandler) GetRecommendedVideos(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid video ID"})
		return
	}

	videos, err := h.videoService.Recommend(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// respondError maps a service error to an HTTP status and a safe message.
// Internal failures are logged with their cause; the client only ever sees
// the tagged message.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"message": apperrors.ClientMessage(err)})
}
