package api

import (
	"net/http"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler issues presigned image upload URLs.
type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadRequest names the image the console is about to send.
type UploadRequest struct {
	Kind        string `json:"kind" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// RequestUpload returns where to PUT the image and the URL to save once it
// is there.
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.mediaService.RequestUpload(c.Request.Context(), domain.MediaKind(req.Kind), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to prepare upload")
		return
	}
	c.JSON(http.StatusCreated, upload)
}
