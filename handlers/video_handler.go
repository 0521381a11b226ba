package handlers

import (
	"net/http"

	"control-tower-api/helper"
	"control-tower-api/models"
	"control-tower-api/services"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	pipelineService services.PipelineService
	publishService  services.PublishService
	Helper          *helper.HTTPHelper
}

func NewVideoHandler(pipelineService services.PipelineService, publishService services.PublishService) *VideoHandler {
	return &VideoHandler{pipelineService: pipelineService, publishService: publishService}
}

// respondError maps the service error taxonomy to an HTTP status.
func (h *VideoHandler) respondError(c *gin.Context, err error) {
	c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
}

func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req models.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.pipelineService.CreateVideo(req.ArticleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) GetVideos(c *gin.Context) {
	var params models.VideoListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videos, total, err := h.pipelineService.GetVideos(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.pipelineService.GetVideo(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) GetVideoLogs(c *gin.Context) {
	logs, err := h.pipelineService.GetLogs(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *VideoHandler) ApproveScript(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.ApproveScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.pipelineService.ApproveScript(c.Param("id"), req, userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) PublishVideo(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.PublishVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.pipelineService.Publish(c.Param("id"), req, userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) MoveStatus(c *gin.Context) {
	userID, _ := c.Get("user_id")
	uid := userID.(uint)

	var req models.MoveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.pipelineService.MoveStatus(c.Param("id"), req.Status, req.Notes, &uid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) RetryVideo(c *gin.Context) {
	video, err := h.pipelineService.Retry(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) RejectVideo(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.RejectVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.pipelineService.Reject(c.Param("id"), req, userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) CancelVideo(c *gin.Context) {
	userID, _ := c.Get("user_id")
	uid := userID.(uint)

	video, err := h.pipelineService.Cancel(c.Param("id"), &uid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) UploadToYouTube(c *gin.Context) {
	userID, _ := c.Get("user_id")

	video, err := h.publishService.UploadToYouTube(c.Request.Context(), c.Param("id"), userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) PublishToInstagram(c *gin.Context) {
	userID, _ := c.Get("user_id")

	video, err := h.publishService.PublishToInstagram(c.Request.Context(), c.Param("id"), userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) PublishToFacebook(c *gin.Context) {
	userID, _ := c.Get("user_id")

	video, err := h.publishService.PublishToFacebook(c.Request.Context(), c.Param("id"), userID.(uint))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// GetPublishedVideo serves a single published video for the portal.
// Anything still in the pipeline is invisible to the public surface.
func (h *VideoHandler) GetPublishedVideo(c *gin.Context) {
	video, err := h.pipelineService.GetVideo(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if video.Status != models.StatusPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// GetPublishedVideos serves the public, read-only feed of published videos.
func (h *VideoHandler) GetPublishedVideos(c *gin.Context) {
	var params models.VideoListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params.Status = string(models.StatusPublished)

	videos, total, err := h.pipelineService.GetVideos(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}
