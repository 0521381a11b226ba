package handlers

import (
	"net/http"

	"control-tower-api/helper"
	"control-tower-api/models"
	"control-tower-api/services"

	"github.com/gin-gonic/gin"
)

type AdvertiserHandler struct {
	advertiserService services.AdvertiserService
	Helper            *helper.HTTPHelper
}

func NewAdvertiserHandler(advertiserService services.AdvertiserService) *AdvertiserHandler {
	return &AdvertiserHandler{advertiserService: advertiserService}
}

func (h *AdvertiserHandler) CreateAdvertiser(c *gin.Context) {
	var req models.CreateAdvertiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advertiser, err := h.advertiserService.CreateAdvertiser(req)
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, advertiser)
}

func (h *AdvertiserHandler) GetAdvertisers(c *gin.Context) {
	advertisers, err := h.advertiserService.GetAdvertisers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advertisers": advertisers})
}

func (h *AdvertiserHandler) GetAdvertiser(c *gin.Context) {
	advertiser, err := h.advertiserService.GetAdvertiser(c.Param("id"))
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, advertiser)
}

func (h *AdvertiserHandler) UpdateAdvertiser(c *gin.Context) {
	var req models.UpdateAdvertiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advertiser, err := h.advertiserService.UpdateAdvertiser(c.Param("id"), req)
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, advertiser)
}

func (h *AdvertiserHandler) DeleteAdvertiser(c *gin.Context) {
	if err := h.advertiserService.DeleteAdvertiser(c.Param("id")); err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertiser deleted"})
}
