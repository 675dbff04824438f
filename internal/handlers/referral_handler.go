package handlers

import (
	"net/http"

	"earnings-service/internal/models"
	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	Referrals *services.ReferralService
}

func (h *ReferralHandler) MyCode(c *gin.Context) {
	res, err := h.Referrals.GetReferralCode(currentUserId(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReferralHandler) MyStats(c *gin.Context) {
	res, err := h.Referrals.GetReferralStats(currentUserId(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

type ReferralSettingsRequest struct {
	Level1Points float64 `json:"level1_points" binding:"required"`
	Level2Points float64 `json:"level2_points" binding:"required"`
	Level3Points float64 `json:"level3_points" binding:"required"`
}

func (h *ReferralHandler) SaveSettings(c *gin.Context) {
	var req ReferralSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Referrals.SaveSettings(models.ReferralSettings{
		Level1Points: req.Level1Points,
		Level2Points: req.Level2Points,
		Level3Points: req.Level3Points,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
