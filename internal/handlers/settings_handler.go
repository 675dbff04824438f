package handlers

import (
	"net/http"

	"earnings-service/internal/services"
	"earnings-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

func (h *SettingsHandler) GetWithdrawalSettings(c *gin.Context) {
	slots, err := h.Settings.GetTimeSlots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	limits, err := h.Settings.GetPackageLimits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"time_slots":     slots,
		"package_limits": limits,
	}, "Withdrawal settings fetched"))
}

type TimeSlotsRequest struct {
	TimeSlots []string `json:"time_slots"`
}

func (h *SettingsHandler) SaveTimeSlots(c *gin.Context) {
	var req TimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.SaveTimeSlots(req.TimeSlots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Time slots saved"))
}

type PackageLimitsRequest struct {
	PackageLimits map[string]services.PackageLimit `json:"package_limits"`
}

func (h *SettingsHandler) SavePackageLimits(c *gin.Context) {
	var req PackageLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.SavePackageLimits(req.PackageLimits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Package limits saved"))
}
