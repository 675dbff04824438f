package handlers

import (
	"net/http"

	"earnings-service/internal/services"
	"earnings-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

type ProfitHandler struct {
	Profit *services.ProfitService
	Queue  *asynq.Client
}

type ProfitRunRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// Run triggers a profit crediting run outside the cron schedule, for recovery
// after a missed or partially failed run. With a queue configured the run is
// handed to the worker; otherwise it executes inline and returns the report.
func (h *ProfitHandler) Run(c *gin.Context) {
	var req ProfitRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode != services.ProfitModeDaily && req.Mode != services.ProfitModeMonthly {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be daily or monthly"})
		return
	}

	if h.Queue != nil {
		task, err := services.NewProfitRunTask(services.ProfitRunPayload{Mode: req.Mode})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := h.Queue.Enqueue(task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, common.NewSuccessResponse(nil, "Profit run enqueued"))
		return
	}

	report, err := h.Profit.AddProfits(req.Mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(report, "Profit run completed"))
}
