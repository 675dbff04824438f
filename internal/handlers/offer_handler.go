package handlers

import (
	"net/http"
	"time"

	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	Offers *services.OfferService
}

func (h *OfferHandler) List(c *gin.Context) {
	res, err := h.Offers.ListOffers(c.Query("all") != "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

type JoinOfferRequest struct {
	OfferId int `json:"offer_id" binding:"required"`
}

func (h *OfferHandler) Join(c *gin.Context) {
	var req JoinOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Offers.JoinOffer(currentUserId(c), req.OfferId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

type SaveOfferRequest struct {
	ID            int        `json:"id"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	DailyProfit   float64    `json:"daily_profit"`
	MonthlyProfit float64    `json:"monthly_profit"`
	Active        bool       `json:"active"`
	Deadline      *time.Time `json:"deadline"`
}

func (h *OfferHandler) Save(c *gin.Context) {
	var req SaveOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Offers.SaveOffer(services.OfferDTO{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DailyProfit:   req.DailyProfit,
		MonthlyProfit: req.MonthlyProfit,
		Active:        req.Active,
		Deadline:      req.Deadline,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
