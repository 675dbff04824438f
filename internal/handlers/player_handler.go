package handlers

import (
	"net/http"
	"strconv"

	"earnings-service/internal/services"
	"earnings-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	Players *services.PlayerService
}

type RegisterRequest struct {
	DisplayName  string `json:"display_name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

func (h *PlayerHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Players.RegisterUser(services.RegisterUserDTO{
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *PlayerHandler) Profile(c *gin.Context) {
	res, err := h.Players.GetProfile(currentUserId(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PlayerHandler) Transactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.Players.GetUserTransactions(services.UserTransactionsDTO{
		UserId: currentUserId(c),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// respond maps the service-layer response values onto HTTP statuses.
func respond(c *gin.Context, res interface{}) {
	switch r := res.(type) {
	case common.ErrorResponse:
		c.JSON(r.Status, r)
	case common.SuccessResponse:
		c.JSON(r.Status, r)
	default:
		c.JSON(http.StatusOK, r)
	}
}
