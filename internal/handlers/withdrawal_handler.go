package handlers

import (
	"net/http"
	"strconv"

	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
}

type WithdrawRequest struct {
	Type           string  `json:"type" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	Method         string  `json:"method" binding:"required"`
	AccountDetails string  `json:"account_details"`
}

func (h *WithdrawalHandler) Submit(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Withdrawals.RequestWithdrawal(services.WithdrawRequestDTO{
		UserId:         currentUserId(c),
		Type:           req.Type,
		Amount:         req.Amount,
		Method:         req.Method,
		AccountDetails: req.AccountDetails,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *WithdrawalHandler) MyWithdrawals(c *gin.Context) {
	res, err := h.Withdrawals.FetchUserWithdrawals(services.FetchUserWithdrawalsDTO{
		UserId:  currentUserId(c),
		Pending: c.Query("pending") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	userId, _ := strconv.Atoi(c.Query("user_id"))

	res, err := h.Withdrawals.ListWithdrawalRequests(services.ListWithdrawalRequestsDTO{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Status: c.Query("status"),
		UserId: userId,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

type PayRequest struct {
	AdminNote     string `json:"admin_note"`
	ProofImageUrl string `json:"proof_image_url"`
}

func (h *WithdrawalHandler) Pay(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Withdrawals.PayWithdrawal(services.PayWithdrawalDTO{
		Id:            id,
		AdminNote:     req.AdminNote,
		ProofImageUrl: req.ProofImageUrl,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *WithdrawalHandler) Reject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Withdrawals.RejectWithdrawal(services.RejectWithdrawalDTO{
		Id:              id,
		RejectionReason: req.Reason,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}
