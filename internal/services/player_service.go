package services

import (
	"encoding/json"
	"log"
	"strings"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB       *gorm.DB
	Referral *ReferralService
	Identity *IdentityClient
	Queue    *asynq.Client
}

func NewPlayerService(db *gorm.DB, referral *ReferralService, identity *IdentityClient, queue *asynq.Client) *PlayerService {
	return &PlayerService{DB: db, Referral: referral, Identity: identity, Queue: queue}
}

type RegisterUserDTO struct {
	DisplayName  string
	Email        string
	Password     string
	ReferralCode string
}

// Task types consumed by the background worker. They live here rather than in
// the worker package so enqueuers and handlers share one definition without an
// import cycle.
const (
	TaskReferralCascade = "referral-cascade"
	TaskProfitRun       = "profit-run"
)

// ReferralCascadePayload is the queued task body for the post-registration
// cascade.
type ReferralCascadePayload struct {
	NewUserId    int    `json:"new_user_id"`
	ReferralCode string `json:"referral_code"`
}

// NewReferralCascadeTask builds the asynq task for a registration referral.
func NewReferralCascadeTask(payload ReferralCascadePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReferralCascade, data), nil
}

// ProfitRunPayload asks the worker to execute one crediting run.
type ProfitRunPayload struct {
	Mode string `json:"mode"`
}

// NewProfitRunTask builds the asynq task for a profit crediting run.
func NewProfitRunTask(payload ProfitRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProfitRun, data), nil
}

// RegisterUser creates the account. Credentials live with the identity
// provider; this service keeps only the profile and balances. A referral code
// is validated before anything is created, and the cascade is enqueued
// exactly once, after the account row exists.
func (s *PlayerService) RegisterUser(data RegisterUserDTO) (interface{}, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" || data.DisplayName == "" {
		return common.NewErrorResponse("Display name and email are required", nil, 400), nil
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return common.NewErrorResponse("An account with this email already exists", nil, 400), nil
	}

	if data.ReferralCode != "" {
		if _, err := s.Referral.ValidateReferralCode(data.ReferralCode); err != nil {
			return common.NewErrorResponse(err.Error(), nil, 400), nil
		}
	}

	if s.Identity != nil {
		if err := s.Identity.Register(email, data.Password, data.DisplayName); err != nil {
			return common.NewErrorResponse("Could not create credentials: "+err.Error(), nil, 502), nil
		}
	}

	user := models.User{
		Email:       email,
		DisplayName: data.DisplayName,
		Package:     "basic",
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	if data.ReferralCode != "" {
		s.enqueueCascade(user.ID, data.ReferralCode)
	}

	return common.NewSuccessResponse(user, "Registration successful"), nil
}

// enqueueCascade hands the referral cascade to the worker. When no queue is
// configured (tests, single-binary deployments) the cascade runs inline.
func (s *PlayerService) enqueueCascade(userId int, code string) {
	payload := ReferralCascadePayload{NewUserId: userId, ReferralCode: code}

	if s.Queue == nil {
		if err := s.Referral.ProcessReferral(userId, code); err != nil {
			log.Printf("Referral cascade for user %d failed: %v", userId, err)
		}
		return
	}

	task, err := NewReferralCascadeTask(payload)
	if err != nil {
		log.Printf("Could not build referral cascade task for user %d: %v", userId, err)
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		log.Printf("Could not enqueue referral cascade for user %d, running inline: %v", userId, err)
		if err := s.Referral.ProcessReferral(userId, code); err != nil {
			log.Printf("Referral cascade for user %d failed: %v", userId, err)
		}
	}
}

// GetProfile returns the caller's account.
func (s *PlayerService) GetProfile(userId int) (common.SuccessResponse, error) {
	var user models.User
	if err := s.DB.First(&user, userId).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(user, "Profile fetched"), nil
}

type UserTransactionsDTO struct {
	UserId int
	Page   int
	Limit  int
}

// GetUserTransactions pages through the caller's ledger entries.
func (s *PlayerService) GetUserTransactions(data UserTransactionsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{}).Where("user_id = ?", data.UserId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Successful"), nil
}
