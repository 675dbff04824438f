package services

import (
	"fmt"
	"time"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"gorm.io/gorm"
)

type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

type TransactionData struct {
	UserId      int
	OfferId     int
	Type        string
	Amount      float64
	Description string
	PeriodStart *time.Time
}

// SaveTransaction appends a ledger entry.
func (s *HelperService) SaveTransaction(data TransactionData) error {
	trx := models.Transaction{
		UserId:        data.UserId,
		OfferId:       data.OfferId,
		TransactionNo: common.GenerateTrxNo(),
		Type:          data.Type,
		Amount:        data.Amount,
		Description:   data.Description,
		PeriodStart:   data.PeriodStart,
	}
	return s.DB.Create(&trx).Error
}

// CreditBalance increments a user balance column in place, avoiding lost
// updates under concurrent credits.
func (s *HelperService) CreditBalance(userId int, column string, amount float64) error {
	tx := s.DB.Model(&models.User{}).
		Where("id = ?", userId).
		UpdateColumn(column, gorm.Expr(column+" + ?", amount))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", userId)
	}
	return nil
}

// EnsureReferralCode lazily assigns the user's referral code, retrying on the
// rare collision against the unique index.
func (s *HelperService) EnsureReferralCode(user *models.User) error {
	if user.ReferralCode != "" {
		return nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		code := common.GenerateReferralCode()
		var count int64
		if err := s.DB.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.DB.Model(user).UpdateColumn("referral_code", code).Error; err != nil {
			return err
		}
		user.ReferralCode = code
		return nil
	}
	return fmt.Errorf("could not allocate a unique referral code for user %d", user.ID)
}
