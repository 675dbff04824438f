package services

import (
	"errors"
	"fmt"
	"log"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"gorm.io/gorm"
)

const maxReferralLevels = 3

type ReferralService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewReferralService(db *gorm.DB, helper *HelperService) *ReferralService {
	return &ReferralService{DB: db, Helper: helper}
}

// GetSettings loads the singleton level-points row. Missing settings are a
// misconfiguration the cascade must not paper over with defaults.
func (s *ReferralService) GetSettings() (models.ReferralSettings, error) {
	var settings models.ReferralSettings
	if err := s.DB.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings, fmt.Errorf("referral settings not configured")
		}
		return settings, err
	}
	return settings, nil
}

func (s *ReferralService) SaveSettings(settings models.ReferralSettings) (models.ReferralSettings, error) {
	var existing models.ReferralSettings
	err := s.DB.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.DB.Create(&settings).Error; err != nil {
			return settings, err
		}
		return settings, nil
	}
	if err != nil {
		return settings, err
	}

	existing.Level1Points = settings.Level1Points
	existing.Level2Points = settings.Level2Points
	existing.Level3Points = settings.Level3Points
	if err := s.DB.Save(&existing).Error; err != nil {
		return existing, err
	}
	return existing, nil
}

// ValidateReferralCode resolves a code to its verified owner. Registration
// calls this before the account is created, so an unverified or unknown code
// never reaches the cascade.
func (s *ReferralService) ValidateReferralCode(code string) (*models.User, error) {
	var referrer models.User
	if err := s.DB.Where("referral_code = ?", code).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("referral code %q not found", code)
		}
		return nil, err
	}
	if !referrer.Verified {
		return nil, fmt.Errorf("referral code %q belongs to an unverified account", code)
	}
	return &referrer, nil
}

// ProcessReferral walks up to three referrer levels from the given code,
// awarding points and recording one referral edge per level. Each level
// commits independently; a failure at level N is logged and stops the walk
// but leaves earlier awards in place. The chain is truncated at level 3 no
// matter how deep the ancestry goes.
func (s *ReferralService) ProcessReferral(newUserId int, referralCode string) error {
	var referrer models.User
	if err := s.DB.Where("referral_code = ?", referralCode).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("referrer for code %q no longer exists", referralCode)
		}
		return err
	}

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	pointsByLevel := []float64{settings.Level1Points, settings.Level2Points, settings.Level3Points}

	current := referrer
	for level := 1; level <= maxReferralLevels; level++ {
		if err := s.awardLevel(current, newUserId, level, pointsByLevel[level-1], referralCode); err != nil {
			log.Printf("Referral cascade stopped at level %d for user %d: %v", level, newUserId, err)
			break
		}

		if current.ReferredBy == "" {
			break
		}
		var next models.User
		if err := s.DB.Where("referral_code = ?", current.ReferredBy).First(&next).Error; err != nil {
			log.Printf("Referral cascade: level %d referrer (code %s) not found: %v", level+1, current.ReferredBy, err)
			break
		}
		current = next
	}

	// The referred-by link is recorded regardless of how many levels resolved.
	if err := s.DB.Model(&models.User{}).Where("id = ?", newUserId).
		UpdateColumn("referred_by", referralCode).Error; err != nil {
		return fmt.Errorf("could not record referred_by for user %d: %w", newUserId, err)
	}
	return nil
}

// awardLevel credits one referrer and records the edge. The edge stores the
// code that triggered the chain, not the ancestor's own code. Only the direct
// (level 1) referrer gains a referral_count.
func (s *ReferralService) awardLevel(referrer models.User, newUserId, level int, points float64, originCode string) error {
	updates := map[string]interface{}{
		"total_referral_points": gorm.Expr("total_referral_points + ?", points),
	}
	if level == 1 {
		updates["referral_count"] = gorm.Expr("referral_count + 1")
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", referrer.ID).
		UpdateColumns(updates).Error; err != nil {
		return fmt.Errorf("updating referrer %d stats: %w", referrer.ID, err)
	}

	edge := models.Referral{
		ReferrerId:   referrer.ID,
		ReferredId:   newUserId,
		Level:        level,
		PointsEarned: points,
		ReferralCode: originCode,
	}
	if err := s.DB.Create(&edge).Error; err != nil {
		return fmt.Errorf("recording level %d edge: %w", level, err)
	}
	return nil
}

// GetReferralCode returns the caller's code, generating it on first request.
func (s *ReferralService) GetReferralCode(userId int) (common.SuccessResponse, error) {
	var user models.User
	if err := s.DB.First(&user, userId).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	if err := s.Helper.EnsureReferralCode(&user); err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(map[string]interface{}{
		"referral_code": user.ReferralCode,
	}, "Referral code fetched"), nil
}

// GetReferralStats lists the caller's edges and aggregate counters.
func (s *ReferralService) GetReferralStats(userId int) (common.SuccessResponse, error) {
	var user models.User
	if err := s.DB.First(&user, userId).Error; err != nil {
		return common.SuccessResponse{}, err
	}

	var edges []models.Referral
	if err := s.DB.Where("referrer_id = ?", userId).Order("created_at DESC").Find(&edges).Error; err != nil {
		return common.SuccessResponse{}, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"referral_count":        user.ReferralCount,
		"total_referral_points": user.TotalReferralPoints,
		"referrals":             edges,
	}, "Referral stats fetched"), nil
}
