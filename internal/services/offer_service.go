package services

import (
	"errors"
	"log"
	"time"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type OfferService struct {
	DB *gorm.DB
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{DB: db}
}

type OfferDTO struct {
	ID            int
	Title         string
	Description   string
	Price         float64
	DailyProfit   float64
	MonthlyProfit float64
	Active        bool
	Deadline      *time.Time
}

// SaveOffer creates or updates an offer.
func (s *OfferService) SaveOffer(data OfferDTO) (common.SuccessResponse, error) {
	var offer models.Offer
	if data.ID != 0 {
		if err := s.DB.First(&offer, data.ID).Error; err != nil {
			return common.SuccessResponse{}, err
		}
	}

	offer.Title = data.Title
	offer.Description = data.Description
	offer.Price = data.Price
	offer.DailyProfit = data.DailyProfit
	offer.MonthlyProfit = data.MonthlyProfit
	offer.Active = data.Active
	offer.Deadline = data.Deadline

	if err := s.DB.Save(&offer).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(offer, "Offer saved"), nil
}

func (s *OfferService) ListOffers(activeOnly bool) (common.SuccessResponse, error) {
	query := s.DB.Model(&models.Offer{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var offers []models.Offer
	if err := query.Order("created_at DESC").Find(&offers).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(offers, "Offers fetched"), nil
}

// JoinOffer subscribes a user to an active offer. Rejoining an offer the user
// already holds is rejected.
func (s *OfferService) JoinOffer(userId, offerId int) (interface{}, error) {
	var offer models.Offer
	if err := s.DB.First(&offer, offerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewErrorResponse("Offer not found", nil, 404), nil
		}
		return nil, err
	}
	if !offer.Active {
		return common.NewErrorResponse("Offer is no longer active", nil, 400), nil
	}
	if offer.Deadline != nil && offer.Deadline.Before(time.Now()) {
		return common.NewErrorResponse("Offer deadline has passed", nil, 400), nil
	}

	var count int64
	if err := s.DB.Model(&models.UserOffer{}).
		Where("user_id = ? AND offer_id = ?", userId, offerId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return common.NewErrorResponse("You have already joined this offer", nil, 400), nil
	}

	sub := models.UserOffer{UserId: userId, OfferId: offerId, Active: true}
	if err := s.DB.Create(&sub).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(sub, "Offer joined"), nil
}

// DeactivateExpiredOffers flips offers and their subscriptions inactive once
// the deadline passes.
func (s *OfferService) DeactivateExpiredOffers() error {
	now := time.Now()

	var expired []models.Offer
	if err := s.DB.Where("active = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Find(&expired).Error; err != nil {
		return err
	}

	for _, offer := range expired {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Offer{}).Where("id = ?", offer.ID).
				UpdateColumn("active", false).Error; err != nil {
				return err
			}
			return tx.Model(&models.UserOffer{}).Where("offer_id = ?", offer.ID).
				UpdateColumn("active", false).Error
		})
		if err != nil {
			log.Printf("Could not deactivate expired offer %d: %v", offer.ID, err)
			continue
		}
		log.Printf("Deactivated expired offer %d (%s)", offer.ID, offer.Title)
	}
	return nil
}

// StartScheduler initializes the hourly deadline sweep
func (s *OfferService) StartScheduler() {
	c := cron.New()
	if _, err := c.AddFunc("0 * * * *", func() {
		if err := s.DeactivateExpiredOffers(); err != nil {
			log.Printf("Offer deadline sweep failed: %v", err)
		}
	}); err != nil {
		log.Printf("Error scheduling offer deadline sweep: %v", err)
		return
	}
	c.Start()
	log.Println("Offer Scheduler started (hourly deadline sweep)")
}
