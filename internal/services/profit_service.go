package services

import (
	"fmt"
	"log"
	"time"

	"earnings-service/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Profit crediting modes.
const (
	ProfitModeDaily   = "daily"
	ProfitModeMonthly = "monthly"
)

type ProfitService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewProfitService(db *gorm.DB, helper *HelperService) *ProfitService {
	return &ProfitService{DB: db, Helper: helper}
}

// ProfitRunReport summarizes one crediting run. Row errors are collected, not
// fatal; only a top-level fetch failure aborts the run.
type ProfitRunReport struct {
	Mode     string   `json:"mode"`
	Credited int      `json:"credited"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// AddProfits credits every active offer subscription once for the current
// period. Re-running within the same period is a no-op: the ledger lookup
// skips already-credited pairs and the unique index on
// (user_id, offer_id, type, period_start) catches the remaining race.
func (s *ProfitService) AddProfits(mode string) (ProfitRunReport, error) {
	report := ProfitRunReport{Mode: mode}

	trxType, periodStart, periodEnd, err := periodFor(mode, time.Now())
	if err != nil {
		return report, err
	}

	var subscriptions []models.UserOffer
	if err := s.DB.Where("active = ?", true).Find(&subscriptions).Error; err != nil {
		return report, fmt.Errorf("loading active subscriptions: %w", err)
	}

	offers := map[int]*models.Offer{}

	for _, sub := range subscriptions {
		offer, ok := offers[sub.OfferId]
		if !ok {
			var o models.Offer
			if err := s.DB.First(&o, sub.OfferId).Error; err != nil {
				offers[sub.OfferId] = nil
				report.Skipped++
				report.Errors = append(report.Errors, fmt.Sprintf("offer %d: %v", sub.OfferId, err))
				continue
			}
			offer = &o
			offers[sub.OfferId] = offer
		}
		if offer == nil {
			report.Skipped++
			continue
		}

		profit := offer.DailyProfit
		if mode == ProfitModeMonthly {
			profit = offer.MonthlyProfit
		}
		if profit <= 0 {
			report.Skipped++
			continue
		}

		credited, err := s.creditOnce(sub, trxType, profit, periodStart, periodEnd, offer.Title)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("user %d offer %d: %v", sub.UserId, sub.OfferId, err))
			continue
		}
		if credited {
			report.Credited++
		} else {
			report.Skipped++
		}
	}

	if len(report.Errors) > 0 {
		log.Printf("Profit run (%s) finished with %d errors: credited=%d skipped=%d", mode, len(report.Errors), report.Credited, report.Skipped)
	} else {
		log.Printf("Profit run (%s) finished: credited=%d skipped=%d", mode, report.Credited, report.Skipped)
	}
	return report, nil
}

// creditOnce credits a single user-offer pair unless the ledger already holds
// an entry for this period.
func (s *ProfitService) creditOnce(sub models.UserOffer, trxType string, profit float64, periodStart, periodEnd time.Time, offerTitle string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND offer_id = ? AND type = ?", sub.UserId, sub.OfferId, trxType).
		Where("created_at >= ? AND created_at < ?", periodStart, periodEnd).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.Helper.CreditBalance(sub.UserId, "balance", profit); err != nil {
		return false, err
	}

	label := "Daily profit"
	if trxType == models.TrxMonthlyProfit {
		label = "Monthly profit"
	}
	err = s.Helper.SaveTransaction(TransactionData{
		UserId:      sub.UserId,
		OfferId:     sub.OfferId,
		Type:        trxType,
		Amount:      profit,
		Description: fmt.Sprintf("%s for %s", label, offerTitle),
		PeriodStart: &periodStart,
	})
	if err != nil {
		return false, fmt.Errorf("ledger entry failed after credit: %w", err)
	}
	return true, nil
}

// periodFor computes the half-open crediting window in local server time.
func periodFor(mode string, now time.Time) (string, time.Time, time.Time, error) {
	switch mode {
	case ProfitModeDaily:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return models.TrxDailyProfit, start, start.AddDate(0, 0, 1), nil
	case ProfitModeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return models.TrxMonthlyProfit, start, start.AddDate(0, 1, 0), nil
	default:
		return "", time.Time{}, time.Time{}, fmt.Errorf("unknown profit mode %q", mode)
	}
}

// StartScheduler initializes the cron jobs for profit crediting
func (s *ProfitService) StartScheduler() {
	c := cron.New()
	// Daily at 00:05
	if _, err := c.AddFunc("5 0 * * *", func() {
		log.Println("Running scheduled daily profit run...")
		if _, err := s.AddProfits(ProfitModeDaily); err != nil {
			log.Printf("Daily profit run failed: %v", err)
		}
	}); err != nil {
		log.Printf("Error scheduling daily profit run: %v", err)
		return
	}
	// Monthly on the 1st at 00:15
	if _, err := c.AddFunc("15 0 1 * *", func() {
		log.Println("Running scheduled monthly profit run...")
		if _, err := s.AddProfits(ProfitModeMonthly); err != nil {
			log.Printf("Monthly profit run failed: %v", err)
		}
	}); err != nil {
		log.Printf("Error scheduling monthly profit run: %v", err)
		return
	}
	c.Start()
	log.Println("Profit Scheduler started (daily 00:05, monthly 1st 00:15)")
}
