package models

import (
	"time"
)

// Ledger entry types.
const (
	TrxDailyProfit   = "daily_profit"
	TrxMonthlyProfit = "monthly_profit"
	TrxWithdrawal    = "withdrawal"
	TrxReferralBonus = "referral_bonus"
)

// Transaction is an append-only ledger entry. The profit crediting job uses it
// as its idempotency guard: the unique index over (user_id, offer_id, type,
// period_start) rejects a second credit for the same period even if two runs
// race past the existence check.
type Transaction struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int        `gorm:"column:user_id;not null;index:idx_trx_period,unique,priority:1" json:"user_id"`
	OfferId       int        `gorm:"column:offer_id;default:0;index:idx_trx_period,unique,priority:2" json:"offer_id"`
	Type          string     `gorm:"column:type;size:50;not null;index:idx_trx_period,unique,priority:3" json:"type"`
	PeriodStart   *time.Time `gorm:"column:period_start;index:idx_trx_period,unique,priority:4" json:"period_start"`
	TransactionNo string     `gorm:"column:transaction_no;size:40;not null;index" json:"transaction_no"`
	Amount        float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Description   string     `gorm:"column:description;type:text" json:"description"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
