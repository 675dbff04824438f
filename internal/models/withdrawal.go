package models

import (
	"time"
)

// Withdrawal request statuses. Pay and reject are the only transitions out of
// pending; "approved" exists in data from the admin console but no code path
// here produces it.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
	WithdrawalPaid     = "paid"
)

// Withdrawal balance buckets. Each maps to the like-named column on users.
const (
	WithdrawalTypeBalance      = "balance"
	WithdrawalTypeBonuses      = "bonuses"
	WithdrawalTypeTeamEarnings = "team_earnings"
)

type WithdrawalRequest struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId          int       `gorm:"column:user_id;not null;index" json:"user_id"`
	Reference       string    `gorm:"column:reference;size:40;index" json:"reference"`
	Type            string    `gorm:"column:type;size:30;not null" json:"type"`
	Amount          float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Method          string    `gorm:"column:method;size:100" json:"method"`
	AccountDetails  string    `gorm:"column:account_details;size:255" json:"account_details"`
	ContactSnapshot string    `gorm:"column:contact_snapshot;size:255" json:"contact_snapshot"`
	ActiveOffers    string    `gorm:"column:active_offers;type:text" json:"active_offers"`
	Status          string    `gorm:"column:status;size:20;default:pending;index" json:"status"`
	AdminNote       string    `gorm:"column:admin_note;type:text" json:"admin_note"`
	RejectionReason string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	ProofImageUrl   string    `gorm:"column:proof_image_url;size:500" json:"proof_image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
