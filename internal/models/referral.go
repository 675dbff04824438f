package models

import (
	"time"
)

// Referral records one referrer benefiting from one referred user at one
// level (1-3). Immutable once created; at most one edge per (referred, level).
type Referral struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerId   int       `gorm:"column:referrer_id;not null;index" json:"referrer_id"`
	ReferredId   int       `gorm:"column:referred_id;not null;index:idx_referred_level,unique,priority:1" json:"referred_id"`
	Level        int       `gorm:"column:level;not null;index:idx_referred_level,unique,priority:2" json:"level"`
	PointsEarned float64   `gorm:"column:points_earned;type:decimal(20,2);not null" json:"points_earned"`
	ReferralCode string    `gorm:"column:referral_code;size:20;not null" json:"referral_code"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

// ReferralSettings is a singleton row holding the points awarded per level.
type ReferralSettings struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Level1Points float64   `gorm:"column:level1_points;type:decimal(20,2);default:100.00" json:"level1_points"`
	Level2Points float64   `gorm:"column:level2_points;type:decimal(20,2);default:50.00" json:"level2_points"`
	Level3Points float64   `gorm:"column:level3_points;type:decimal(20,2);default:25.00" json:"level3_points"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReferralSettings) TableName() string {
	return "referral_settings"
}
