package models

import (
	"time"
)

type User struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email               string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	DisplayName         string    `gorm:"column:display_name;size:255;not null" json:"display_name"`
	Package             string    `gorm:"column:package;size:50;default:basic" json:"package"`
	ReferralCode        string    `gorm:"column:referral_code;size:20;uniqueIndex" json:"referral_code"`
	ReferredBy          string    `gorm:"column:referred_by;size:20" json:"referred_by"`
	ReferralCount       int       `gorm:"column:referral_count;default:0" json:"referral_count"`
	TotalReferralPoints float64   `gorm:"column:total_referral_points;type:decimal(20,2);default:0.00" json:"total_referral_points"`
	Balance             float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	PersonalEarnings    float64   `gorm:"column:personal_earnings;type:decimal(20,2);default:0.00" json:"personal_earnings"`
	TeamEarnings        float64   `gorm:"column:team_earnings;type:decimal(20,2);default:0.00" json:"team_earnings"`
	Bonuses             float64   `gorm:"column:bonuses;type:decimal(20,2);default:0.00" json:"bonuses"`
	Verified            bool      `gorm:"column:verified;default:false" json:"verified"`
	Phone               string    `gorm:"column:phone;size:50" json:"phone"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
