package models

import (
	"time"
)

type Offer struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string     `gorm:"column:title;size:255;not null" json:"title"`
	Description   string     `gorm:"column:description;type:text" json:"description"`
	Price         float64    `gorm:"column:price;type:decimal(20,2);default:0.00" json:"price"`
	DailyProfit   float64    `gorm:"column:daily_profit;type:decimal(20,2);default:0.00" json:"daily_profit"`
	MonthlyProfit float64    `gorm:"column:monthly_profit;type:decimal(20,2);default:0.00" json:"monthly_profit"`
	Active        bool       `gorm:"column:active" json:"active"`
	Deadline      *time.Time `gorm:"column:deadline" json:"deadline"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

type UserOffer struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId   int       `gorm:"column:user_id;not null;index:idx_user_offer,unique" json:"user_id"`
	OfferId  int       `gorm:"column:offer_id;not null;index:idx_user_offer,unique" json:"offer_id"`
	Active   bool      `gorm:"column:active" json:"active"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (UserOffer) TableName() string {
	return "user_offers"
}
