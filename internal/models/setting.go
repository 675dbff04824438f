package models

import (
	"time"
)

// Setting keys used by the withdrawal engine.
const (
	SettingWithdrawalTimeSlots = "withdrawal_time_slots"
	SettingPackageLimits       = "package_withdrawal_limits"
)

// Setting is a key/value row holding a JSON payload. The payloads are typed
// and validated in the settings service rather than trusted at point of use.
type Setting struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"column:setting_key;size:100;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"column:setting_value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
