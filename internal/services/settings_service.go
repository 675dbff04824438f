package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"earnings-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService reads and writes the JSON payloads stored under the generic
// settings keys. Payloads are validated here so the evaluator never sees a
// malformed slot string or limit map.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// GetTimeSlots returns the configured withdrawal windows. A missing row means
// no restriction (empty list).
func (s *SettingsService) GetTimeSlots() ([]TimeSlot, error) {
	raw, found, err := s.getRaw(models.SettingWithdrawalTimeSlots)
	if err != nil || !found {
		return nil, err
	}

	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil, fmt.Errorf("time slots payload: %w", err)
	}

	slots := make([]TimeSlot, 0, len(strs))
	for _, str := range strs {
		slot, err := ParseTimeSlot(str)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// SaveTimeSlots validates and persists the slot strings as given.
func (s *SettingsService) SaveTimeSlots(slots []string) error {
	for _, str := range slots {
		if _, err := ParseTimeSlot(str); err != nil {
			return err
		}
	}
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return s.putRaw(models.SettingWithdrawalTimeSlots, string(payload))
}

// GetPackageLimits returns the per-package withdrawal bounds. A missing row
// yields an empty map, which the evaluator treats as "no amount checks".
func (s *SettingsService) GetPackageLimits() (map[string]PackageLimit, error) {
	raw, found, err := s.getRaw(models.SettingPackageLimits)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]PackageLimit{}, nil
	}

	limits := map[string]PackageLimit{}
	if err := json.Unmarshal([]byte(raw), &limits); err != nil {
		return nil, fmt.Errorf("package limits payload: %w", err)
	}
	return limits, nil
}

func (s *SettingsService) SavePackageLimits(limits map[string]PackageLimit) error {
	for name, limit := range limits {
		if limit.Min < 0 || limit.Max < 0 || limit.Daily < 0 {
			return fmt.Errorf("package %q: negative limit", name)
		}
		if limit.Max > 0 && limit.Min > limit.Max {
			return fmt.Errorf("package %q: min exceeds max", name)
		}
	}
	payload, err := json.Marshal(limits)
	if err != nil {
		return err
	}
	return s.putRaw(models.SettingPackageLimits, string(payload))
}

// GetWithdrawalSettings loads everything the eligibility evaluator needs.
func (s *SettingsService) GetWithdrawalSettings() (WithdrawalSettings, error) {
	slots, err := s.GetTimeSlots()
	if err != nil {
		return WithdrawalSettings{}, err
	}
	limits, err := s.GetPackageLimits()
	if err != nil {
		return WithdrawalSettings{}, err
	}
	return WithdrawalSettings{TimeSlots: slots, PackageLimits: limits}, nil
}

func (s *SettingsService) getRaw(key string) (string, bool, error) {
	var setting models.Setting
	err := s.DB.Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (s *SettingsService) putRaw(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&setting).Error
}
