package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"earnings-service/internal/models"
)

// HardWithdrawalCeiling caps any single request regardless of package limits.
const HardWithdrawalCeiling = 6000

// TimeSlot is a recurring weekly window during which withdrawals are allowed.
// Day follows time.Weekday numbering (0 = Sunday). Windows never cross
// midnight; an all-day slot is hour 0 to hour 23.
type TimeSlot struct {
	Day       int
	StartHour int
	EndHour   int
}

// ParseTimeSlot parses a "day:startHour:endHour" string.
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: want day:startHour:endHour", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return TimeSlot{}, fmt.Errorf("invalid time slot %q: %v", s, err)
		}
		nums[i] = n
	}

	slot := TimeSlot{Day: nums[0], StartHour: nums[1], EndHour: nums[2]}
	if slot.Day < 0 || slot.Day > 6 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: day out of range", s)
	}
	if slot.StartHour < 0 || slot.StartHour > 23 || slot.EndHour < 0 || slot.EndHour > 23 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: hour out of range", s)
	}
	return slot, nil
}

// Matches reports whether t falls inside the slot.
func (s TimeSlot) Matches(t time.Time) bool {
	return int(t.Weekday()) == s.Day && t.Hour() >= s.StartHour && t.Hour() < s.EndHour
}

// PackageLimit bounds withdrawals for one user tier. LimitActivatedAt, when
// set, excludes requests created before it from the daily aggregate so a cap
// change never penalizes earlier activity.
type PackageLimit struct {
	Min              float64    `json:"min"`
	Max              float64    `json:"max"`
	Daily            float64    `json:"daily"`
	LimitActivatedAt *time.Time `json:"limit_activated_at,omitempty"`
}

// WithdrawalSettings is the evaluator's view of the persisted configuration.
type WithdrawalSettings struct {
	TimeSlots     []TimeSlot
	PackageLimits map[string]PackageLimit
}

// Eligibility rejection reasons.
const (
	ReasonTimeWindowClosed = "time_window_closed"
	ReasonBelowMinimum     = "below_minimum"
	ReasonExceedsMaximum   = "exceeds_maximum"
	ReasonExceedsCeiling   = "exceeds_ceiling"
	ReasonDailyLimitMet    = "daily_limit_reached"
	ReasonDailyLimitExceed = "daily_limit_would_exceed"
)

// EligibilityResult reports the decision plus the limiting values, so a
// rejection can be rendered as actionable guidance rather than a bare denial.
type EligibilityResult struct {
	Allowed    bool    `json:"allowed"`
	Reason     string  `json:"reason,omitempty"`
	Message    string  `json:"message,omitempty"`
	Min        float64 `json:"min,omitempty"`
	Max        float64 `json:"max,omitempty"`
	Daily      float64 `json:"daily,omitempty"`
	TodayTotal float64 `json:"today_total,omitempty"`
	Remaining  float64 `json:"remaining,omitempty"`
}

func allowed() EligibilityResult {
	return EligibilityResult{Allowed: true}
}

// CanWithdraw decides whether a withdrawal of amount is permitted right now
// for the given package. The time-slot gate and the amount gate are
// independent; both must pass. history should hold the user's withdrawal
// requests for the current calendar day (extra rows from other days are
// filtered out here).
func CanWithdraw(amount float64, pkg string, now time.Time, history []models.WithdrawalRequest, settings WithdrawalSettings) EligibilityResult {
	if res := checkTimeWindow(now, settings.TimeSlots); !res.Allowed {
		return res
	}
	return checkAmountBounds(amount, pkg, now, history, settings.PackageLimits)
}

// checkTimeWindow fails closed: when slots are configured and none match, the
// withdrawal is rejected regardless of amount. An empty list allows all times.
func checkTimeWindow(now time.Time, slots []TimeSlot) EligibilityResult {
	if len(slots) == 0 {
		return allowed()
	}
	for _, slot := range slots {
		if slot.Matches(now) {
			return allowed()
		}
	}
	return EligibilityResult{
		Reason:  ReasonTimeWindowClosed,
		Message: "Withdrawals are not open at this time",
	}
}

func checkAmountBounds(amount float64, pkg string, now time.Time, history []models.WithdrawalRequest, limits map[string]PackageLimit) EligibilityResult {
	if amount > HardWithdrawalCeiling {
		return EligibilityResult{
			Reason:  ReasonExceedsCeiling,
			Message: fmt.Sprintf("Maximum withdrawable amount per request is %d", HardWithdrawalCeiling),
			Max:     HardWithdrawalCeiling,
		}
	}

	limit, ok := limits[pkg]
	if !ok {
		// No limit entry for this package: amount checks are skipped.
		return allowed()
	}

	if amount < limit.Min {
		return EligibilityResult{
			Reason:  ReasonBelowMinimum,
			Message: fmt.Sprintf("Minimum withdrawable amount is %.2f", limit.Min),
			Min:     limit.Min,
		}
	}
	if amount > limit.Max {
		return EligibilityResult{
			Reason:  ReasonExceedsMaximum,
			Message: fmt.Sprintf("Maximum withdrawable amount is %.2f", limit.Max),
			Max:     limit.Max,
		}
	}

	todayTotal := sumToday(history, now, limit.LimitActivatedAt)
	if todayTotal >= limit.Daily {
		return EligibilityResult{
			Reason:     ReasonDailyLimitMet,
			Message:    fmt.Sprintf("Daily withdrawal limit of %.2f reached", limit.Daily),
			Daily:      limit.Daily,
			TodayTotal: todayTotal,
			Remaining:  0,
		}
	}
	if remaining := limit.Daily - todayTotal; amount > remaining {
		return EligibilityResult{
			Reason:     ReasonDailyLimitExceed,
			Message:    fmt.Sprintf("Amount exceeds remaining daily limit of %.2f", remaining),
			Daily:      limit.Daily,
			TodayTotal: todayTotal,
			Remaining:  remaining,
		}
	}

	return allowed()
}

// sumToday totals pending, approved and paid requests dated on now's local
// calendar day. When a cutover is set, requests created before it do not
// count toward the new cap.
func sumToday(history []models.WithdrawalRequest, now time.Time, activatedAt *time.Time) float64 {
	var total float64
	for _, w := range history {
		switch w.Status {
		case models.WithdrawalPending, models.WithdrawalApproved, models.WithdrawalPaid:
		default:
			continue
		}
		if !sameDay(w.CreatedAt, now) {
			continue
		}
		if activatedAt != nil && w.CreatedAt.Before(*activatedAt) {
			continue
		}
		total += w.Amount
	}
	return total
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
