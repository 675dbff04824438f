package services

import (
	"testing"

	"earnings-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubscription(t *testing.T, s *ProfitService, daily, monthly float64) (models.User, models.Offer) {
	t.Helper()
	user := models.User{Email: "sub@example.com", DisplayName: "sub", Verified: true}
	require.NoError(t, s.DB.Create(&user).Error)

	offer := models.Offer{Title: "Starter", DailyProfit: daily, MonthlyProfit: monthly, Active: true}
	require.NoError(t, s.DB.Create(&offer).Error)

	require.NoError(t, s.DB.Create(&models.UserOffer{UserId: user.ID, OfferId: offer.ID, Active: true}).Error)
	return user, offer
}

func TestAddProfitsDailyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewProfitService(db, NewHelperService(db))
	user, _ := seedSubscription(t, service, 10, 200)

	report, err := service.AddProfits(ProfitModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assert.Empty(t, report.Errors)

	// Second run in the same period credits nothing.
	report, err = service.AddProfits(ProfitModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Credited)
	assert.Equal(t, 1, report.Skipped)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 10.0, reloaded.Balance)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", user.ID, models.TrxDailyProfit).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddProfitsDailyAndMonthlyAreIndependent(t *testing.T) {
	db := newTestDB(t)
	service := NewProfitService(db, NewHelperService(db))
	user, _ := seedSubscription(t, service, 10, 200)

	_, err := service.AddProfits(ProfitModeDaily)
	require.NoError(t, err)

	report, err := service.AddProfits(ProfitModeMonthly)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 210.0, reloaded.Balance)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddProfitsSkipsInactiveAndZeroProfit(t *testing.T) {
	db := newTestDB(t)
	service := NewProfitService(db, NewHelperService(db))

	user := models.User{Email: "idle@example.com", DisplayName: "idle"}
	require.NoError(t, db.Create(&user).Error)

	paused := models.Offer{Title: "Paused", DailyProfit: 10, Active: true}
	require.NoError(t, db.Create(&paused).Error)
	require.NoError(t, db.Create(&models.UserOffer{UserId: user.ID, OfferId: paused.ID, Active: false}).Error)

	free := models.Offer{Title: "Free", DailyProfit: 0, Active: true}
	require.NoError(t, db.Create(&free).Error)
	require.NoError(t, db.Create(&models.UserOffer{UserId: user.ID, OfferId: free.ID, Active: true}).Error)

	report, err := service.AddProfits(ProfitModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Credited)
	assert.Equal(t, 1, report.Skipped)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 0.0, reloaded.Balance)
}

func TestAddProfitsCollectsRowErrors(t *testing.T) {
	db := newTestDB(t)
	service := NewProfitService(db, NewHelperService(db))
	user, _ := seedSubscription(t, service, 10, 0)

	// A dangling subscription must not sink the healthy one.
	require.NoError(t, db.Create(&models.UserOffer{UserId: user.ID, OfferId: 9999, Active: true}).Error)

	report, err := service.AddProfits(ProfitModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assert.Len(t, report.Errors, 1)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 10.0, reloaded.Balance)
}

func TestAddProfitsUnknownMode(t *testing.T) {
	db := newTestDB(t)
	service := NewProfitService(db, NewHelperService(db))

	_, err := service.AddProfits("weekly")
	assert.Error(t, err)
}
