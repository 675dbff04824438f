package services

import (
	"testing"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayerService(t *testing.T) *PlayerService {
	t.Helper()
	db := newTestDB(t)
	referral := NewReferralService(db, NewHelperService(db))
	// No identity provider and no queue: cascades run inline.
	return NewPlayerService(db, referral, nil, nil)
}

func TestRegisterUser(t *testing.T) {
	service := newPlayerService(t)

	res, err := service.RegisterUser(RegisterUserDTO{
		DisplayName: "New User",
		Email:       "  New.User@Example.COM ",
	})
	require.NoError(t, err)
	success, ok := res.(common.SuccessResponse)
	require.True(t, ok, "expected success, got %#v", res)

	user := success.Data.(models.User)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.Equal(t, "basic", user.Package)

	// Duplicate email, case-insensitively.
	res, err = service.RegisterUser(RegisterUserDTO{
		DisplayName: "Dup",
		Email:       "new.user@example.com",
	})
	require.NoError(t, err)
	_, ok = res.(common.ErrorResponse)
	assert.True(t, ok)
}

func TestRegisterUserRequiresFields(t *testing.T) {
	service := newPlayerService(t)

	res, err := service.RegisterUser(RegisterUserDTO{Email: "only@example.com"})
	require.NoError(t, err)
	_, ok := res.(common.ErrorResponse)
	assert.True(t, ok)

	res, err = service.RegisterUser(RegisterUserDTO{DisplayName: "No Email"})
	require.NoError(t, err)
	_, ok = res.(common.ErrorResponse)
	assert.True(t, ok)
}

func TestRegisterUserWithReferral(t *testing.T) {
	service := newPlayerService(t)
	seedReferralSettings(t, service.Referral)
	referrer := createUser(t, service.Referral, "ref@example.com", "CODEREFX", "")

	res, err := service.RegisterUser(RegisterUserDTO{
		DisplayName:  "Invited",
		Email:        "invited@example.com",
		ReferralCode: "CODEREFX",
	})
	require.NoError(t, err)
	success, ok := res.(common.SuccessResponse)
	require.True(t, ok, "expected success, got %#v", res)
	newcomer := success.Data.(models.User)

	// Cascade ran inline: edge written, referrer credited, link recorded.
	var edges int64
	require.NoError(t, service.DB.Model(&models.Referral{}).Where("referred_id = ?", newcomer.ID).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)

	var awarded models.User
	require.NoError(t, service.DB.First(&awarded, referrer.ID).Error)
	assert.Equal(t, 1, awarded.ReferralCount)

	var joined models.User
	require.NoError(t, service.DB.First(&joined, newcomer.ID).Error)
	assert.Equal(t, "CODEREFX", joined.ReferredBy)
}

func TestRegisterUserRejectsBadReferralCode(t *testing.T) {
	service := newPlayerService(t)

	res, err := service.RegisterUser(RegisterUserDTO{
		DisplayName:  "Invited",
		Email:        "invited@example.com",
		ReferralCode: "NOSUCH",
	})
	require.NoError(t, err)
	_, ok := res.(common.ErrorResponse)
	require.True(t, ok)

	// No account was created.
	var count int64
	require.NoError(t, service.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetUserTransactions(t *testing.T) {
	service := newPlayerService(t)
	helper := NewHelperService(service.DB)

	user := models.User{Email: "ledger@example.com", DisplayName: "ledger"}
	require.NoError(t, service.DB.Create(&user).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, helper.SaveTransaction(TransactionData{
			UserId: user.ID,
			Type:   models.TrxDailyProfit,
			Amount: 10,
		}))
	}

	res, err := service.GetUserTransactions(UserTransactionsDTO{UserId: user.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Count)
	assert.Len(t, res.Data.([]models.Transaction), 2)
	assert.Equal(t, 2, res.NextPage)
	assert.Equal(t, 2, res.LastPage)
}
