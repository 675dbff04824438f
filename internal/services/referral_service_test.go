package services

import (
	"testing"

	"earnings-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReferralSettings(t *testing.T, s *ReferralService) {
	t.Helper()
	_, err := s.SaveSettings(models.ReferralSettings{
		Level1Points: 100,
		Level2Points: 50,
		Level3Points: 25,
	})
	require.NoError(t, err)
}

func createUser(t *testing.T, s *ReferralService, email, code, referredBy string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		DisplayName:  email,
		ReferralCode: code,
		ReferredBy:   referredBy,
		Verified:     true,
	}
	require.NoError(t, s.DB.Create(&user).Error)
	return user
}

func TestProcessReferralCascade(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))
	seedReferralSettings(t, service)

	// Four-deep ancestry: a <- b <- c <- d. A new user signs up with d's code.
	a := createUser(t, service, "a@example.com", "CODEAAAA", "")
	b := createUser(t, service, "b@example.com", "CODEBBBB", "CODEAAAA")
	c := createUser(t, service, "c@example.com", "CODECCCC", "CODEBBBB")
	d := createUser(t, service, "d@example.com", "CODEDDDD", "CODECCCC")
	newcomer := createUser(t, service, "e@example.com", "CODEEEEE", "")

	require.NoError(t, service.ProcessReferral(newcomer.ID, "CODEDDDD"))

	var edges []models.Referral
	require.NoError(t, db.Where("referred_id = ?", newcomer.ID).Order("level").Find(&edges).Error)
	require.Len(t, edges, 3)

	assert.Equal(t, d.ID, edges[0].ReferrerId)
	assert.Equal(t, 100.0, edges[0].PointsEarned)
	assert.Equal(t, c.ID, edges[1].ReferrerId)
	assert.Equal(t, 50.0, edges[1].PointsEarned)
	assert.Equal(t, b.ID, edges[2].ReferrerId)
	assert.Equal(t, 25.0, edges[2].PointsEarned)

	// Every edge records the code the newcomer signed up with.
	for _, edge := range edges {
		assert.Equal(t, "CODEDDDD", edge.ReferralCode)
	}

	var direct models.User
	require.NoError(t, db.First(&direct, d.ID).Error)
	assert.Equal(t, 1, direct.ReferralCount)
	assert.Equal(t, 100.0, direct.TotalReferralPoints)

	var second models.User
	require.NoError(t, db.First(&second, c.ID).Error)
	assert.Equal(t, 0, second.ReferralCount)
	assert.Equal(t, 50.0, second.TotalReferralPoints)

	// Level 4 ancestor gets nothing.
	var ancestor models.User
	require.NoError(t, db.First(&ancestor, a.ID).Error)
	assert.Equal(t, 0.0, ancestor.TotalReferralPoints)

	var joined models.User
	require.NoError(t, db.First(&joined, newcomer.ID).Error)
	assert.Equal(t, "CODEDDDD", joined.ReferredBy)
}

func TestProcessReferralShortChain(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))
	seedReferralSettings(t, service)

	referrer := createUser(t, service, "solo@example.com", "CODESOLO", "")
	newcomer := createUser(t, service, "new@example.com", "CODENEW1", "")

	require.NoError(t, service.ProcessReferral(newcomer.ID, "CODESOLO"))

	var count int64
	require.NoError(t, db.Model(&models.Referral{}).Where("referred_id = ?", newcomer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, referrer.ID).Error)
	assert.Equal(t, 1, reloaded.ReferralCount)
	assert.Equal(t, 100.0, reloaded.TotalReferralPoints)
}

func TestProcessReferralBrokenChainStopsQuietly(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))
	seedReferralSettings(t, service)

	// The referrer points at a code that no longer resolves.
	referrer := createUser(t, service, "ref@example.com", "CODEREF1", "CODEGONE")
	newcomer := createUser(t, service, "new@example.com", "CODENEW2", "")

	require.NoError(t, service.ProcessReferral(newcomer.ID, "CODEREF1"))

	var count int64
	require.NoError(t, db.Model(&models.Referral{}).Where("referred_id = ?", newcomer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var awarded models.User
	require.NoError(t, db.First(&awarded, referrer.ID).Error)
	assert.Equal(t, 100.0, awarded.TotalReferralPoints)

	var joined models.User
	require.NoError(t, db.First(&joined, newcomer.ID).Error)
	assert.Equal(t, "CODEREF1", joined.ReferredBy)
}

func TestProcessReferralMissingSettingsAborts(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))

	createUser(t, service, "ref@example.com", "CODEREF2", "")
	newcomer := createUser(t, service, "new@example.com", "CODENEW3", "")

	require.Error(t, service.ProcessReferral(newcomer.ID, "CODEREF2"))

	var count int64
	require.NoError(t, db.Model(&models.Referral{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, newcomer.ID).Error)
	assert.Empty(t, reloaded.ReferredBy)
}

func TestProcessReferralUnknownCode(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))
	seedReferralSettings(t, service)

	newcomer := createUser(t, service, "new@example.com", "CODENEW4", "")
	require.Error(t, service.ProcessReferral(newcomer.ID, "NOSUCH"))
}

func TestValidateReferralCode(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))

	verified := createUser(t, service, "ok@example.com", "CODEOKAY", "")

	unverified := models.User{Email: "no@example.com", DisplayName: "no", ReferralCode: "CODENOPE"}
	require.NoError(t, db.Create(&unverified).Error)

	referrer, err := service.ValidateReferralCode("CODEOKAY")
	require.NoError(t, err)
	assert.Equal(t, verified.ID, referrer.ID)

	_, err = service.ValidateReferralCode("CODENOPE")
	assert.Error(t, err)
	_, err = service.ValidateReferralCode("MISSING")
	assert.Error(t, err)
}

func TestGetReferralCodeGeneratesLazily(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))

	user := models.User{Email: "lazy@example.com", DisplayName: "lazy", Verified: true}
	require.NoError(t, db.Create(&user).Error)

	res, err := service.GetReferralCode(user.ID)
	require.NoError(t, err)

	data := res.Data.(map[string]interface{})
	first := data["referral_code"].(string)
	assert.Len(t, first, 8)

	// Stable on repeat calls.
	res, err = service.GetReferralCode(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, res.Data.(map[string]interface{})["referral_code"])
}

func TestGetReferralStats(t *testing.T) {
	db := newTestDB(t)
	service := NewReferralService(db, NewHelperService(db))
	seedReferralSettings(t, service)

	referrer := createUser(t, service, "ref@example.com", "CODEREF3", "")
	newcomer := createUser(t, service, "new@example.com", "CODENEW5", "")
	require.NoError(t, service.ProcessReferral(newcomer.ID, "CODEREF3"))

	res, err := service.GetReferralStats(referrer.ID)
	require.NoError(t, err)

	data := res.Data.(map[string]interface{})
	assert.Equal(t, 1, data["referral_count"])
	assert.Equal(t, 100.0, data["total_referral_points"])
	assert.Len(t, data["referrals"].([]models.Referral), 1)
}
