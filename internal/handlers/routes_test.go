package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"earnings-service/internal/database"
	"earnings-service/internal/models"
	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateWith(db))

	helper := services.NewHelperService(db)
	referral := services.NewReferralService(db, helper)
	settings := services.NewSettingsService(db)

	r := gin.New()
	RegisterRoutes(r, Services{
		DB:          db,
		Players:     services.NewPlayerService(db, referral, nil, nil),
		Withdrawals: services.NewWithdrawalService(db, settings, helper),
		Referrals:   referral,
		Offers:      services.NewOfferService(db),
		Settings:    settings,
		Profits:     services.NewProfitService(db, helper),
	})
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r, db := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{
		"display_name": "New User",
		"email":        "new@example.com",
		"password":     "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Missing required fields fail binding.
	w = doJSON(r, http.MethodPost, "/auth/register", gin.H{"email": "x@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthenticatedRoutesRequireUserHeader(t *testing.T) {
	r, db := newTestRouter(t)

	user := models.User{Email: "me@example.com", DisplayName: "me"}
	require.NoError(t, db.Create(&user).Error)

	w := doJSON(r, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/profile", nil, map[string]string{
		"X-User-Id": fmt.Sprint(user.ID),
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdminRoutesRequireKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "console-key")
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/admin/settings/withdrawal", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/settings/withdrawal", nil, map[string]string{
		"X-Admin-Key": "console-key",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdminProfitRun(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "console-key")
	r, db := newTestRouter(t)

	user := models.User{Email: "sub@example.com", DisplayName: "sub"}
	require.NoError(t, db.Create(&user).Error)
	offer := models.Offer{Title: "Starter", DailyProfit: 10, Active: true}
	require.NoError(t, db.Create(&offer).Error)
	require.NoError(t, db.Create(&models.UserOffer{UserId: user.ID, OfferId: offer.ID, Active: true}).Error)

	// No queue configured: the run executes inline and returns the report.
	w := doJSON(r, http.MethodPost, "/admin/profits/run", gin.H{"mode": "daily"},
		map[string]string{"X-Admin-Key": "console-key"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var credited models.User
	require.NoError(t, db.First(&credited, user.ID).Error)
	assert.Equal(t, 10.0, credited.Balance)

	w = doJSON(r, http.MethodPost, "/admin/profits/run", gin.H{"mode": "weekly"},
		map[string]string{"X-Admin-Key": "console-key"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitWithdrawalMapsRejectionTo400(t *testing.T) {
	r, db := newTestRouter(t)

	user := models.User{Email: "poor@example.com", DisplayName: "poor", Balance: 5}
	require.NoError(t, db.Create(&user).Error)

	w := doJSON(r, http.MethodPost, "/withdrawals", gin.H{
		"type":   models.WithdrawalTypeBalance,
		"amount": 100,
		"method": "bank",
	}, map[string]string{"X-User-Id": fmt.Sprint(user.ID)})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient funds")
}
