package handlers

import (
	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	DB          *gorm.DB
	Identity    *services.IdentityClient
	Players     *services.PlayerService
	Withdrawals *services.WithdrawalService
	Referrals   *services.ReferralService
	Offers      *services.OfferService
	Settings    *services.SettingsService
	Profits     *services.ProfitService
	Queue       *asynq.Client
}

// RegisterRoutes wires the user and admin route groups.
func RegisterRoutes(r *gin.Engine, deps Services) {
	players := &PlayerHandler{Players: deps.Players}
	withdrawals := &WithdrawalHandler{Withdrawals: deps.Withdrawals}
	referrals := &ReferralHandler{Referrals: deps.Referrals}
	offers := &OfferHandler{Offers: deps.Offers}
	settings := &SettingsHandler{Settings: deps.Settings}
	profits := &ProfitHandler{Profit: deps.Profits, Queue: deps.Queue}

	r.POST("/auth/register", players.Register)
	r.GET("/offers", offers.List)

	authed := r.Group("/", Authenticated(deps.DB, deps.Identity))
	{
		authed.GET("/profile", players.Profile)
		authed.GET("/transactions", players.Transactions)
		authed.POST("/offers/join", offers.Join)
		authed.POST("/withdrawals", withdrawals.Submit)
		authed.GET("/withdrawals", withdrawals.MyWithdrawals)
		authed.GET("/referrals/code", referrals.MyCode)
		authed.GET("/referrals/stats", referrals.MyStats)
	}

	admin := r.Group("/admin", AdminOnly())
	{
		admin.POST("/offers", offers.Save)
		admin.GET("/withdrawals", withdrawals.List)
		admin.POST("/withdrawals/:id/pay", withdrawals.Pay)
		admin.POST("/withdrawals/:id/reject", withdrawals.Reject)
		admin.GET("/settings/withdrawal", settings.GetWithdrawalSettings)
		admin.PUT("/settings/withdrawal/time-slots", settings.SaveTimeSlots)
		admin.PUT("/settings/withdrawal/package-limits", settings.SavePackageLimits)
		admin.PUT("/settings/referral", referrals.SaveSettings)
		admin.POST("/profits/run", profits.Run)
	}
}
