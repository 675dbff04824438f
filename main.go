package main

import (
	"log"
	"os"

	"earnings-service/internal/database"
	"earnings-service/internal/handlers"
	"earnings-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	helperService := services.NewHelperService(db)
	identityClient := services.NewIdentityClient()
	settingsService := services.NewSettingsService(db)
	referralService := services.NewReferralService(db, helperService)
	profitService := services.NewProfitService(db, helperService)
	withdrawalService := services.NewWithdrawalService(db, settingsService, helperService)
	offerService := services.NewOfferService(db)
	playerService := services.NewPlayerService(db, referralService, identityClient, asynqClient)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the Earnings service",
		})
	})

	handlers.RegisterRoutes(r, handlers.Services{
		DB:          db,
		Identity:    identityClient,
		Players:     playerService,
		Withdrawals: withdrawalService,
		Referrals:   referralService,
		Offers:      offerService,
		Settings:    settingsService,
		Profits:     profitService,
		Queue:       asynqClient,
	})

	// Start Cron Schedulers
	profitService.StartScheduler()
	offerService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
