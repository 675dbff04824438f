package main

import (
	"fmt"
	"log"
	"os"

	"earnings-service/internal/database"
	"earnings-service/internal/services"

	"github.com/joho/godotenv"
)

// Standalone profit-crediting invocation for an external scheduler:
//
//	profits daily
//	profits monthly
//
// Exits 0 when the run completes, even with per-row errors (the run is
// idempotent and the next invocation retries the failed rows); exits non-zero
// only when the run itself could not start.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: profits daily|monthly")
		os.Exit(2)
	}
	mode := os.Args[1]
	if mode != services.ProfitModeDaily && mode != services.ProfitModeMonthly {
		fmt.Fprintf(os.Stderr, "unknown mode %q: want daily or monthly\n", mode)
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	database.Connect()
	db := database.DB

	helperService := services.NewHelperService(db)
	profitService := services.NewProfitService(db, helperService)

	report, err := profitService.AddProfits(mode)
	if err != nil {
		log.Printf("Profit run (%s) aborted: %v", mode, err)
		os.Exit(1)
	}

	for _, rowErr := range report.Errors {
		log.Printf("Row error: %s", rowErr)
	}
	log.Printf("Profit run (%s) done: credited=%d skipped=%d errors=%d",
		mode, report.Credited, report.Skipped, len(report.Errors))
}
