package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePurchaseScheduler sets up the abandoned-purchase janitor
func InitializePurchaseScheduler() {
	log.Println("[PURCHASE-SCHEDULER] Initializing purchase scheduler...")

	c := cron.New()

	// Run daily at 3 AM to fail out abandoned pending purchases
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PURCHASE-SCHEDULER] Running daily pending purchase check...")
		ExpireStalePurchases()
	})

	c.Start()
	log.Println("[PURCHASE-SCHEDULER] Purchase scheduler started - runs daily at 3 AM")
}

// ExpireStalePurchases marks pending purchases older than 24h as failed.
// A purchase left pending means the simulated checkout never concluded.
func ExpireStalePurchases() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&models.Purchase{}).
		Where("status = ? AND created_at < ?", models.PurchasePending, cutoff).
		Update("status", models.PurchaseFailed)
	if result.Error != nil {
		log.Printf("[PURCHASE-SCHEDULER] Error expiring stale purchases: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[PURCHASE-SCHEDULER] Marked %d stale purchases as failed", result.RowsAffected)
	}
}
