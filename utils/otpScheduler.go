package utils

import (
	"lms/database"
	"lms/models"
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeOTPScheduler sets up the nightly cleanup of stale OTP rows
func InitializeOTPScheduler() {
	log.Println("[OTP-SCHEDULER] Initializing OTP cleanup scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[OTP-SCHEDULER] Running daily OTP cleanup...")
		PurgeStaleOTPs()
	})

	c.Start()
	log.Println("[OTP-SCHEDULER] OTP cleanup scheduler started - runs daily at 3 AM")
}

// PurgeStaleOTPs soft-deletes OTP rows that are used or expired before today.
func PurgeStaleOTPs() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay()

	result := db.Model(&models.OTP{}).
		Where("is_deleted = ?", false).
		Where("is_used = ? OR expires_at < ?", true, cutoff).
		Update("is_deleted", true)
	if result.Error != nil {
		log.Printf("[OTP-SCHEDULER] Error purging OTPs: %v", result.Error)
		return
	}

	log.Printf("[OTP-SCHEDULER] Purged %d stale OTP rows", result.RowsAffected)
}
