package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
)

// StartScheduler starts the background task scheduler. On the first day of
// each month it generates bills for the month that just ended. Generation
// skips teachers who already have a bill for the period, so a timer firing
// twice in the same minute window is harmless.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Nightly refresh token cleanup at 3:00 AM
			if now.Hour() == 3 && now.Minute() == 0 {
				if n, err := database.DeleteExpiredRefreshTokens(db); err != nil {
					log.Printf("Refresh token cleanup failed: %v", err)
				} else if n > 0 {
					log.Printf("Removed %d expired refresh tokens", n)
				}
			}

			// Trigger at 6:05 AM on the 1st
			if now.Day() == 1 && now.Hour() == 6 && now.Minute() == 5 {
				prev := now.AddDate(0, -1, 0)
				log.Printf("Triggering scheduled bill generation for %d/%02d...", prev.Year(), prev.Month())

				report, err := GenerateBills(db, prev.Year(), int(prev.Month()), false)
				if err != nil {
					log.Printf("Scheduled bill generation failed: %v", err)
					continue
				}
				log.Printf("Scheduled bill generation done: %d generated, %d skipped, %d errors",
					report.GeneratedCount, report.SkippedCount, len(report.Errors))
			}
		}
	}()
}
