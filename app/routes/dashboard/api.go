package dashboard

import (
	"database/sql"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// HealthAPI reports service and database health
func HealthAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "down",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
	})
}

// AdminDashboardAPI returns the headline counts for the admin landing page
func AdminDashboardAPI(c *fiber.Ctx, db *sql.DB) error {
	today := database.CivilDay(time.Now())

	data, err := database.GetAdminDashboard(db, today)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// TeacherDashboardAPI returns the teacher's view: today's meals, the current
// menu, recent history and their latest bill.
func TeacherDashboardAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := auth.CurrentUserID(c)
	today := database.CivilDay(time.Now())

	todayRecord, err := database.GetAttendanceByTeacherAndDate(db, userID, today)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	recent, err := database.ListAttendanceByTeacher(db, userID, 7)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	plan, err := database.GetLatestWeeklyPlan(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	latestBill, err := database.GetLatestBillForTeacher(db, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	outstanding, err := database.SumUnpaidBalance(db, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"today":             todayRecord,
			"recent_attendance": recent,
			"current_plan":      plan,
			"latest_bill":       latestBill,
			"outstanding":       outstanding,
		},
	})
}
