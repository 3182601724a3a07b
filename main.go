package main

import (
	"log"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/routes/attendance"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/Wahla-007/Suf-Proj/app/routes/billing"
	"github.com/Wahla-007/Suf-Proj/app/routes/bills"
	"github.com/Wahla-007/Suf-Proj/app/routes/dashboard"
	"github.com/Wahla-007/Suf-Proj/app/routes/plans"
	"github.com/Wahla-007/Suf-Proj/app/routes/reports"
	"github.com/Wahla-007/Suf-Proj/app/routes/settings"
	"github.com/Wahla-007/Suf-Proj/app/routes/users"
	"github.com/Wahla-007/Suf-Proj/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// apiErrorHandler renders every error as a JSON envelope
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Attendance days and billing periods are civil dates in Pakistan time
	loc, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Karachi location, falling back to UTC+5: %v", err)
		time.Local = time.FixedZone("PKT", 5*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start monthly billing scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Mess Management",
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	users.SetupUsersRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	plans.SetupPlansRoutes(app)
	bills.SetupBillsRoutes(app)
	billing.SetupBillingRoutes(app)
	reports.SetupReportsRoutes(app)
	settings.SetupSettingsRoutes(app)
	dashboard.SetupDashboardRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	// Start server
	addr := ":" + config.Getenv("PORT", "8080")
	log.Println("Server starting on " + addr)
	log.Fatal(app.Listen(addr))
}
