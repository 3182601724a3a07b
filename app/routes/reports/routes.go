package reports

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/reports", auth.AuthMiddleware)

	// Teacher self-service exports
	api.Get("/my-attendance", func(c *fiber.Ctx) error {
		return MyAttendanceCSV(c, config.GetDB())
	})
	api.Get("/my-bill", func(c *fiber.Ctx) error {
		return MyLatestBillCSV(c, config.GetDB())
	})
	api.Get("/my-bill/:id", func(c *fiber.Ctx) error {
		return MyBillCSV(c, config.GetDB())
	})

	// Admin exports
	admin := api.Group("/", auth.AdminMiddleware)
	admin.Get("/bills", func(c *fiber.Ctx) error {
		return BillsCSV(c, config.GetDB())
	})
	admin.Get("/attendance", func(c *fiber.Ctx) error {
		return AttendanceCSV(c, config.GetDB())
	})
	admin.Get("/users", func(c *fiber.Ctx) error {
		return UsersCSV(c, config.GetDB())
	})
	admin.Get("/financial-summary", func(c *fiber.Ctx) error {
		return FinancialSummaryCSV(c, config.GetDB())
	})
}
