package attendance

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAttendanceRoutes sets up the attendance routes
func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	// Teacher self-service routes
	api.Get("/mine", func(c *fiber.Ctx) error {
		return GetMyAttendanceAPI(c, config.GetDB())
	})

	api.Post("/toggle-meal", func(c *fiber.Ctx) error {
		return ToggleMealAPI(c, config.GetDB())
	})

	api.Post("/:id/dispute", func(c *fiber.Ctx) error {
		return RaiseDisputeAPI(c, config.GetDB())
	})

	// Admin routes
	admin := api.Group("/", auth.AdminMiddleware)

	admin.Get("/", func(c *fiber.Ctx) error {
		return GetAttendanceAPI(c, config.GetDB())
	})

	admin.Get("/disputes", func(c *fiber.Ctx) error {
		return GetDisputesAPI(c, config.GetDB())
	})

	admin.Get("/:id", func(c *fiber.Ctx) error {
		return GetAttendanceByIDAPI(c, config.GetDB())
	})

	admin.Post("/", func(c *fiber.Ctx) error {
		return CreateAttendanceAPI(c, config.GetDB())
	})

	admin.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateAttendanceAPI(c, config.GetDB())
	})

	admin.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteAttendanceAPI(c, config.GetDB())
	})

	admin.Post("/:id/verify", func(c *fiber.Ctx) error {
		return VerifyAttendanceAPI(c, config.GetDB())
	})

	admin.Post("/:id/dispute/approve", func(c *fiber.Ctx) error {
		return ApproveDisputeAPI(c, config.GetDB())
	})

	admin.Post("/:id/dispute/reject", func(c *fiber.Ctx) error {
		return RejectDisputeAPI(c, config.GetDB())
	})
}
