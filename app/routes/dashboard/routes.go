package dashboard

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return HealthAPI(c, config.GetDB())
	})

	api := app.Group("/api/dashboard", auth.AuthMiddleware)
	api.Get("/me", func(c *fiber.Ctx) error {
		return TeacherDashboardAPI(c, config.GetDB())
	})
	api.Get("/admin", auth.AdminMiddleware, func(c *fiber.Ctx) error {
		return AdminDashboardAPI(c, config.GetDB())
	})
}
