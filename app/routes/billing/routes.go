package billing

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupBillingRoutes(app *fiber.App) {
	api := app.Group("/api/billing", auth.AuthMiddleware, auth.AdminMiddleware)

	api.Post("/generate", func(c *fiber.Ctx) error {
		return GenerateBillsAPI(c, config.GetDB())
	})
}
