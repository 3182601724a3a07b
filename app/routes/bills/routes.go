package bills

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupBillsRoutes(app *fiber.App) {
	api := app.Group("/api/bills", auth.AuthMiddleware)

	// Teacher self-service
	api.Get("/mine", func(c *fiber.Ctx) error {
		return GetMyBillsAPI(c, config.GetDB())
	})
	api.Get("/mine/latest", func(c *fiber.Ctx) error {
		return GetMyLatestBillAPI(c, config.GetDB())
	})
	api.Get("/mine/:id", func(c *fiber.Ctx) error {
		return GetMyBillByIDAPI(c, config.GetDB())
	})
	api.Post("/mine/:id/pay", func(c *fiber.Ctx) error {
		return PayMyBillAPI(c, config.GetDB())
	})

	// Admin
	admin := api.Group("/", auth.AdminMiddleware)
	admin.Get("/", func(c *fiber.Ctx) error {
		return GetBillsAPI(c, config.GetDB())
	})
	admin.Get("/:id", func(c *fiber.Ctx) error {
		return GetBillByIDAPI(c, config.GetDB())
	})
	admin.Post("/:id/mark-paid", func(c *fiber.Ctx) error {
		return MarkBillPaidAPI(c, config.GetDB())
	})
}
