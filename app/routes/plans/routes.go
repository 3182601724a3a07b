package plans

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupPlansRoutes(app *fiber.App) {
	api := app.Group("/api/plans", auth.AuthMiddleware)

	// Any authenticated user can read the menu
	api.Get("/", func(c *fiber.Ctx) error {
		return GetPlansAPI(c, config.GetDB())
	})
	api.Get("/current", func(c *fiber.Ctx) error {
		return GetCurrentPlanAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPlanByIDAPI(c, config.GetDB())
	})

	// Authoring is admin only
	admin := api.Group("/", auth.AdminMiddleware)
	admin.Post("/", func(c *fiber.Ctx) error {
		return CreatePlanAPI(c, config.GetDB())
	})
	admin.Put("/:id", func(c *fiber.Ctx) error {
		return UpdatePlanAPI(c, config.GetDB())
	})
	admin.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePlanAPI(c, config.GetDB())
	})
}
