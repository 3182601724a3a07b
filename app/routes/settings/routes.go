package settings

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App) {
	api := app.Group("/api/settings", auth.AuthMiddleware, auth.AdminMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, config.GetDB())
	})
	api.Get("/:key", func(c *fiber.Ctx) error {
		return GetSettingAPI(c, config.GetDB())
	})
	api.Put("/:key", func(c *fiber.Ctx) error {
		return SetSettingAPI(c, config.GetDB())
	})
}
