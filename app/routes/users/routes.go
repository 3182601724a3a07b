package users

import (
	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupUsersRoutes sets up the user management routes (admin only)
func SetupUsersRoutes(app *fiber.App) {
	usersAPI := app.Group("/api/users")
	usersAPI.Use(auth.AuthMiddleware)
	usersAPI.Use(auth.AdminMiddleware)

	usersAPI.Get("/", func(c *fiber.Ctx) error {
		return GetUsersAPI(c, config.GetDB())
	})

	usersAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetUserByIDAPI(c, config.GetDB())
	})

	usersAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateUserAPI(c, config.GetDB())
	})

	usersAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateUserAPI(c, config.GetDB())
	})

	usersAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteUserAPI(c, config.GetDB())
	})

	usersAPI.Post("/:id/reset-password", func(c *fiber.Ctx) error {
		return ResetPasswordAPI(c, config.GetDB())
	})
}
