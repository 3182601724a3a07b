package auth

import (
	"strings"

	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authAPI := app.Group("/api/auth")

	// Public routes
	authAPI.Post("/login", LoginAPI)
	authAPI.Post("/refresh", RefreshAPI)
	authAPI.Post("/logout", LogoutAPI)

	// Protected routes
	authAPI.Use(AuthMiddleware)
	authAPI.Get("/me", MeAPI)
	authAPI.Post("/revoke", RevokeAPI)
	authAPI.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the user context
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	user := &models.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		IsAdmin:  claims.IsAdmin,
	}

	// Set user context
	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("is_admin", user.IsAdmin)
	c.Locals("user", user)

	return c.Next()
}

// AdminMiddleware rejects non-admin users. It must run after AuthMiddleware.
func AdminMiddleware(c *fiber.Ctx) error {
	isAdmin, ok := c.Locals("is_admin").(bool)
	if !ok || !isAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
	return c.Next()
}

// CurrentUserID returns the authenticated user's id from the request context.
func CurrentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
