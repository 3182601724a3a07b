package users

import (
	"database/sql"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// GetUsersAPI returns all users
func GetUsersAPI(c *fiber.Ctx, db *sql.DB) error {
	users, err := database.GetAllUsers(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

// GetUserByIDAPI returns a specific user by ID
func GetUserByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")

	user, err := database.GetUserByID(db, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// CreateUserAPI creates a new user
func CreateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		IsAdmin:  req.IsAdmin,
	}

	if err := database.CreateUser(db, user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
		"message": "User created successfully",
	})
}

// UpdateUserAPI updates an existing user
func UpdateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	user := &models.User{
		ID:       userID,
		Email:    req.Email,
		FullName: req.FullName,
		IsAdmin:  req.IsAdmin,
	}

	if err := database.UpdateUser(db, user); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
	})
}

// DeleteUserAPI soft-deletes a user
func DeleteUserAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")

	// An admin cannot delete their own account
	if userID == c.Locals("user_id") {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
	}

	if err := database.DeleteUser(db, userID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

// ResetPasswordAPI sets a fresh password for a user
func ResetPasswordAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Params("id")

	type ResetPasswordRequest struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	if err := database.ResetUserPassword(db, userID, req.NewPassword); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset password")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}
