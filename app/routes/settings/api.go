package settings

import (
	"database/sql"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetSettingsAPI returns every configuration key/value pair
func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	settings, err := database.ListSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch settings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    settings,
	})
}

// GetSettingAPI returns a single setting by key
func GetSettingAPI(c *fiber.Ctx, db *sql.DB) error {
	key := c.Params("key")

	value, err := database.GetSetting(db, key)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch setting")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.Setting{Key: key, Value: value},
	})
}

// SetSettingAPI upserts a setting. The water fee value must parse as a
// non-negative decimal, other keys are stored as-is.
func SetSettingAPI(c *fiber.Ctx, db *sql.DB) error {
	key := c.Params("key")

	type SettingRequest struct {
		Value string `json:"value"`
	}
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if key == models.SettingWaterFee {
		fee, err := decimal.NewFromString(req.Value)
		if err != nil || fee.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Water fee must be a non-negative number")
		}
	}

	if err := database.SetSetting(db, key, req.Value); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save setting")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.Setting{Key: key, Value: req.Value},
		"message": "Setting saved successfully",
	})
}
