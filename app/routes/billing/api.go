package billing

import (
	"database/sql"

	"github.com/Wahla-007/Suf-Proj/app/services"
	"github.com/gofiber/fiber/v2"
)

type GenerateRequest struct {
	Year       int  `json:"year"`
	Month      int  `json:"month"`
	AllowRerun bool `json:"allow_rerun"`
}

// GenerateBillsAPI runs monthly bill generation for every billable teacher.
// The run never aborts on a single teacher, their failures come back in the
// report's errors list.
func GenerateBillsAPI(c *fiber.Ctx, db *sql.DB) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := services.ValidatePeriod(req.Year, req.Month); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := services.GenerateBills(db, req.Year, req.Month, req.AllowRerun)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Bill generation failed: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    report,
		"message": "Bill generation completed",
	})
}
