package bills

import (
	"database/sql"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetBillsAPI returns bills with optional teacher, year and month filters
func GetBillsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.BillFilters{
		TeacherID: c.Query("teacher_id"),
		Year:      c.QueryInt("year", 0),
		Month:     c.QueryInt("month", 0),
	}

	bills, err := database.ListBills(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bills")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bills,
	})
}

// GetBillByIDAPI returns a bill with its lines and payments
func GetBillByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid bill id")
	}

	bill, err := database.GetBillByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Bill not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bill")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bill,
	})
}

// MarkBillPaidAPI settles a pending bill in full. Paid bills stay paid.
func MarkBillPaidAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid bill id")
	}

	bill, err := database.MarkBillPaid(db, id, uuid.New().String())
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusConflict, "Bill not found or already paid")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark bill as paid")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bill,
		"message": "Bill marked as paid",
	})
}

// GetMyBillsAPI returns the authenticated teacher's bills
func GetMyBillsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.BillFilters{
		TeacherID: auth.CurrentUserID(c),
		Year:      c.QueryInt("year", 0),
		Month:     c.QueryInt("month", 0),
	}

	bills, err := database.ListBills(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bills")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bills,
	})
}

// GetMyLatestBillAPI returns the authenticated teacher's most recent bill
func GetMyLatestBillAPI(c *fiber.Ctx, db *sql.DB) error {
	bill, err := database.GetLatestBillForTeacher(db, auth.CurrentUserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bill")
	}
	if bill == nil {
		return fiber.NewError(fiber.StatusNotFound, "No bill has been generated for you yet")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bill,
	})
}

// getOwnBill loads a bill and enforces that it belongs to the caller
func getOwnBill(c *fiber.Ctx, db *sql.DB) (*models.Bill, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid bill id")
	}

	bill, err := database.GetBillByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fiber.NewError(fiber.StatusNotFound, "Bill not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bill")
	}
	if bill.TeacherID != auth.CurrentUserID(c) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Bill not found")
	}
	return bill, nil
}

// GetMyBillByIDAPI returns one of the authenticated teacher's bills
func GetMyBillByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	bill, err := getOwnBill(c, db)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bill,
	})
}

// PayMyBillAPI settles the caller's own pending bill with a simulated payment
func PayMyBillAPI(c *fiber.Ctx, db *sql.DB) error {
	bill, err := getOwnBill(c, db)
	if err != nil {
		return err
	}
	if bill.Status == models.BillPaid {
		return fiber.NewError(fiber.StatusConflict, "This bill has already been paid")
	}

	paid, err := database.MarkBillPaid(db, bill.ID, uuid.New().String())
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusConflict, "This bill has already been paid")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    paid,
		"message": "Payment recorded successfully",
	})
}
