package attendance

import (
	"database/sql"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AttendanceRequest represents the request body for creating or updating an
// attendance record
type AttendanceRequest struct {
	TeacherID        string `json:"teacher_id" validate:"required,uuid"`
	Date             string `json:"date" validate:"required"`
	Breakfast        bool   `json:"breakfast"`
	Lunch            bool   `json:"lunch"`
	Dinner           bool   `json:"dinner"`
	MarkedBy         string `json:"marked_by"`
	IsVerified       *bool  `json:"is_verified"`
	VerificationNote string `json:"verification_note"`
}

func parseDate(value string) (*time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetAttendanceAPI returns attendance records with optional filtering
func GetAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.AttendanceFilters{
		TeacherSearch: c.Query("teacher_search"),
		Limit:         c.QueryInt("limit", 0),
		Offset:        c.QueryInt("offset", 0),
	}

	if v := c.Query("start_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		}
		filters.StartDate = d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		}
		filters.EndDate = d
	}
	if v := c.Query("verified"); v != "" {
		verified := v == "true"
		filters.Verified = &verified
	}

	records, err := database.ListAttendance(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
	})
}

// GetAttendanceByIDAPI returns a specific attendance record
func GetAttendanceByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	record, err := database.GetAttendanceByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

// CreateAttendanceAPI creates an attendance record. A teacher can only have
// one record per calendar day.
func CreateAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	existing, err := database.GetAttendanceByTeacherAndDate(db, req.TeacherID, *date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing attendance")
	}
	if existing != nil {
		return fiber.NewError(fiber.StatusConflict, "Attendance for this teacher on this date already exists")
	}

	record := &models.Attendance{
		TeacherID:        req.TeacherID,
		Date:             date,
		Breakfast:        req.Breakfast,
		Lunch:            req.Lunch,
		Dinner:           req.Dinner,
		MarkedBy:         req.MarkedBy,
		IsVerified:       req.IsVerified,
		VerificationNote: req.VerificationNote,
		DisputeStatus:    models.DisputeNone,
	}
	if record.MarkedBy == "" {
		record.MarkedBy, _ = c.Locals("user_email").(string)
	}

	if err := database.CreateAttendance(db, record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create attendance record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    record,
		"message": "Attendance record created successfully",
	})
}

// UpdateAttendanceAPI updates an attendance record
func UpdateAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	record := &models.Attendance{
		ID:               id,
		TeacherID:        req.TeacherID,
		Date:             date,
		Breakfast:        req.Breakfast,
		Lunch:            req.Lunch,
		Dinner:           req.Dinner,
		MarkedBy:         req.MarkedBy,
		IsVerified:       req.IsVerified,
		VerificationNote: req.VerificationNote,
	}

	if err := database.UpdateAttendance(db, record); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update attendance record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Attendance record updated successfully",
	})
}

// DeleteAttendanceAPI deletes an attendance record
func DeleteAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	if err := database.DeleteAttendance(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attendance record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Attendance record deleted successfully",
	})
}

// VerifyAttendanceAPI records an admin verification decision
func VerifyAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	type VerifyRequest struct {
		Verified bool   `json:"verified"`
		Note     string `json:"note"`
	}
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := database.VerifyAttendance(db, id, req.Verified, req.Note); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify attendance record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Attendance record verified successfully",
	})
}

// GetMyAttendanceAPI returns the authenticated teacher's attendance history
func GetMyAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := auth.CurrentUserID(c)
	limit := c.QueryInt("limit", 0)

	records, err := database.ListAttendanceByTeacher(db, userID, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
	})
}

// ToggleMealAPI flips one of today's meal flags for the authenticated
// teacher, creating today's record when needed.
func ToggleMealAPI(c *fiber.Ctx, db *sql.DB) error {
	type ToggleRequest struct {
		MealType string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	}

	var req ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid meal type")
	}

	userID := auth.CurrentUserID(c)
	userEmail, _ := c.Locals("user_email").(string)
	today := database.CivilDay(time.Now())

	taken, err := database.ToggleMeal(db, userID, today, models.MealType(req.MealType), userEmail)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark meal")
	}

	status := "Skipped"
	if taken {
		status = "Confirmed"
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"is_taken": taken,
		"message":  req.MealType + " " + status,
	})
}

// RaiseDisputeAPI lets a teacher dispute one of their own records
func RaiseDisputeAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	type DisputeRequest struct {
		Reason string `json:"reason" validate:"required"`
	}
	var req DisputeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "A dispute reason is required")
	}

	userID := auth.CurrentUserID(c)
	if err := database.RaiseDispute(db, id, userID, req.Reason); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Record not found, not yours, or already disputed")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to raise dispute")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dispute raised successfully. Admin will review it.",
	})
}

// GetDisputesAPI returns all open disputes for admin review
func GetDisputesAPI(c *fiber.Ctx, db *sql.DB) error {
	disputes, err := database.ListDisputes(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch disputes")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    disputes,
	})
}

// ApproveDisputeAPI cancels the disputed record
func ApproveDisputeAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	if err := database.ApproveDispute(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "No open dispute found for this record")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to approve dispute")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dispute approved. Record has been cancelled.",
	})
}

// RejectDisputeAPI keeps the disputed record chargeable
func RejectDisputeAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	type RejectRequest struct {
		AdminNote string `json:"admin_note"`
	}
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := database.RejectDispute(db, id, req.AdminNote); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "No open dispute found for this record")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reject dispute")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dispute rejected. Record remains active.",
	})
}
