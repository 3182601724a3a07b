package plans

import (
	"database/sql"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type PlanDayRequest struct {
	DayOfWeek      int             `json:"day_of_week" validate:"gte=0,lte=6"`
	BreakfastName  string          `json:"breakfast_name"`
	LunchName      string          `json:"lunch_name"`
	DinnerName     string          `json:"dinner_name"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price"`
	LunchPrice     decimal.Decimal `json:"lunch_price"`
	DinnerPrice    decimal.Decimal `json:"dinner_price"`
}

type PlanRequest struct {
	WeekStart string           `json:"week_start"`
	Days      []PlanDayRequest `json:"days" validate:"dive"`
}

// buildPlanDays normalizes the submitted days into a full 7-day week. Days
// the client omits get default names and zero prices, duplicate weekdays keep
// the last submission.
func buildPlanDays(reqDays []PlanDayRequest) []*models.WeeklyPlanDay {
	byDay := make(map[int]*models.WeeklyPlanDay, 7)
	for _, d := range reqDays {
		day := &models.WeeklyPlanDay{
			DayOfWeek:      d.DayOfWeek,
			BreakfastName:  d.BreakfastName,
			LunchName:      d.LunchName,
			DinnerName:     d.DinnerName,
			BreakfastPrice: d.BreakfastPrice,
			LunchPrice:     d.LunchPrice,
			DinnerPrice:    d.DinnerPrice,
		}
		if day.BreakfastName == "" {
			day.BreakfastName = models.DefaultBreakfastName
		}
		if day.LunchName == "" {
			day.LunchName = models.DefaultLunchName
		}
		if day.DinnerName == "" {
			day.DinnerName = models.DefaultDinnerName
		}
		byDay[d.DayOfWeek] = day
	}

	days := make([]*models.WeeklyPlanDay, 0, 7)
	for dow := 0; dow < 7; dow++ {
		if day, ok := byDay[dow]; ok {
			days = append(days, day)
		} else {
			days = append(days, models.NewDefaultPlanDay(dow))
		}
	}
	return days
}

// GetPlansAPI returns all weekly plans, newest week first
func GetPlansAPI(c *fiber.Ctx, db *sql.DB) error {
	plans, err := database.ListWeeklyPlans(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weekly plans")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plans,
	})
}

// GetCurrentPlanAPI returns the plan with the most recent week start
func GetCurrentPlanAPI(c *fiber.Ctx, db *sql.DB) error {
	plan, err := database.GetLatestWeeklyPlan(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch current plan")
	}
	if plan == nil {
		return fiber.NewError(fiber.StatusNotFound, "No weekly plan has been created yet")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

// GetPlanByIDAPI returns a specific weekly plan with its days
func GetPlanByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	plan, err := database.GetWeeklyPlanByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Weekly plan not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weekly plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

// CreatePlanAPI creates a weekly plan for the given week start date
func CreatePlanAPI(c *fiber.Ctx, db *sql.DB) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	// An omitted week start means the upcoming week
	weekStart := database.NextMonday(time.Now())
	if req.WeekStart != "" {
		parsed, err := time.Parse("2006-01-02", req.WeekStart)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid week_start, expected YYYY-MM-DD")
		}
		weekStart = parsed
	}

	plan := &models.WeeklyPlan{
		WeekStart:   weekStart,
		CreatedByID: auth.CurrentUserID(c),
		Days:        buildPlanDays(req.Days),
	}

	if err := database.CreateWeeklyPlan(db, plan); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create weekly plan")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    plan,
		"message": "Weekly plan created successfully",
	})
}

// UpdatePlanAPI replaces the week start and days of an existing plan
func UpdatePlanAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid week_start, expected YYYY-MM-DD")
	}

	plan := &models.WeeklyPlan{
		ID:        id,
		WeekStart: weekStart,
		Days:      buildPlanDays(req.Days),
	}

	if err := database.UpdateWeeklyPlan(db, plan); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Weekly plan not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update weekly plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
		"message": "Weekly plan updated successfully",
	})
}

// DeletePlanAPI deletes a weekly plan and its days
func DeletePlanAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	if err := database.DeleteWeeklyPlan(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Weekly plan not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete weekly plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Weekly plan deleted successfully",
	})
}
