package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

// GenerationError records one teacher whose bill could not be generated.
type GenerationError struct {
	TeacherID string `json:"teacher_id"`
	Email     string `json:"email,omitempty"`
	Message   string `json:"message"`
}

// GenerationReport summarizes one billing run. A run always completes; bad
// teachers land in Errors instead of aborting the batch.
type GenerationReport struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	GeneratedCount int               `json:"generated_count"`
	SkippedCount   int               `json:"skipped_count"`
	Generated      []string          `json:"generated,omitempty"`
	Skipped        []string          `json:"skipped,omitempty"`
	Errors         []GenerationError `json:"errors,omitempty"`
}

// ValidatePeriod rejects out-of-range billing periods before any work starts.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("invalid year %d: must be between 2000 and 2100", year)
	}
	return nil
}

// PeriodRange returns the inclusive first and last calendar day of a period.
func PeriodRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// ResolvePlan picks the governing plan for a date: the plan whose 7-day
// window contains it. When no window matches, the plan with the latest week
// start wins, so a stale menu still prices meals instead of failing the run.
// Returns nil only when there are no plans at all.
func ResolvePlan(plans []*models.WeeklyPlan, date time.Time) *models.WeeklyPlan {
	for _, plan := range plans {
		if plan.Covers(date) {
			return plan
		}
	}

	var latest *models.WeeklyPlan
	for _, plan := range plans {
		if latest == nil || plan.WeekStart.After(latest.WeekStart) {
			latest = plan
		}
	}
	return latest
}

// BuildBill computes one teacher's bill for the period from in-memory
// snapshots. It is pure: no clock, no store, no shared state, so concurrent
// per-teacher computation needs no coordination.
//
// One line is emitted per meal flag set on each dated record inside the
// period, priced from the governing plan's matching weekday. Records without
// a date, or dated outside the period, are skipped. Missing plan days and
// missing plans degrade to zero prices and default meal names.
func BuildBill(teacherID string, records []*models.Attendance, plans []*models.WeeklyPlan,
	waterFee, previousDue decimal.Decimal, year, month int) *models.Bill {

	start, end := PeriodRange(year, month)

	bill := &models.Bill{
		TeacherID:   teacherID,
		Year:        year,
		Month:       month,
		Status:      models.BillPending,
		WaterFee:    waterFee,
		PreviousDue: previousDue,
		PaidAmount:  decimal.Zero,
	}

	total := decimal.Zero
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		date := time.Date(record.Date.Year(), record.Date.Month(), record.Date.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(start) || date.After(end) {
			continue
		}

		var planDay *models.WeeklyPlanDay
		if plan := ResolvePlan(plans, date); plan != nil {
			planDay = plan.DayFor(date.Weekday())
		}
		if planDay == nil {
			planDay = models.NewDefaultPlanDay(int(date.Weekday()))
		}

		if record.Breakfast {
			bill.Lines = append(bill.Lines, &models.BillLine{
				Date: date, MealType: planDay.BreakfastName, Price: planDay.BreakfastPrice, IsVerified: true,
			})
			total = total.Add(planDay.BreakfastPrice)
		}
		if record.Lunch {
			bill.Lines = append(bill.Lines, &models.BillLine{
				Date: date, MealType: planDay.LunchName, Price: planDay.LunchPrice, IsVerified: true,
			})
			total = total.Add(planDay.LunchPrice)
		}
		if record.Dinner {
			bill.Lines = append(bill.Lines, &models.BillLine{
				Date: date, MealType: planDay.DinnerName, Price: planDay.DinnerPrice, IsVerified: true,
			})
			total = total.Add(planDay.DinnerPrice)
		}
	}

	bill.TotalMealsAmount = total
	bill.TotalDue = total.Add(waterFee).Add(previousDue)
	return bill
}

// GenerateBills runs the billing batch for a period: one bill per non-admin
// user, including users with no attendance (they still owe the water fee and
// any carry-forward due).
//
// A teacher who already has a bill for the period is skipped unless
// allowRerun is set; rerunning with the flag inserts a second bill for the
// period, which is how operators re-issue a corrected month.
//
// Only invalid input and an empty roster surface as errors; per-teacher
// failures are collected in the report and the batch continues.
func GenerateBills(db *sql.DB, year, month int, allowRerun bool) (*GenerationReport, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	log.Printf("Starting bill generation for %d/%02d", year, month)

	users, err := database.GetBillableUsers(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no non-admin users found to generate bills for")
	}

	plans, err := database.ListWeeklyPlans(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly plans: %w", err)
	}
	if len(plans) == 0 {
		log.Println("No weekly plans found - bills will be generated with zero prices")
	}

	waterFee, err := database.GetWaterFee(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load water fee: %w", err)
	}
	log.Printf("Water fee: %s", waterFee)

	start, end := PeriodRange(year, month)
	report := &GenerationReport{Year: year, Month: month}

	for _, user := range users {
		if !allowRerun {
			exists, err := database.BillExistsForPeriod(db, user.ID, year, month)
			if err != nil {
				report.Errors = append(report.Errors, GenerationError{
					TeacherID: user.ID, Email: user.Email,
					Message: fmt.Sprintf("could not check existing bills: %v", err),
				})
				continue
			}
			if exists {
				report.SkippedCount++
				report.Skipped = append(report.Skipped, fmt.Sprintf("%s: bill for %d/%02d already exists", user.Email, year, month))
				continue
			}
		}

		records, err := database.ListAttendanceForPeriod(db, user.ID, start, end)
		if err != nil {
			log.Printf("Error loading attendance for user %s: %v", user.ID, err)
			report.Errors = append(report.Errors, GenerationError{
				TeacherID: user.ID, Email: user.Email,
				Message: fmt.Sprintf("could not load attendance: %v", err),
			})
			continue
		}

		previousDue, err := database.SumUnpaidBalance(db, user.ID)
		if err != nil {
			// Degrade like the rest of the pipeline: an unreadable history
			// becomes a zero carry-forward, not a failed teacher.
			log.Printf("Could not calculate previous due for user %s: %v", user.ID, err)
			previousDue = decimal.Zero
		}

		bill := BuildBill(user.ID, records, plans, waterFee, previousDue, year, month)

		if err := database.SaveBill(db, bill); err != nil {
			log.Printf("Error saving bill for user %s: %v", user.ID, err)
			report.Errors = append(report.Errors, GenerationError{
				TeacherID: user.ID, Email: user.Email,
				Message: fmt.Sprintf("could not save bill: %v", err),
			})
			continue
		}

		report.GeneratedCount++
		report.Generated = append(report.Generated,
			fmt.Sprintf("%s: bill #%d, %d meals, total %s", user.Email, bill.ID, len(bill.Lines), bill.TotalDue.StringFixed(2)))
		log.Printf("Generated bill %d for user %s with %d lines, total %s",
			bill.ID, user.ID, len(bill.Lines), bill.TotalDue.StringFixed(2))
	}

	log.Printf("Bill generation for %d/%02d finished: %d generated, %d skipped, %d errors",
		year, month, report.GeneratedCount, report.SkippedCount, len(report.Errors))
	return report, nil
}
