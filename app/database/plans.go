package database

import (
	"database/sql"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/models"
)

// CreateWeeklyPlan inserts a plan and its days in one transaction.
func CreateWeeklyPlan(db *sql.DB, plan *models.WeeklyPlan) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO weekly_plans (week_start, created_by_id, created_at)
			  VALUES ($1, NULLIF($2, '')::uuid, NOW()) RETURNING id, created_at`
	if err := tx.QueryRow(query, plan.WeekStart, plan.CreatedByID).Scan(&plan.ID, &plan.CreatedAt); err != nil {
		return err
	}

	dayQuery := `INSERT INTO weekly_plan_days (weekly_plan_id, day_of_week, breakfast_name, lunch_name, dinner_name, breakfast_price, lunch_price, dinner_price)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	for _, day := range plan.Days {
		err := tx.QueryRow(dayQuery, plan.ID, day.DayOfWeek,
			day.BreakfastName, day.LunchName, day.DinnerName,
			day.BreakfastPrice, day.LunchPrice, day.DinnerPrice,
		).Scan(&day.ID)
		if err != nil {
			return err
		}
		day.WeeklyPlanID = plan.ID
	}

	return tx.Commit()
}

// UpdateWeeklyPlan updates the week start and upserts the given days.
func UpdateWeeklyPlan(db *sql.DB, plan *models.WeeklyPlan) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE weekly_plans SET week_start = $1 WHERE id = $2`, plan.WeekStart, plan.ID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}

	dayQuery := `INSERT INTO weekly_plan_days (weekly_plan_id, day_of_week, breakfast_name, lunch_name, dinner_name, breakfast_price, lunch_price, dinner_price)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				 ON CONFLICT (weekly_plan_id, day_of_week)
				 DO UPDATE SET breakfast_name = EXCLUDED.breakfast_name, lunch_name = EXCLUDED.lunch_name,
							   dinner_name = EXCLUDED.dinner_name, breakfast_price = EXCLUDED.breakfast_price,
							   lunch_price = EXCLUDED.lunch_price, dinner_price = EXCLUDED.dinner_price`
	for _, day := range plan.Days {
		_, err := tx.Exec(dayQuery, plan.ID, day.DayOfWeek,
			day.BreakfastName, day.LunchName, day.DinnerName,
			day.BreakfastPrice, day.LunchPrice, day.DinnerPrice,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteWeeklyPlan removes a plan; its days cascade.
func DeleteWeeklyPlan(db *sql.DB, id int) error {
	result, err := db.Exec(`DELETE FROM weekly_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// GetWeeklyPlanByID fetches one plan with its days and creator.
func GetWeeklyPlanByID(db *sql.DB, id int) (*models.WeeklyPlan, error) {
	query := `SELECT p.id, p.week_start, COALESCE(p.created_by_id::text, ''), p.created_at,
			  COALESCE(u.email, ''), COALESCE(u.full_name, '')
			  FROM weekly_plans p
			  LEFT JOIN users u ON p.created_by_id = u.id
			  WHERE p.id = $1`

	plan := &models.WeeklyPlan{}
	var creatorEmail, creatorName string
	err := db.QueryRow(query, id).Scan(&plan.ID, &plan.WeekStart, &plan.CreatedByID, &plan.CreatedAt, &creatorEmail, &creatorName)
	if err != nil {
		return nil, err
	}
	if plan.CreatedByID != "" {
		plan.CreatedBy = &models.User{ID: plan.CreatedByID, Email: creatorEmail, FullName: creatorName}
	}

	plan.Days, err = getPlanDays(db, plan.ID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListWeeklyPlans returns all plans with their days, newest week first.
func ListWeeklyPlans(db *sql.DB) ([]*models.WeeklyPlan, error) {
	rows, err := db.Query(`SELECT id, week_start, COALESCE(created_by_id::text, ''), created_at
						   FROM weekly_plans ORDER BY week_start DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.WeeklyPlan
	for rows.Next() {
		plan := &models.WeeklyPlan{}
		if err := rows.Scan(&plan.ID, &plan.WeekStart, &plan.CreatedByID, &plan.CreatedAt); err != nil {
			continue
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		days, err := getPlanDays(db, plan.ID)
		if err != nil {
			return nil, err
		}
		plan.Days = days
	}
	return plans, nil
}

// GetLatestWeeklyPlan returns the plan with the most recent week start, or
// nil when no plans exist.
func GetLatestWeeklyPlan(db *sql.DB) (*models.WeeklyPlan, error) {
	plan := &models.WeeklyPlan{}
	err := db.QueryRow(`SELECT id, week_start, COALESCE(created_by_id::text, ''), created_at
						FROM weekly_plans ORDER BY week_start DESC LIMIT 1`).
		Scan(&plan.ID, &plan.WeekStart, &plan.CreatedByID, &plan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	plan.Days, err = getPlanDays(db, plan.ID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func getPlanDays(db *sql.DB, planID int) ([]*models.WeeklyPlanDay, error) {
	rows, err := db.Query(`SELECT id, weekly_plan_id, day_of_week, breakfast_name, lunch_name, dinner_name,
						   breakfast_price, lunch_price, dinner_price
						   FROM weekly_plan_days WHERE weekly_plan_id = $1 ORDER BY day_of_week`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*models.WeeklyPlanDay
	for rows.Next() {
		day := &models.WeeklyPlanDay{}
		err := rows.Scan(&day.ID, &day.WeeklyPlanID, &day.DayOfWeek,
			&day.BreakfastName, &day.LunchName, &day.DinnerName,
			&day.BreakfastPrice, &day.LunchPrice, &day.DinnerPrice)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// NextMonday returns the first Monday on or after the date. New plans default
// to starting there.
func NextMonday(from time.Time) time.Time {
	d := from
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
