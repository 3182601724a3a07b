package database

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// AdminDashboard holds the headline counts for the admin landing page.
type AdminDashboard struct {
	TeacherCount     int             `json:"teacher_count"`
	PlanCount        int             `json:"plan_count"`
	TodayBreakfasts  int             `json:"today_breakfasts"`
	TodayLunches     int             `json:"today_lunches"`
	TodayDinners     int             `json:"today_dinners"`
	OpenDisputes     int             `json:"open_disputes"`
	PendingBills     int             `json:"pending_bills"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// GetAdminDashboard aggregates today's meals, open disputes and unpaid bills.
func GetAdminDashboard(db *sql.DB, today time.Time) (*AdminDashboard, error) {
	d := &AdminDashboard{}

	err := db.QueryRow(`SELECT COUNT(*) FROM users
						WHERE is_admin = false AND deleted_at IS NULL`).Scan(&d.TeacherCount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM weekly_plans`).Scan(&d.PlanCount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT
						COALESCE(SUM(CASE WHEN breakfast THEN 1 ELSE 0 END), 0),
						COALESCE(SUM(CASE WHEN lunch THEN 1 ELSE 0 END), 0),
						COALESCE(SUM(CASE WHEN dinner THEN 1 ELSE 0 END), 0)
					   FROM attendances WHERE date = $1`, today).
		Scan(&d.TodayBreakfasts, &d.TodayLunches, &d.TodayDinners)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM attendances
					   WHERE dispute_status = 'Raised'`).Scan(&d.OpenDisputes)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_due - paid_amount), 0)
					   FROM bills WHERE status != 'Paid'`).
		Scan(&d.PendingBills, &d.TotalOutstanding)
	if err != nil {
		return nil, err
	}

	return d, nil
}
