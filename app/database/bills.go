package database

import (
	"database/sql"
	"fmt"

	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

// BillFilters represents filtering options for bill listings
type BillFilters struct {
	TeacherID string
	Year      int
	Month     int
}

// SaveBill inserts a bill and its lines in one transaction and fills in the
// generated ids.
func SaveBill(db *sql.DB, bill *models.Bill) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bills (teacher_id, year, month, total_meals_amount, water_fee, previous_due, total_due, paid_amount, status, generated_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			  RETURNING id, generated_on`
	err = tx.QueryRow(query,
		bill.TeacherID, bill.Year, bill.Month,
		bill.TotalMealsAmount, bill.WaterFee, bill.PreviousDue, bill.TotalDue, bill.PaidAmount,
		bill.Status,
	).Scan(&bill.ID, &bill.GeneratedOn)
	if err != nil {
		return err
	}

	lineQuery := `INSERT INTO bill_lines (bill_id, date, meal_type, price, is_verified)
				  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for _, line := range bill.Lines {
		if err := tx.QueryRow(lineQuery, bill.ID, line.Date, line.MealType, line.Price, line.IsVerified).Scan(&line.ID); err != nil {
			return err
		}
		line.BillID = bill.ID
	}

	return tx.Commit()
}

// BillExistsForPeriod reports whether the teacher already has a bill for the
// (year, month) period.
func BillExistsForPeriod(db *sql.DB, teacherID string, year, month int) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM bills WHERE teacher_id = $1 AND year = $2 AND month = $3)`,
		teacherID, year, month).Scan(&exists)
	return exists, err
}

// SumUnpaidBalance returns the teacher's carry-forward due: the sum of
// (total_due - paid_amount) over every bill whose status is not Paid.
func SumUnpaidBalance(db *sql.DB, teacherID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := db.QueryRow(`SELECT COALESCE(SUM(total_due - paid_amount), 0)
						FROM bills WHERE teacher_id = $1 AND status != $2`,
		teacherID, models.BillPaid).Scan(&sum)
	return sum, err
}

const billColumns = `b.id, b.teacher_id, b.year, b.month, b.total_meals_amount, b.water_fee,
			  b.previous_due, b.total_due, b.paid_amount, b.status, b.generated_on, b.paid_on`

// ListBills returns bills matching the filters with teacher info, newest
// period first.
func ListBills(db *sql.DB, filters BillFilters) ([]*models.Bill, error) {
	query := `SELECT ` + billColumns + `, u.email, u.full_name
			  FROM bills b
			  JOIN users u ON b.teacher_id = u.id
			  WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if filters.TeacherID != "" {
		query += fmt.Sprintf(" AND b.teacher_id = $%d", argIndex)
		args = append(args, filters.TeacherID)
		argIndex++
	}
	if filters.Year > 0 {
		query += fmt.Sprintf(" AND b.year = $%d", argIndex)
		args = append(args, filters.Year)
		argIndex++
	}
	if filters.Month > 0 {
		query += fmt.Sprintf(" AND b.month = $%d", argIndex)
		args = append(args, filters.Month)
		argIndex++
	}

	query += " ORDER BY b.year DESC, b.month DESC, b.id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		teacher := &models.User{}
		err := rows.Scan(
			&bill.ID, &bill.TeacherID, &bill.Year, &bill.Month,
			&bill.TotalMealsAmount, &bill.WaterFee, &bill.PreviousDue, &bill.TotalDue, &bill.PaidAmount,
			&bill.Status, &bill.GeneratedOn, &bill.PaidOn,
			&teacher.Email, &teacher.FullName,
		)
		if err != nil {
			continue
		}
		teacher.ID = bill.TeacherID
		bill.Teacher = teacher
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// GetBillByID fetches one bill with its lines, payments and teacher.
func GetBillByID(db *sql.DB, id int) (*models.Bill, error) {
	query := `SELECT ` + billColumns + `, u.email, u.full_name
			  FROM bills b
			  JOIN users u ON b.teacher_id = u.id
			  WHERE b.id = $1`

	bill := &models.Bill{}
	teacher := &models.User{}
	err := db.QueryRow(query, id).Scan(
		&bill.ID, &bill.TeacherID, &bill.Year, &bill.Month,
		&bill.TotalMealsAmount, &bill.WaterFee, &bill.PreviousDue, &bill.TotalDue, &bill.PaidAmount,
		&bill.Status, &bill.GeneratedOn, &bill.PaidOn,
		&teacher.Email, &teacher.FullName,
	)
	if err != nil {
		return nil, err
	}
	teacher.ID = bill.TeacherID
	bill.Teacher = teacher

	bill.Lines, err = getBillLines(db, bill.ID)
	if err != nil {
		return nil, err
	}
	bill.Payments, err = getBillPayments(db, bill.ID)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetLatestBillForTeacher returns the teacher's most recent bill with lines,
// or nil when none exists.
func GetLatestBillForTeacher(db *sql.DB, teacherID string) (*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills b
			  WHERE b.teacher_id = $1
			  ORDER BY b.year DESC, b.month DESC, b.id DESC LIMIT 1`

	bill := &models.Bill{}
	err := db.QueryRow(query, teacherID).Scan(
		&bill.ID, &bill.TeacherID, &bill.Year, &bill.Month,
		&bill.TotalMealsAmount, &bill.WaterFee, &bill.PreviousDue, &bill.TotalDue, &bill.PaidAmount,
		&bill.Status, &bill.GeneratedOn, &bill.PaidOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	bill.Lines, err = getBillLines(db, bill.ID)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func getBillLines(db *sql.DB, billID int) ([]*models.BillLine, error) {
	rows, err := db.Query(`SELECT id, bill_id, date, meal_type, price, is_verified
						   FROM bill_lines WHERE bill_id = $1 ORDER BY date, id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.BillLine
	for rows.Next() {
		line := &models.BillLine{}
		if err := rows.Scan(&line.ID, &line.BillID, &line.Date, &line.MealType, &line.Price, &line.IsVerified); err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func getBillPayments(db *sql.DB, billID int) ([]*models.Payment, error) {
	rows, err := db.Query(`SELECT id, bill_id, amount, method, transaction_id, paid_on
						   FROM payments WHERE bill_id = $1 ORDER BY paid_on`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.BillID, &payment.Amount, &payment.Method, &payment.TransactionID, &payment.PaidOn); err != nil {
			continue
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// MarkBillPaid applies the Pending -> Paid transition, sets the paid amount
// to the full total due and records a simulated payment for the same amount.
// Returns the updated bill.
func MarkBillPaid(db *sql.DB, id int, transactionID string) (*models.Bill, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	bill := &models.Bill{}
	query := `UPDATE bills SET status = $1, paid_amount = total_due, paid_on = NOW()
			  WHERE id = $2 AND status = $3
			  RETURNING ` + billColumnsBare
	err = tx.QueryRow(query, models.BillPaid, id, models.BillPending).Scan(
		&bill.ID, &bill.TeacherID, &bill.Year, &bill.Month,
		&bill.TotalMealsAmount, &bill.WaterFee, &bill.PreviousDue, &bill.TotalDue, &bill.PaidAmount,
		&bill.Status, &bill.GeneratedOn, &bill.PaidOn,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`INSERT INTO payments (bill_id, amount, method, transaction_id, paid_on)
					  VALUES ($1, $2, 'Simulated', $3, NOW())`,
		bill.ID, bill.PaidAmount, transactionID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return bill, nil
}

const billColumnsBare = `id, teacher_id, year, month, total_meals_amount, water_fee,
			  previous_due, total_due, paid_amount, status, generated_on, paid_on`

// MonthlyFinancialRow is one month's aggregate for the financial summary
// report.
type MonthlyFinancialRow struct {
	Month       int             `json:"month"`
	BillCount   int             `json:"bill_count"`
	MealsAmount decimal.Decimal `json:"meals_amount"`
	WaterFee    decimal.Decimal `json:"water_fee"`
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// GetFinancialSummary aggregates a year's bills per month.
func GetFinancialSummary(db *sql.DB, year int) ([]*MonthlyFinancialRow, error) {
	query := `SELECT month, COUNT(*),
			  COALESCE(SUM(total_meals_amount), 0), COALESCE(SUM(water_fee), 0),
			  COALESCE(SUM(total_due), 0), COALESCE(SUM(paid_amount), 0),
			  COALESCE(SUM(total_due - paid_amount), 0)
			  FROM bills WHERE year = $1
			  GROUP BY month ORDER BY month`

	rows, err := db.Query(query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*MonthlyFinancialRow
	for rows.Next() {
		row := &MonthlyFinancialRow{}
		err := rows.Scan(&row.Month, &row.BillCount, &row.MealsAmount, &row.WaterFee,
			&row.TotalDue, &row.TotalPaid, &row.Outstanding)
		if err != nil {
			continue
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
