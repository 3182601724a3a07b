package reports

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/Wahla-007/Suf-Proj/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// sendCSV writes the rows as a CSV attachment with the given filename
func sendCSV(c *fiber.Ctx, filename string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build report")
	}
	if err := w.WriteAll(rows); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build report")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func meal(taken bool) string {
	if taken {
		return "Yes"
	}
	return "No"
}

func teacherName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.FullName
}

func teacherEmail(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}

// BillsCSV exports all bills, optionally limited to a year and month
func BillsCSV(c *fiber.Ctx, db *sql.DB) error {
	filters := database.BillFilters{
		Year:  c.QueryInt("year", 0),
		Month: c.QueryInt("month", 0),
	}

	bills, err := database.ListBills(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bills")
	}

	header := []string{"Teacher", "Email", "Year", "Month", "Meals Amount", "Water Fee", "Previous Due", "Total Due", "Paid Amount", "Status", "Generated On", "Paid On"}
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, []string{
			teacherName(b.Teacher),
			teacherEmail(b.Teacher),
			strconv.Itoa(b.Year),
			strconv.Itoa(b.Month),
			b.TotalMealsAmount.StringFixed(2),
			b.WaterFee.StringFixed(2),
			b.PreviousDue.StringFixed(2),
			b.TotalDue.StringFixed(2),
			b.PaidAmount.StringFixed(2),
			string(b.Status),
			b.GeneratedOn.Format("2006-01-02"),
			formatDate(b.PaidOn),
		})
	}

	filename := "Bills.csv"
	if filters.Year != 0 && filters.Month != 0 {
		filename = fmt.Sprintf("Bills_%d_%02d.csv", filters.Year, filters.Month)
	}
	return sendCSV(c, filename, header, rows)
}

// AttendanceCSV exports attendance records, optionally limited to a date range
func AttendanceCSV(c *fiber.Ctx, db *sql.DB) error {
	filters := database.AttendanceFilters{}
	if v := c.Query("start_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		}
		filters.StartDate = &d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		}
		filters.EndDate = &d
	}

	records, err := database.ListAttendance(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	header := []string{"Teacher", "Email", "Date", "Breakfast", "Lunch", "Dinner", "Marked By", "Verified", "Dispute Status"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		verified := ""
		if r.IsVerified != nil {
			verified = meal(*r.IsVerified)
		}
		rows = append(rows, []string{
			teacherName(r.Teacher),
			teacherEmail(r.Teacher),
			formatDate(r.Date),
			meal(r.Breakfast),
			meal(r.Lunch),
			meal(r.Dinner),
			r.MarkedBy,
			verified,
			string(r.DisputeStatus),
		})
	}

	return sendCSV(c, "Attendance.csv", header, rows)
}

// UsersCSV exports the user roster
func UsersCSV(c *fiber.Ctx, db *sql.DB) error {
	users, err := database.GetAllUsers(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}

	header := []string{"Full Name", "Email", "Role", "Joined Date"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "Teacher"
		if u.IsAdmin {
			role = "Admin"
		}
		rows = append(rows, []string{
			u.FullName,
			u.Email,
			role,
			u.JoinedDate.Format("2006-01-02"),
		})
	}

	return sendCSV(c, "Users.csv", header, rows)
}

// FinancialSummaryCSV exports one year's per-month billing aggregates
func FinancialSummaryCSV(c *fiber.Ctx, db *sql.DB) error {
	year := c.QueryInt("year", time.Now().Year())

	summary, err := database.GetFinancialSummary(db, year)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch financial summary")
	}

	header := []string{"Month", "Bills", "Meals Amount", "Water Fee", "Total Due", "Total Paid", "Outstanding"}
	rows := make([][]string, 0, len(summary)+1)
	totals := &database.MonthlyFinancialRow{}
	for _, m := range summary {
		rows = append(rows, []string{
			time.Month(m.Month).String(),
			strconv.Itoa(m.BillCount),
			m.MealsAmount.StringFixed(2),
			m.WaterFee.StringFixed(2),
			m.TotalDue.StringFixed(2),
			m.TotalPaid.StringFixed(2),
			m.Outstanding.StringFixed(2),
		})
		totals.BillCount += m.BillCount
		totals.MealsAmount = totals.MealsAmount.Add(m.MealsAmount)
		totals.WaterFee = totals.WaterFee.Add(m.WaterFee)
		totals.TotalDue = totals.TotalDue.Add(m.TotalDue)
		totals.TotalPaid = totals.TotalPaid.Add(m.TotalPaid)
		totals.Outstanding = totals.Outstanding.Add(m.Outstanding)
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(totals.BillCount),
		totals.MealsAmount.StringFixed(2),
		totals.WaterFee.StringFixed(2),
		totals.TotalDue.StringFixed(2),
		totals.TotalPaid.StringFixed(2),
		totals.Outstanding.StringFixed(2),
	})

	return sendCSV(c, fmt.Sprintf("Financial_Summary_%d.csv", year), header, rows)
}

// MyAttendanceCSV exports the authenticated teacher's attendance history
func MyAttendanceCSV(c *fiber.Ctx, db *sql.DB) error {
	records, err := database.ListAttendanceByTeacher(db, auth.CurrentUserID(c), 0)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	header := []string{"Date", "Breakfast", "Lunch", "Dinner", "Verified", "Dispute Status"}
	rows := make([][]string, 0, len(records)+1)
	var breakfasts, lunches, dinners int
	for _, r := range records {
		verified := ""
		if r.IsVerified != nil {
			verified = meal(*r.IsVerified)
		}
		rows = append(rows, []string{
			formatDate(r.Date),
			meal(r.Breakfast),
			meal(r.Lunch),
			meal(r.Dinner),
			verified,
			string(r.DisputeStatus),
		})
		if r.Breakfast {
			breakfasts++
		}
		if r.Lunch {
			lunches++
		}
		if r.Dinner {
			dinners++
		}
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(breakfasts),
		strconv.Itoa(lunches),
		strconv.Itoa(dinners),
		"", "",
	})

	return sendCSV(c, "My_Attendance.csv", header, rows)
}

// MyLatestBillCSV exports the authenticated teacher's most recent bill
func MyLatestBillCSV(c *fiber.Ctx, db *sql.DB) error {
	bill, err := database.GetLatestBillForTeacher(db, auth.CurrentUserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bill")
	}
	if bill == nil {
		return fiber.NewError(fiber.StatusNotFound, "No bill has been generated for you yet")
	}
	return billCSV(c, bill)
}

// MyBillCSV exports one of the authenticated teacher's bills line by line
func MyBillCSV(c *fiber.Ctx, db *sql.DB) error {
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
	if bill.TeacherID != auth.CurrentUserID(c) {
		return fiber.NewError(fiber.StatusNotFound, "Bill not found")
	}
	return billCSV(c, bill)
}

func billCSV(c *fiber.Ctx, bill *models.Bill) error {
	header := []string{"Date", "Meal", "Price"}
	rows := make([][]string, 0, len(bill.Lines)+4)
	for _, line := range bill.Lines {
		rows = append(rows, []string{
			line.Date.Format("2006-01-02"),
			line.MealType,
			line.Price.StringFixed(2),
		})
	}
	rows = append(rows,
		[]string{"", "Water Fee", bill.WaterFee.StringFixed(2)},
		[]string{"", "Previous Due", bill.PreviousDue.StringFixed(2)},
		[]string{"", "Total Due", bill.TotalDue.StringFixed(2)},
		[]string{"", "Paid", bill.PaidAmount.StringFixed(2)},
	)

	return sendCSV(c, fmt.Sprintf("Bill_%d_%02d.csv", bill.Year, bill.Month), header, rows)
}
