package services

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// flatPlan builds a plan pricing every weekday's three meals at the same
// prices, with recognizable meal names.
func flatPlan(weekStart time.Time, breakfast, lunch, dinner int64) *models.WeeklyPlan {
	plan := &models.WeeklyPlan{WeekStart: weekStart}
	for dow := 0; dow < 7; dow++ {
		plan.Days = append(plan.Days, &models.WeeklyPlanDay{
			DayOfWeek:      dow,
			BreakfastName:  "Halwa Puri",
			LunchName:      "Biryani",
			DinnerName:     "Nihari",
			BreakfastPrice: decimal.NewFromInt(breakfast),
			LunchPrice:     decimal.NewFromInt(lunch),
			DinnerPrice:    decimal.NewFromInt(dinner),
		})
	}
	return plan
}

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		wantErr string
	}{
		{"valid period", 2024, 3, ""},
		{"first valid month", 2000, 1, ""},
		{"last valid month", 2100, 12, ""},
		{"month zero", 2024, 0, "invalid month"},
		{"month thirteen", 2024, 13, "invalid month"},
		{"negative month", 2024, -1, "invalid month"},
		{"year too early", 1999, 6, "invalid year"},
		{"year too late", 2101, 6, "invalid year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePeriod(tt.year, tt.month)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidatePeriod(%d, %d) = %v, want nil", tt.year, tt.month, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ValidatePeriod(%d, %d) = %v, want error containing %q", tt.year, tt.month, err, tt.wantErr)
			}
		})
	}
}

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		start time.Time
		end   time.Time
	}{
		{"march", 2024, 3, date(2024, time.March, 1), date(2024, time.March, 31)},
		{"leap february", 2024, 2, date(2024, time.February, 1), date(2024, time.February, 29)},
		{"plain february", 2023, 2, date(2023, time.February, 1), date(2023, time.February, 28)},
		{"december", 2024, 12, date(2024, time.December, 1), date(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodRange(tt.year, tt.month)
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Fatalf("PeriodRange(%d, %d) = (%s, %s), want (%s, %s)",
					tt.year, tt.month, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestResolvePlan(t *testing.T) {
	older := flatPlan(date(2024, time.March, 4), 50, 100, 150)
	newer := flatPlan(date(2024, time.March, 11), 60, 120, 180)
	plans := []*models.WeeklyPlan{older, newer}

	tests := []struct {
		name  string
		plans []*models.WeeklyPlan
		date  time.Time
		want  *models.WeeklyPlan
	}{
		{"inside older window", plans, date(2024, time.March, 6), older},
		{"window start is covered", plans, date(2024, time.March, 11), newer},
		{"day before window start falls in older", plans, date(2024, time.March, 10), older},
		{"day 7 is outside the window", plans, date(2024, time.March, 18), newer},
		{"before every window falls back to latest", plans, date(2024, time.February, 1), newer},
		{"no plans at all", nil, date(2024, time.March, 6), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlan(tt.plans, tt.date)
			if got != tt.want {
				t.Fatalf("ResolvePlan() picked plan starting %v, want %v", startOf(got), startOf(tt.want))
			}
		})
	}
}

func startOf(p *models.WeeklyPlan) interface{} {
	if p == nil {
		return nil
	}
	return p.WeekStart.Format("2006-01-02")
}

func TestBuildBillTotals(t *testing.T) {
	plan := flatPlan(date(2024, time.March, 1), 50, 100, 150)
	waterFee := decimal.NewFromInt(200)
	previousDue := decimal.NewFromInt(75)

	records := []*models.Attendance{
		{TeacherID: "t1", Date: datePtr(2024, time.March, 5), Breakfast: true, Lunch: true, Dinner: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 6), Lunch: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 7)},
	}

	bill := BuildBill("t1", records, []*models.WeeklyPlan{plan}, waterFee, previousDue, 2024, 3)

	if got := len(bill.Lines); got != 4 {
		t.Fatalf("got %d lines, want 4", got)
	}
	wantMeals := decimal.NewFromInt(400) // 50+100+150 on the 5th, 100 on the 6th
	if !bill.TotalMealsAmount.Equal(wantMeals) {
		t.Errorf("TotalMealsAmount = %s, want %s", bill.TotalMealsAmount, wantMeals)
	}
	wantTotal := wantMeals.Add(waterFee).Add(previousDue)
	if !bill.TotalDue.Equal(wantTotal) {
		t.Errorf("TotalDue = %s, want %s", bill.TotalDue, wantTotal)
	}
	if bill.Status != models.BillPending {
		t.Errorf("Status = %s, want %s", bill.Status, models.BillPending)
	}
	if !bill.PaidAmount.IsZero() {
		t.Errorf("PaidAmount = %s, want 0", bill.PaidAmount)
	}
	if !bill.WaterFee.Equal(waterFee) || !bill.PreviousDue.Equal(previousDue) {
		t.Errorf("fee fields = (%s, %s), want (%s, %s)", bill.WaterFee, bill.PreviousDue, waterFee, previousDue)
	}
}

func TestBuildBillSkipsRecordsOutsidePeriod(t *testing.T) {
	plan := flatPlan(date(2024, time.March, 1), 50, 100, 150)
	records := []*models.Attendance{
		{TeacherID: "t1", Date: datePtr(2024, time.February, 29), Lunch: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 1), Lunch: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 31), Dinner: true},
		{TeacherID: "t1", Date: datePtr(2024, time.April, 1), Breakfast: true},
		{TeacherID: "t1", Date: nil, Breakfast: true, Lunch: true, Dinner: true},
	}

	bill := BuildBill("t1", records, []*models.WeeklyPlan{plan}, decimal.Zero, decimal.Zero, 2024, 3)

	if got := len(bill.Lines); got != 2 {
		t.Fatalf("got %d lines, want 2 (first and last day of March only)", got)
	}
	wantMeals := decimal.NewFromInt(250)
	if !bill.TotalMealsAmount.Equal(wantMeals) {
		t.Errorf("TotalMealsAmount = %s, want %s", bill.TotalMealsAmount, wantMeals)
	}
}

func TestBuildBillNoPlans(t *testing.T) {
	records := []*models.Attendance{
		{TeacherID: "t1", Date: datePtr(2024, time.March, 5), Breakfast: true, Lunch: true, Dinner: true},
	}

	bill := BuildBill("t1", records, nil, decimal.NewFromInt(200), decimal.Zero, 2024, 3)

	if got := len(bill.Lines); got != 3 {
		t.Fatalf("got %d lines, want 3", got)
	}
	wantNames := []string{models.DefaultBreakfastName, models.DefaultLunchName, models.DefaultDinnerName}
	for i, line := range bill.Lines {
		if line.MealType != wantNames[i] {
			t.Errorf("line %d meal type = %q, want %q", i, line.MealType, wantNames[i])
		}
		if !line.Price.IsZero() {
			t.Errorf("line %d price = %s, want 0", i, line.Price)
		}
	}
	if !bill.TotalMealsAmount.IsZero() {
		t.Errorf("TotalMealsAmount = %s, want 0", bill.TotalMealsAmount)
	}
	if !bill.TotalDue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("TotalDue = %s, want the water fee alone", bill.TotalDue)
	}
}

func TestBuildBillMissingPlanDay(t *testing.T) {
	// Plan prices Mondays only; meals on other weekdays fall back to
	// default names and zero prices.
	plan := &models.WeeklyPlan{
		WeekStart: date(2024, time.March, 4),
		Days: []*models.WeeklyPlanDay{{
			DayOfWeek:      1,
			BreakfastName:  "Halwa Puri",
			LunchName:      "Biryani",
			DinnerName:     "Nihari",
			BreakfastPrice: decimal.NewFromInt(50),
			LunchPrice:     decimal.NewFromInt(100),
			DinnerPrice:    decimal.NewFromInt(150),
		}},
	}

	records := []*models.Attendance{
		{TeacherID: "t1", Date: datePtr(2024, time.March, 4), Lunch: true}, // Monday
		{TeacherID: "t1", Date: datePtr(2024, time.March, 5), Lunch: true}, // Tuesday, unpriced
	}

	bill := BuildBill("t1", records, []*models.WeeklyPlan{plan}, decimal.Zero, decimal.Zero, 2024, 3)

	if got := len(bill.Lines); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
	if bill.Lines[0].MealType != "Biryani" || !bill.Lines[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Monday line = (%q, %s), want priced from the plan", bill.Lines[0].MealType, bill.Lines[0].Price)
	}
	if bill.Lines[1].MealType != models.DefaultLunchName || !bill.Lines[1].Price.IsZero() {
		t.Errorf("Tuesday line = (%q, %s), want default name and zero price", bill.Lines[1].MealType, bill.Lines[1].Price)
	}
}

func TestBuildBillUsesWeekdayOfEachDate(t *testing.T) {
	// Distinct price per weekday so a wrong day mapping is caught.
	plan := &models.WeeklyPlan{WeekStart: date(2024, time.March, 3)} // a Sunday
	for dow := 0; dow < 7; dow++ {
		plan.Days = append(plan.Days, &models.WeeklyPlanDay{
			DayOfWeek:     dow,
			BreakfastName: "Breakfast",
			LunchName:     "Lunch",
			DinnerName:    "Dinner",
			LunchPrice:    decimal.NewFromInt(int64(100 + dow)),
		})
	}

	tests := []struct {
		name string
		day  int
		want int64
	}{
		{"sunday is day zero", 3, 100},
		{"wednesday is day three", 6, 103},
		{"saturday is day six", 9, 106},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*models.Attendance{
				{TeacherID: "t1", Date: datePtr(2024, time.March, tt.day), Lunch: true},
			}
			bill := BuildBill("t1", records, []*models.WeeklyPlan{plan}, decimal.Zero, decimal.Zero, 2024, 3)
			if len(bill.Lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(bill.Lines))
			}
			if !bill.Lines[0].Price.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("price = %s, want %d", bill.Lines[0].Price, tt.want)
			}
		})
	}
}

func TestBuildBillNoAttendance(t *testing.T) {
	waterFee := decimal.NewFromInt(200)
	previousDue := decimal.NewFromInt(350)

	bill := BuildBill("t1", nil, nil, waterFee, previousDue, 2024, 3)

	if len(bill.Lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(bill.Lines))
	}
	if !bill.TotalMealsAmount.IsZero() {
		t.Errorf("TotalMealsAmount = %s, want 0", bill.TotalMealsAmount)
	}
	wantTotal := waterFee.Add(previousDue)
	if !bill.TotalDue.Equal(wantTotal) {
		t.Errorf("TotalDue = %s, want %s", bill.TotalDue, wantTotal)
	}
}

func TestBuildBillDecimalPrices(t *testing.T) {
	plan := flatPlan(date(2024, time.March, 1), 0, 0, 0)
	for _, d := range plan.Days {
		d.LunchPrice = decimal.RequireFromString("99.99")
	}
	records := []*models.Attendance{
		{TeacherID: "t1", Date: datePtr(2024, time.March, 5), Lunch: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 6), Lunch: true},
		{TeacherID: "t1", Date: datePtr(2024, time.March, 7), Lunch: true},
	}

	bill := BuildBill("t1", records, []*models.WeeklyPlan{plan}, decimal.RequireFromString("0.01"), decimal.Zero, 2024, 3)

	if want := decimal.RequireFromString("299.97"); !bill.TotalMealsAmount.Equal(want) {
		t.Errorf("TotalMealsAmount = %s, want %s", bill.TotalMealsAmount, want)
	}
	if want := decimal.RequireFromString("299.98"); !bill.TotalDue.Equal(want) {
		t.Errorf("TotalDue = %s, want %s", bill.TotalDue, want)
	}
}

var userColumns = []string{"id", "email", "full_name", "is_admin", "is_password_changed", "joined_date", "created_at", "updated_at"}

var attendanceColumns = []string{"id", "teacher_id", "date", "breakfast", "lunch", "dinner", "marked_by",
	"is_verified", "verification_note", "verified_at", "dispute_status", "dispute_reason", "created_at", "updated_at"}

// expectTeacherLoads queues the per-teacher reads GenerateBills performs
// before saving: existing-bill check, attendance for the period, unpaid
// balance. The fixture teacher has no attendance and no history.
func expectTeacherLoads(mock sqlmock.Sqlmock, teacherID string) {
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(teacherID, 2024, 3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("FROM attendances").
		WillReturnRows(sqlmock.NewRows(attendanceColumns))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(teacherID, string(models.BillPaid)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))
}

func TestGenerateBillsContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, time.April, 1, 6, 5, 0, 0, time.UTC)
	broken := "11111111-1111-1111-1111-111111111111"
	healthy := "22222222-2222-2222-2222-222222222222"

	mock.ExpectQuery("FROM users WHERE is_admin = false").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(broken, "ayesha.khan@mess.local", "Ayesha Khan", false, false, now, now, now).
			AddRow(healthy, "bilal.ahmed@mess.local", "Bilal Ahmed", false, false, now, now, now))
	mock.ExpectQuery("FROM weekly_plans").
		WillReturnRows(sqlmock.NewRows([]string{"id", "week_start", "created_by_id", "created_at"}))
	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("WaterFee").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("100"))

	// First teacher's bill insert fails and must not abort the batch
	expectTeacherLoads(mock, broken)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	expectTeacherLoads(mock, healthy)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "generated_on"}).AddRow(7, now))
	mock.ExpectCommit()

	report, err := GenerateBills(db, 2024, 3, false)
	if err != nil {
		t.Fatalf("GenerateBills() error: %v", err)
	}

	if report.GeneratedCount != 1 {
		t.Errorf("GeneratedCount = %d, want 1", report.GeneratedCount)
	}
	if report.SkippedCount != 0 {
		t.Errorf("SkippedCount = %d, want 0", report.SkippedCount)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(report.Errors))
	}
	if report.Errors[0].TeacherID != broken {
		t.Errorf("failed teacher = %s, want %s", report.Errors[0].TeacherID, broken)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGenerateBillsSkipsExistingBills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, time.April, 1, 6, 5, 0, 0, time.UTC)
	billed := "11111111-1111-1111-1111-111111111111"

	mock.ExpectQuery("FROM users WHERE is_admin = false").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(billed, "ayesha.khan@mess.local", "Ayesha Khan", false, false, now, now, now))
	mock.ExpectQuery("FROM weekly_plans").
		WillReturnRows(sqlmock.NewRows([]string{"id", "week_start", "created_by_id", "created_at"}))
	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("WaterFee").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("100"))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(billed, 2024, 3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	report, err := GenerateBills(db, 2024, 3, false)
	if err != nil {
		t.Fatalf("GenerateBills() error: %v", err)
	}

	if report.GeneratedCount != 0 || report.SkippedCount != 1 || len(report.Errors) != 0 {
		t.Errorf("report = %d generated, %d skipped, %d errors; want 0/1/0",
			report.GeneratedCount, report.SkippedCount, len(report.Errors))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGenerateBillsEmptyRoster(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE is_admin = false").
		WillReturnRows(sqlmock.NewRows(userColumns))

	if _, err := GenerateBills(db, 2024, 3, false); err == nil {
		t.Fatal("GenerateBills() = nil error, want failure when no billable users exist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkPaid(t *testing.T) {
	now := date(2024, time.April, 2)
	bill := &models.Bill{
		Status:     models.BillPending,
		TotalDue:   decimal.NewFromInt(1250),
		PaidAmount: decimal.Zero,
	}

	bill.MarkPaid(now)

	if bill.Status != models.BillPaid {
		t.Errorf("Status = %s, want %s", bill.Status, models.BillPaid)
	}
	if !bill.PaidAmount.Equal(bill.TotalDue) {
		t.Errorf("PaidAmount = %s, want full total %s", bill.PaidAmount, bill.TotalDue)
	}
	if bill.PaidOn == nil || !bill.PaidOn.Equal(now) {
		t.Errorf("PaidOn = %v, want %v", bill.PaidOn, now)
	}
	if !bill.Outstanding().IsZero() {
		t.Errorf("Outstanding() = %s after payment, want 0", bill.Outstanding())
	}
}
