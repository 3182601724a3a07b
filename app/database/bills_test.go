package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

func TestSaveBill(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	bill := &models.Bill{
		TeacherID:        "11111111-1111-1111-1111-111111111111",
		Year:             2024,
		Month:            3,
		TotalMealsAmount: decimal.NewFromInt(400),
		WaterFee:         decimal.NewFromInt(200),
		PreviousDue:      decimal.Zero,
		TotalDue:         decimal.NewFromInt(600),
		PaidAmount:       decimal.Zero,
		Status:           models.BillPending,
		Lines: []*models.BillLine{
			{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), MealType: "Lunch", Price: decimal.NewFromInt(100), IsVerified: true},
			{Date: time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), MealType: "Dinner", Price: decimal.NewFromInt(150), IsVerified: true},
		},
	}

	generatedOn := time.Date(2024, time.April, 1, 6, 5, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "generated_on"}).AddRow(42, generatedOn))
	mock.ExpectQuery("INSERT INTO bill_lines").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectQuery("INSERT INTO bill_lines").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(102))
	mock.ExpectCommit()

	if err := SaveBill(db, bill); err != nil {
		t.Fatalf("SaveBill() error: %v", err)
	}
	if bill.ID != 42 {
		t.Errorf("bill.ID = %d, want 42", bill.ID)
	}
	if !bill.GeneratedOn.Equal(generatedOn) {
		t.Errorf("bill.GeneratedOn = %v, want %v", bill.GeneratedOn, generatedOn)
	}
	if bill.Lines[0].ID != 101 || bill.Lines[1].ID != 102 {
		t.Errorf("line ids = (%d, %d), want (101, 102)", bill.Lines[0].ID, bill.Lines[1].ID)
	}
	if bill.Lines[0].BillID != 42 || bill.Lines[1].BillID != 42 {
		t.Errorf("line bill ids = (%d, %d), want (42, 42)", bill.Lines[0].BillID, bill.Lines[1].BillID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveBillRollsBackOnLineFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	bill := &models.Bill{
		TeacherID: "11111111-1111-1111-1111-111111111111",
		Year:      2024,
		Month:     3,
		Status:    models.BillPending,
		Lines: []*models.BillLine{
			{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), MealType: "Lunch", Price: decimal.NewFromInt(100)},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "generated_on"}).AddRow(42, time.Now()))
	mock.ExpectQuery("INSERT INTO bill_lines").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	if err := SaveBill(db, bill); err == nil {
		t.Fatal("SaveBill() = nil, want error when a line insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSumUnpaidBalance(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
		want string
	}{
		{"outstanding balance", sqlmock.NewRows([]string{"sum"}).AddRow("750.50"), "750.5"},
		{"no unpaid bills coalesces to zero", sqlmock.NewRows([]string{"sum"}).AddRow("0"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("Failed to create mock db: %v", err)
			}
			defer db.Close()

			mock.ExpectQuery("SELECT COALESCE").
				WithArgs("teacher-1", string(models.BillPaid)).
				WillReturnRows(tt.rows)

			sum, err := SumUnpaidBalance(db, "teacher-1")
			if err != nil {
				t.Fatalf("SumUnpaidBalance() error: %v", err)
			}
			if sum.String() != tt.want {
				t.Errorf("SumUnpaidBalance() = %s, want %s", sum, tt.want)
			}
		})
	}
}

func TestMarkBillPaidAlreadyPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	// The status guard means an already-paid bill matches no row.
	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bills SET status").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := MarkBillPaid(db, 42, "txn-1"); err != sql.ErrNoRows {
		t.Fatalf("MarkBillPaid() error = %v, want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBillExistsForPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock db: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("teacher-1", 2024, 3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := BillExistsForPeriod(db, "teacher-1", 2024, 3)
	if err != nil {
		t.Fatalf("BillExistsForPeriod() error: %v", err)
	}
	if !exists {
		t.Error("BillExistsForPeriod() = false, want true")
	}
}
