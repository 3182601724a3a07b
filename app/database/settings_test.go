package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetWaterFee(t *testing.T) {
	tests := []struct {
		name  string
		rows  *sqlmock.Rows
		noRow bool
		want  string
	}{
		{"plain value", sqlmock.NewRows([]string{"value"}).AddRow("200"), false, "200"},
		{"decimal value", sqlmock.NewRows([]string{"value"}).AddRow("150.75"), false, "150.75"},
		{"padded value", sqlmock.NewRows([]string{"value"}).AddRow(" 120 "), false, "120"},
		{"unset key defaults to zero", nil, true, "0"},
		{"blank value defaults to zero", sqlmock.NewRows([]string{"value"}).AddRow(""), false, "0"},
		{"garbage value defaults to zero", sqlmock.NewRows([]string{"value"}).AddRow("not-a-number"), false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("Failed to create mock db: %v", err)
			}
			defer db.Close()

			expect := mock.ExpectQuery("SELECT value FROM settings").WithArgs("WaterFee")
			if tt.noRow {
				expect.WillReturnRows(sqlmock.NewRows([]string{"value"}))
			} else {
				expect.WillReturnRows(tt.rows)
			}

			fee, err := GetWaterFee(db)
			if err != nil {
				t.Fatalf("GetWaterFee() error: %v", err)
			}
			if fee.String() != tt.want {
				t.Errorf("GetWaterFee() = %s, want %s", fee, tt.want)
			}
		})
	}
}
