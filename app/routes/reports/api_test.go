package reports

import (
	"encoding/csv"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSendCSV(t *testing.T) {
	app := fiber.New()
	app.Get("/export", func(c *fiber.Ctx) error {
		return sendCSV(c, "Bills_2024_03.csv",
			[]string{"Teacher", "Total Due"},
			[][]string{
				{"Ayesha Khan", "600.00"},
				{"Bilal, Ahmed", "450.00"}, // comma forces quoting
			})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/export", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, `filename="Bills_2024_03.csv"`) {
		t.Errorf("Content-Disposition = %q, want the attachment filename", cd)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("body is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV rows, want 3", len(records))
	}
	if records[0][0] != "Teacher" || records[0][1] != "Total Due" {
		t.Errorf("header row = %v", records[0])
	}
	if records[2][0] != "Bilal, Ahmed" {
		t.Errorf("quoted field round-trip = %q, want %q", records[2][0], "Bilal, Ahmed")
	}
}

func TestMealFormatting(t *testing.T) {
	if meal(true) != "Yes" || meal(false) != "No" {
		t.Errorf("meal() = (%q, %q), want (Yes, No)", meal(true), meal(false))
	}
	if formatDate(nil) != "" {
		t.Errorf("formatDate(nil) = %q, want empty", formatDate(nil))
	}
}
