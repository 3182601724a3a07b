package plans

import (
	"testing"

	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

func TestBuildPlanDaysFillsTheWeek(t *testing.T) {
	days := buildPlanDays([]PlanDayRequest{
		{DayOfWeek: 1, LunchName: "Biryani", LunchPrice: decimal.NewFromInt(150)},
		{DayOfWeek: 5, BreakfastName: "Halwa Puri", BreakfastPrice: decimal.NewFromInt(80)},
	})

	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	for i, d := range days {
		if d.DayOfWeek != i {
			t.Errorf("days[%d].DayOfWeek = %d, want %d", i, d.DayOfWeek, i)
		}
	}

	if days[1].LunchName != "Biryani" || !days[1].LunchPrice.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Monday = (%q, %s), want the submitted lunch", days[1].LunchName, days[1].LunchPrice)
	}
	// Unnamed meals on a submitted day still get defaults
	if days[1].BreakfastName != models.DefaultBreakfastName {
		t.Errorf("Monday breakfast name = %q, want default", days[1].BreakfastName)
	}
	// Omitted days are fully defaulted and unpriced
	if days[3].LunchName != models.DefaultLunchName || !days[3].LunchPrice.IsZero() {
		t.Errorf("Wednesday = (%q, %s), want default and zero", days[3].LunchName, days[3].LunchPrice)
	}
}

func TestBuildPlanDaysLastDuplicateWins(t *testing.T) {
	days := buildPlanDays([]PlanDayRequest{
		{DayOfWeek: 2, LunchName: "First"},
		{DayOfWeek: 2, LunchName: "Second"},
	})

	if days[2].LunchName != "Second" {
		t.Errorf("days[2].LunchName = %q, want the later submission", days[2].LunchName)
	}
}
