package models

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyPlanCovers(t *testing.T) {
	plan := &WeeklyPlan{WeekStart: day(2024, time.March, 4)}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"week start", day(2024, time.March, 4), true},
		{"mid week", day(2024, time.March, 7), true},
		{"last covered day", day(2024, time.March, 10), true},
		{"day seven is out", day(2024, time.March, 11), false},
		{"day before start", day(2024, time.March, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.Covers(tt.date); got != tt.want {
				t.Errorf("Covers(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestWeeklyPlanDayFor(t *testing.T) {
	plan := &WeeklyPlan{
		WeekStart: day(2024, time.March, 3),
		Days: []*WeeklyPlanDay{
			{DayOfWeek: 0, LunchName: "Sunday Lunch"},
			{DayOfWeek: 3, LunchName: "Wednesday Lunch"},
		},
	}

	if d := plan.DayFor(time.Sunday); d == nil || d.LunchName != "Sunday Lunch" {
		t.Errorf("DayFor(Sunday) = %+v, want the Sunday entry", d)
	}
	if d := plan.DayFor(time.Wednesday); d == nil || d.LunchName != "Wednesday Lunch" {
		t.Errorf("DayFor(Wednesday) = %+v, want the Wednesday entry", d)
	}
	if d := plan.DayFor(time.Friday); d != nil {
		t.Errorf("DayFor(Friday) = %+v, want nil for an undefined day", d)
	}
}

func TestNewDefaultPlanDay(t *testing.T) {
	d := NewDefaultPlanDay(5)

	if d.DayOfWeek != 5 {
		t.Errorf("DayOfWeek = %d, want 5", d.DayOfWeek)
	}
	if d.BreakfastName != DefaultBreakfastName || d.LunchName != DefaultLunchName || d.DinnerName != DefaultDinnerName {
		t.Errorf("names = (%q, %q, %q), want defaults", d.BreakfastName, d.LunchName, d.DinnerName)
	}
	if !d.BreakfastPrice.IsZero() || !d.LunchPrice.IsZero() || !d.DinnerPrice.IsZero() {
		t.Error("default plan day should be unpriced")
	}
}

func TestAttendanceMealCount(t *testing.T) {
	tests := []struct {
		name string
		rec  Attendance
		want int
	}{
		{"no meals", Attendance{}, 0},
		{"lunch only", Attendance{Lunch: true}, 1},
		{"all meals", Attendance{Breakfast: true, Lunch: true, Dinner: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.MealCount(); got != tt.want {
				t.Errorf("MealCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
