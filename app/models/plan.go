package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyPlan holds the priced menu for the 7-day window starting at WeekStart.
// A plan is active for a date d when WeekStart <= d < WeekStart+7d.
type WeeklyPlan struct {
	ID          int              `json:"id" gorm:"primaryKey"`
	WeekStart   time.Time        `json:"week_start" gorm:"not null;index;type:date" validate:"required"`
	CreatedByID string           `json:"created_by_id,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
	Days        []*WeeklyPlanDay `json:"days,omitempty" gorm:"foreignKey:WeeklyPlanID"`
	CreatedBy   *User            `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
}

// WeeklyPlanDay prices the three meals for one weekday of a plan.
// DayOfWeek follows the civil calendar: 0=Sunday .. 6=Saturday, the same
// numbering time.Weekday uses.
type WeeklyPlanDay struct {
	ID             int             `json:"id" gorm:"primaryKey"`
	WeeklyPlanID   int             `json:"weekly_plan_id" gorm:"not null;index"`
	DayOfWeek      int             `json:"day_of_week" validate:"gte=0,lte=6"`
	BreakfastName  string          `json:"breakfast_name" gorm:"default:'Breakfast'"`
	LunchName      string          `json:"lunch_name" gorm:"default:'Lunch'"`
	DinnerName     string          `json:"dinner_name" gorm:"default:'Dinner'"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price" gorm:"type:numeric"`
	LunchPrice     decimal.Decimal `json:"lunch_price" gorm:"type:numeric"`
	DinnerPrice    decimal.Decimal `json:"dinner_price" gorm:"type:numeric"`
}

// Covers reports whether the plan's 7-day window contains the date.
func (p *WeeklyPlan) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := p.WeekStart.Truncate(24 * time.Hour)
	return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
}

// DayFor returns the plan day matching the date's weekday, or nil when the
// plan does not define that day.
func (p *WeeklyPlan) DayFor(weekday time.Weekday) *WeeklyPlanDay {
	for _, day := range p.Days {
		if day.DayOfWeek == int(weekday) {
			return day
		}
	}
	return nil
}

// NewDefaultPlanDay returns an unpriced day with the default meal names.
func NewDefaultPlanDay(dayOfWeek int) *WeeklyPlanDay {
	return &WeeklyPlanDay{
		DayOfWeek:     dayOfWeek,
		BreakfastName: DefaultBreakfastName,
		LunchName:     DefaultLunchName,
		DinnerName:    DefaultDinnerName,
	}
}
