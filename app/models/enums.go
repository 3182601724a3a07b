package models

// BillStatus defines the payment states of a bill. Transitions are one-way:
// Pending -> Paid.
type BillStatus string

const (
	BillPending BillStatus = "Pending"
	BillPaid    BillStatus = "Paid"
)

// DisputeStatus defines the states of a disputed attendance record.
type DisputeStatus string

const (
	DisputeNone     DisputeStatus = "None"
	DisputeRaised   DisputeStatus = "Raised"
	DisputeApproved DisputeStatus = "Approved"
	DisputeRejected DisputeStatus = "Rejected"
)

// MealType identifies one of the three daily meals.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// Default meal names used when a weekly plan does not cover a date.
const (
	DefaultBreakfastName = "Breakfast"
	DefaultLunchName     = "Lunch"
	DefaultDinnerName    = "Dinner"
)
