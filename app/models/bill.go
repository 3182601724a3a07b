package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is one teacher's mess charges for a (year, month) period. A bill is
// immutable history after generation except for the Pending -> Paid
// transition.
type Bill struct {
	ID               int             `json:"id" gorm:"primaryKey"`
	TeacherID        string          `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Year             int             `json:"year" gorm:"not null" validate:"gte=2000,lte=2100"`
	Month            int             `json:"month" gorm:"not null" validate:"gte=1,lte=12"`
	TotalMealsAmount decimal.Decimal `json:"total_meals_amount" gorm:"type:numeric"`
	WaterFee         decimal.Decimal `json:"water_fee" gorm:"type:numeric"`
	PreviousDue      decimal.Decimal `json:"previous_due" gorm:"type:numeric"`
	TotalDue         decimal.Decimal `json:"total_due" gorm:"type:numeric"`
	PaidAmount       decimal.Decimal `json:"paid_amount" gorm:"type:numeric"`
	Status           BillStatus      `json:"status" gorm:"type:varchar(10);default:'Pending'"`
	GeneratedOn      time.Time       `json:"generated_on" gorm:"autoCreateTime"`
	PaidOn           *time.Time      `json:"paid_on,omitempty"`
	Lines            []*BillLine     `json:"lines,omitempty" gorm:"foreignKey:BillID"`
	Payments         []*Payment      `json:"payments,omitempty" gorm:"foreignKey:BillID"`
	Teacher          *User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

// BillLine is one priced, dated meal charge within a bill. Lines are owned by
// the bill and deleted with it.
type BillLine struct {
	ID         int             `json:"id" gorm:"primaryKey"`
	BillID     int             `json:"bill_id" gorm:"not null;index"`
	Date       time.Time       `json:"date" gorm:"not null;type:date"`
	MealType   string          `json:"meal_type"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric"`
	IsVerified bool            `json:"is_verified" gorm:"default:true"`
}

// Payment records money received against a bill. Only the simulated method
// exists; no gateway integration.
type Payment struct {
	ID            int             `json:"id" gorm:"primaryKey"`
	BillID        int             `json:"bill_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric"`
	Method        string          `json:"method,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	PaidOn        time.Time       `json:"paid_on" gorm:"autoCreateTime"`
}

// Outstanding returns the unpaid balance on the bill.
func (b *Bill) Outstanding() decimal.Decimal {
	return b.TotalDue.Sub(b.PaidAmount)
}

// MarkPaid applies the one-way Pending -> Paid transition. The paid amount is
// always set to the full total due; partial payments are not modeled.
func (b *Bill) MarkPaid(now time.Time) {
	b.Status = BillPaid
	b.PaidAmount = b.TotalDue
	b.PaidOn = &now
}
