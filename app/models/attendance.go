package models

import "time"

// Attendance records which meals a teacher took on a calendar day.
// At most one record exists per (teacher, date). Date is nullable because
// legacy rows were imported without one; billing skips such rows.
type Attendance struct {
	ID               int            `json:"id" gorm:"primaryKey"`
	TeacherID        string         `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Date             *time.Time     `json:"date" gorm:"type:date;index"`
	Breakfast        bool           `json:"breakfast" gorm:"default:false"`
	Lunch            bool           `json:"lunch" gorm:"default:false"`
	Dinner           bool           `json:"dinner" gorm:"default:false"`
	MarkedBy         string         `json:"marked_by,omitempty"`
	IsVerified       *bool          `json:"is_verified"` // true=verified, false=rejected, nil=pending
	VerificationNote string         `json:"verification_note,omitempty"`
	VerifiedAt       *time.Time     `json:"verified_at,omitempty"`
	DisputeStatus    DisputeStatus  `json:"dispute_status" gorm:"type:varchar(10);default:'None'"`
	DisputeReason    string         `json:"dispute_reason,omitempty"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	Teacher          *User          `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

// MealCount returns how many meal flags are set on the record.
func (a *Attendance) MealCount() int {
	n := 0
	if a.Breakfast {
		n++
	}
	if a.Lunch {
		n++
	}
	if a.Dinner {
		n++
	}
	return n
}
