package models

import "time"

type User struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email             string     `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password          string     `json:"-" gorm:"column:password_hash;not null" validate:"required,min=8"`
	FullName          string     `json:"full_name" gorm:"not null" validate:"required"`
	IsAdmin           bool       `json:"is_admin" gorm:"default:false"`
	IsPasswordChanged bool       `json:"is_password_changed" gorm:"default:false"`
	JoinedDate        time.Time  `json:"joined_date" gorm:"autoCreateTime"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// RefreshToken is a long-lived credential exchanged for new access tokens.
type RefreshToken struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	Token     string     `json:"token" gorm:"uniqueIndex;not null" validate:"required"`
	UserID    string     `json:"user_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null;index"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	Revoked   bool       `json:"revoked" gorm:"default:false"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// IsActive reports whether the token can still be exchanged.
func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && time.Now().Before(rt.ExpiresAt)
}
