package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username      string          `gorm:"size:64;not null;default:''" json:"username"`
	FirstName     string          `gorm:"size:100" json:"first_name"`
	LastName      string          `gorm:"size:100" json:"last_name"`
	PasswordHash  string          `gorm:"size:255" json:"-"`
	GoogleID      *string         `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL     string          `gorm:"size:512" json:"avatar_url"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	Goals  []Goal  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"goals,omitempty"`
	Streak *Streak `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"streak,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName prefers the given name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
