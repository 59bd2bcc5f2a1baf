package models

import "time"

type Badge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"size:255" json:"description"`
	Icon        string    `gorm:"size:64" json:"icon"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"user_id"`
	BadgeID   uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"badge_id"`
	AwardedAt time.Time `gorm:"not null" json:"awarded_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Badge Badge `gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE" json:"badge"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
