package models

import "time"

// Streak holds per-user action counters. Each qualifying action bumps the
// matching counter by one; there is no calendar-gap reset.
type Streak struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	SaveStreak    int        `gorm:"not null;default:0" json:"save_streak"`
	FightStreak   int        `gorm:"not null;default:0" json:"fight_streak"`
	LastSaveDate  *time.Time `json:"last_save_date"`
	LastFightDate *time.Time `json:"last_fight_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Streak) TableName() string {
	return "streaks"
}
