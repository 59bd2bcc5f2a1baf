package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Quest is a static content definition: either a LESSON (slides/quiz payload)
// or a CHALLENGE whose progress is derived from the user's stash history.
type Quest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"size:512" json:"description"`
	Difficulty  string    `gorm:"size:8;not null" json:"difficulty"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	Kind        string    `gorm:"size:12;not null;index" json:"kind"`
	Content     string    `gorm:"type:json" json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Quest) TableName() string {
	return "quests"
}

// ChallengeContent is the parsed form of a CHALLENGE quest's Content column.
// Rule selects the progress calculation; Target is the amount the rule
// measures against.
type ChallengeContent struct {
	Rule   string          `json:"rule"`
	Type   string          `json:"type"`
	Target decimal.Decimal `json:"target"`
}

// Challenge decodes the quest content. Returns false for lessons or content
// that does not describe a challenge.
func (q *Quest) Challenge() (ChallengeContent, bool) {
	if q.Kind != "CHALLENGE" || q.Content == "" {
		return ChallengeContent{}, false
	}
	var c ChallengeContent
	if err := json.Unmarshal([]byte(q.Content), &c); err != nil {
		return ChallengeContent{}, false
	}
	if c.Rule == "" || !c.Target.IsPositive() {
		return ChallengeContent{}, false
	}
	return c, true
}

// UserQuest records that a user joined a quest and whether they completed it.
type UserQuest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_user_quest;not null" json:"user_id"`
	QuestID     uint       `gorm:"uniqueIndex:idx_user_quest;not null" json:"quest_id"`
	JoinedAt    time.Time  `gorm:"not null" json:"joined_at"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Quest Quest `gorm:"foreignKey:QuestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserQuest) TableName() string {
	return "user_quests"
}

// CompletedSince reports whether the quest was completed at or after t.
func (uq *UserQuest) CompletedSince(t time.Time) bool {
	return uq.Completed && uq.CompletedAt != nil && !uq.CompletedAt.Before(t)
}
