package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StashTransaction is a ledger entry moving money between the wallet and the
// savings buffer. STASH debits the wallet; WITHDRAW credits it back. When
// GoalID is set the goal's current amount moves by the same delta.
type StashTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Reference string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	GoalID    *uint           `gorm:"index" json:"goal_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type      string          `gorm:"size:12;not null;index" json:"type"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`

	User User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Goal *Goal `gorm:"foreignKey:GoalID" json:"-"`
}

func (StashTransaction) TableName() string {
	return "stash_transactions"
}
