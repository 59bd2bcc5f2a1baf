package service

import (
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"github.com/shopspring/decimal"
)

// Store interfaces let the ledger, streak and quest logic run against an
// in-memory fake in tests. The gorm repositories in internal/repository are
// the production implementations.

type LedgerStore interface {
	CreateExpense(t *models.Transaction) error
	CreditWallet(userID uint, amount decimal.Decimal) error
	CreateStash(s *models.StashTransaction) (goalCompleted bool, err error)
	TagTransaction(userID, txID uint, tag string) error
	ListTransactions(userID uint, limit, offset int) ([]models.Transaction, error)
	ListStashSince(userID uint, since time.Time) ([]models.StashTransaction, error)
	StashTotal(userID uint) (decimal.Decimal, error)
}

type StreakStore interface {
	GetByUserID(userID uint) (*models.Streak, error)
	Record(userID uint, kind string, at time.Time) error
}

type QuestStore interface {
	ListAll() ([]models.Quest, error)
	GetByID(id uint) (*models.Quest, error)
	GetUserQuest(userID, questID uint) (*models.UserQuest, error)
	ListUserQuests(userID uint) ([]models.UserQuest, error)
	Join(userID, questID uint, at time.Time) error
	Complete(userID, questID uint, at, weekStart time.Time) (marked bool, err error)
}

type BadgeStore interface {
	Award(userID uint, code string, at time.Time) (awarded bool, err error)
}

type NotificationStore interface {
	Create(n *models.Notification) error
}

// EventPusher delivers celebration events to connected clients. The ws hub
// satisfies this; a nil-safe no-op is used in tests.
type EventPusher interface {
	BroadcastToUser(userID uint, payload interface{})
}
