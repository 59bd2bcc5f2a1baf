package service

import (
	"errors"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidTag       = errors.New("tag must be NEED, WANT or ICK")
	ErrInvalidStashType = errors.New("type must be STASH or WITHDRAW")
)

// Badge codes awarded by ledger activity.
const (
	badgeFirstStash  = "first_stash"
	badgeGoalCrusher = "goal_crusher"
	badgeStreak7     = "streak_7"
	badgeIckFighter  = "ick_fighter"
)

// LedgerService applies the money-moving operations: expenses debit the
// wallet, stash entries shuttle money between wallet and goals. Streaks,
// badges and celebration events ride along as best-effort side effects;
// only the ledger write itself can fail the request.
type LedgerService struct {
	store   LedgerStore
	streaks StreakStore
	badges  BadgeStore
	notifs  NotificationStore
	events  EventPusher
}

func NewLedgerService(store LedgerStore, streaks StreakStore, badges BadgeStore, notifs NotificationStore, events EventPusher) *LedgerService {
	return &LedgerService{store: store, streaks: streaks, badges: badges, notifs: notifs, events: events}
}

func (s *LedgerService) CreateExpense(userID uint, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	t := &models.Transaction{
		UserID:      userID,
		Amount:      amount.Round(2),
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := s.store.CreateExpense(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreditWallet records incoming money (allowance, gifts) as a wallet credit.
func (s *LedgerService) CreditWallet(userID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return s.store.CreditWallet(userID, amount.Round(2))
}

// StashResult is what POST /stash returns: the ledger entry plus whether
// this call pushed the attached goal across its target.
type StashResult struct {
	Entry         *models.StashTransaction
	GoalCompleted bool
}

func (s *LedgerService) CreateStash(userID uint, amount decimal.Decimal, stashType string, goalID *uint) (*StashResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidStashType(stashType) {
		return nil, ErrInvalidStashType
	}
	entry := &models.StashTransaction{
		Reference: uuid.NewString(),
		UserID:    userID,
		GoalID:    goalID,
		Amount:    amount.Round(2),
		Type:      stashType,
	}
	goalCompleted, err := s.store.CreateStash(entry)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if stashType == domain.StashTypeStash {
		s.recordSave(userID, now)
	}
	if goalCompleted {
		s.celebrateGoal(userID, now)
	}
	return &StashResult{Entry: entry, GoalCompleted: goalCompleted}, nil
}

func (s *LedgerService) TagTransaction(userID, txID uint, tag string) error {
	if !domain.ValidTag(tag) {
		return ErrInvalidTag
	}
	if err := s.store.TagTransaction(userID, txID, tag); err != nil {
		return err
	}
	now := time.Now()
	if err := s.streaks.Record(userID, domain.StreakFight, now); err != nil {
		log.WithError(err).Warn("fight streak not recorded")
		return nil
	}
	if st, err := s.streaks.GetByUserID(userID); err == nil && st.FightStreak >= 10 {
		s.award(userID, badgeIckFighter, now)
	}
	return nil
}

func (s *LedgerService) ListTransactions(userID uint, limit, offset int) ([]models.Transaction, error) {
	return s.store.ListTransactions(userID, limit, offset)
}

func (s *LedgerService) StashTotal(userID uint) (decimal.Decimal, error) {
	return s.store.StashTotal(userID)
}

func (s *LedgerService) recordSave(userID uint, now time.Time) {
	if err := s.streaks.Record(userID, domain.StreakSave, now); err != nil {
		log.WithError(err).Warn("save streak not recorded")
		return
	}
	s.award(userID, badgeFirstStash, now)
	if st, err := s.streaks.GetByUserID(userID); err == nil && st.SaveStreak >= 7 {
		s.award(userID, badgeStreak7, now)
	}
}

func (s *LedgerService) celebrateGoal(userID uint, now time.Time) {
	n := &models.Notification{
		UserID: userID,
		Type:   domain.NotifGoalCompleted,
		Title:  "Goal reached!",
		Body:   "Your stash just hit its target. Treat yourself (a little).",
	}
	if err := s.notifs.Create(n); err != nil {
		log.WithError(err).Warn("goal notification not stored")
	}
	if s.events != nil {
		s.events.BroadcastToUser(userID, map[string]interface{}{
			"type":         domain.NotifGoalCompleted,
			"notification": n,
		})
	}
	s.award(userID, badgeGoalCrusher, now)
}

func (s *LedgerService) award(userID uint, code string, at time.Time) {
	awarded, err := s.badges.Award(userID, code, at)
	if err != nil {
		log.WithError(err).WithField("badge", code).Warn("badge not awarded")
		return
	}
	if awarded && s.events != nil {
		s.events.BroadcastToUser(userID, map[string]interface{}{
			"type":  domain.NotifBadgeAwarded,
			"badge": code,
		})
	}
}
