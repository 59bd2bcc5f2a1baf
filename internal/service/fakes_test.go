package service

import (
	"sync"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeLedgerStore emulates the gorm ledger repository in memory. The mutex
// gives it the same atomicity contract: check-and-debit is a single
// critical section, so concurrent calls cannot overdraw a balance.
type fakeLedgerStore struct {
	mu       sync.Mutex
	balances map[uint]decimal.Decimal
	goals    map[uint]*models.Goal
	txs      []*models.Transaction
	stash    []*models.StashTransaction
	nextID   uint
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		balances: make(map[uint]decimal.Decimal),
		goals:    make(map[uint]*models.Goal),
	}
}

func (f *fakeLedgerStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeLedgerStore) CreateExpense(t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bal, ok := f.balances[t.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if bal.LessThan(t.Amount) {
		return repository.ErrInsufficientFunds
	}
	f.balances[t.UserID] = bal.Sub(t.Amount)
	t.ID = f.id()
	f.txs = append(f.txs, t)
	return nil
}

func (f *fakeLedgerStore) CreditWallet(userID uint, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bal, ok := f.balances[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.balances[userID] = bal.Add(amount)
	return nil
}

func (f *fakeLedgerStore) CreateStash(s *models.StashTransaction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var goal *models.Goal
	if s.GoalID != nil {
		g, ok := f.goals[*s.GoalID]
		if !ok || g.UserID != s.UserID {
			return false, gorm.ErrRecordNotFound
		}
		goal = g
	}
	goalCompleted := false
	switch s.Type {
	case domain.StashTypeStash:
		bal, ok := f.balances[s.UserID]
		if !ok {
			return false, gorm.ErrRecordNotFound
		}
		if bal.LessThan(s.Amount) {
			return false, repository.ErrInsufficientFunds
		}
		f.balances[s.UserID] = bal.Sub(s.Amount)
		if goal != nil {
			before := goal.CurrentAmount
			goal.CurrentAmount = before.Add(s.Amount)
			goalCompleted = before.LessThan(goal.TargetAmount) &&
				goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
		}
	case domain.StashTypeWithdraw:
		if goal != nil {
			if goal.CurrentAmount.LessThan(s.Amount) {
				return false, repository.ErrGoalInsufficientFunds
			}
			goal.CurrentAmount = goal.CurrentAmount.Sub(s.Amount)
		} else if f.netStashed(s.UserID).LessThan(s.Amount) {
			return false, repository.ErrGoalInsufficientFunds
		}
		f.balances[s.UserID] = f.balances[s.UserID].Add(s.Amount)
	}
	s.ID = f.id()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	f.stash = append(f.stash, s)
	return goalCompleted, nil
}

func (f *fakeLedgerStore) TagTransaction(userID, txID uint, tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.txs {
		if t.ID == txID && t.UserID == userID {
			if t.Tag != nil {
				return repository.ErrAlreadyTagged
			}
			t.Tag = &tag
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeLedgerStore) ListTransactions(userID uint, limit, offset int) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for i := len(f.txs) - 1; i >= 0; i-- {
		if f.txs[i].UserID == userID {
			out = append(out, *f.txs[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedgerStore) ListStashSince(userID uint, since time.Time) ([]models.StashTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StashTransaction
	for _, s := range f.stash {
		if s.UserID == userID && !s.CreatedAt.Before(since) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) StashTotal(userID uint) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.netStashed(userID), nil
}

func (f *fakeLedgerStore) netStashed(userID uint) decimal.Decimal {
	total := decimal.Zero
	for _, s := range f.stash {
		if s.UserID != userID {
			continue
		}
		if s.Type == domain.StashTypeStash {
			total = total.Add(s.Amount)
		} else {
			total = total.Sub(s.Amount)
		}
	}
	return total
}

type fakeStreakStore struct {
	mu      sync.Mutex
	streaks map[uint]*models.Streak
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{streaks: make(map[uint]*models.Streak)}
}

func (f *fakeStreakStore) GetByUserID(userID uint) (*models.Streak, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.streaks[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStreakStore) Record(userID uint, kind string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.streaks[userID]
	if !ok {
		s = &models.Streak{UserID: userID}
		f.streaks[userID] = s
	}
	if kind == domain.StreakFight {
		s.FightStreak++
		s.LastFightDate = &at
	} else {
		s.SaveStreak++
		s.LastSaveDate = &at
	}
	return nil
}

type userQuestKey struct {
	userID  uint
	questID uint
}

type fakeQuestStore struct {
	mu         sync.Mutex
	quests     map[uint]*models.Quest
	userQuests map[userQuestKey]*models.UserQuest
}

func newFakeQuestStore() *fakeQuestStore {
	return &fakeQuestStore{
		quests:     make(map[uint]*models.Quest),
		userQuests: make(map[userQuestKey]*models.UserQuest),
	}
}

func (f *fakeQuestStore) ListAll() ([]models.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Quest, 0, len(f.quests))
	for id := uint(1); id <= uint(len(f.quests)); id++ {
		if q, ok := f.quests[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestStore) GetByID(id uint) (*models.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestStore) GetUserQuest(userID, questID uint) (*models.UserQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uq, ok := f.userQuests[userQuestKey{userID, questID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *uq
	return &cp, nil
}

func (f *fakeQuestStore) ListUserQuests(userID uint) ([]models.UserQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserQuest
	for k, uq := range f.userQuests {
		if k.userID == userID {
			out = append(out, *uq)
		}
	}
	return out, nil
}

func (f *fakeQuestStore) Join(userID, questID uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := userQuestKey{userID, questID}
	if _, ok := f.userQuests[k]; ok {
		return repository.ErrAlreadyJoined
	}
	f.userQuests[k] = &models.UserQuest{UserID: userID, QuestID: questID, JoinedAt: at}
	return nil
}

func (f *fakeQuestStore) Complete(userID, questID uint, at, weekStart time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uq, ok := f.userQuests[userQuestKey{userID, questID}]
	if !ok {
		return false, nil
	}
	if uq.Completed && uq.CompletedAt != nil && !uq.CompletedAt.Before(weekStart) {
		return false, nil
	}
	uq.Completed = true
	t := at
	uq.CompletedAt = &t
	return true, nil
}

type fakeBadgeStore struct {
	mu      sync.Mutex
	awarded map[userBadgeKey]bool
}

type userBadgeKey struct {
	userID uint
	code   string
}

func newFakeBadgeStore() *fakeBadgeStore {
	return &fakeBadgeStore{awarded: make(map[userBadgeKey]bool)}
}

func (f *fakeBadgeStore) Award(userID uint, code string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := userBadgeKey{userID, code}
	if f.awarded[k] {
		return false, nil
	}
	f.awarded[k] = true
	return true, nil
}

type fakeNotifStore struct {
	mu    sync.Mutex
	notes []*models.Notification
}

func (f *fakeNotifStore) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, n)
	return nil
}

func (f *fakeNotifStore) count(typ string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, note := range f.notes {
		if note.Type == typ {
			n++
		}
	}
	return n
}

type fakeEvents struct {
	mu       sync.Mutex
	payloads []interface{}
}

func (f *fakeEvents) BroadcastToUser(userID uint, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
}
