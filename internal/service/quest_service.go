package service

import (
	"strconv"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// QuestStatus is one quest as seen by one user.
type QuestStatus struct {
	Quest     models.Quest `json:"quest"`
	Joined    bool         `json:"joined"`
	Active    bool         `json:"active"`
	Completed bool         `json:"completed"`
	Progress  int          `json:"progress"`
}

// QuestService derives challenge progress from the current week's stash
// history and marks completions. A quest is active once joined and until
// completed within the running week; hitting 100% marks it completed exactly
// once per weekly crossing and emits a single celebration.
type QuestService struct {
	quests QuestStore
	ledger LedgerStore
	notifs NotificationStore
	events EventPusher
}

func NewQuestService(quests QuestStore, ledger LedgerStore, notifs NotificationStore, events EventPusher) *QuestService {
	return &QuestService{quests: quests, ledger: ledger, notifs: notifs, events: events}
}

// WeekStart returns the most recent Sunday 00:00 in t's location.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}

// Overview computes every quest's state for the user. Completions detected
// while computing are applied as a side effect.
func (s *QuestService) Overview(userID uint, now time.Time) ([]QuestStatus, error) {
	quests, err := s.quests.ListAll()
	if err != nil {
		return nil, err
	}
	userQuests, err := s.quests.ListUserQuests(userID)
	if err != nil {
		return nil, err
	}
	joined := make(map[uint]*models.UserQuest, len(userQuests))
	for i := range userQuests {
		joined[userQuests[i].QuestID] = &userQuests[i]
	}
	weekStart := WeekStart(now)
	history, err := s.ledger.ListStashSince(userID, weekStart)
	if err != nil {
		return nil, err
	}

	out := make([]QuestStatus, 0, len(quests))
	for _, q := range quests {
		st := QuestStatus{Quest: q}
		uq := joined[q.ID]
		st.Joined = uq != nil
		if uq != nil && uq.CompletedSince(weekStart) {
			st.Completed = true
			st.Progress = 100
			out = append(out, st)
			continue
		}
		if content, ok := q.Challenge(); ok {
			st.Progress = challengeProgress(content, history)
		}
		st.Active = st.Joined
		if st.Active && st.Progress >= 100 {
			marked, err := s.quests.Complete(userID, q.ID, now, weekStart)
			if err != nil {
				log.WithError(err).WithField("quest", q.ID).Warn("quest completion not recorded")
			} else if marked {
				st.Completed = true
				st.Active = false
				s.celebrate(userID, q)
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *QuestService) Join(userID, questID uint, now time.Time) error {
	if _, err := s.quests.GetByID(questID); err != nil {
		return err
	}
	return s.quests.Join(userID, questID, now)
}

// Complete marks a joined quest done (used by lesson quests, where the
// client reports completion). Celebrates only when newly marked this week.
func (s *QuestService) Complete(userID, questID uint, now time.Time) error {
	q, err := s.quests.GetByID(questID)
	if err != nil {
		return err
	}
	if _, err := s.quests.GetUserQuest(userID, questID); err != nil {
		return err
	}
	marked, err := s.quests.Complete(userID, questID, now, WeekStart(now))
	if err != nil {
		return err
	}
	if marked {
		s.celebrate(userID, *q)
	}
	return nil
}

func (s *QuestService) celebrate(userID uint, q models.Quest) {
	n := &models.Notification{
		UserID: userID,
		Type:   domain.NotifQuestCompleted,
		Title:  "Quest complete: " + q.Title,
		Body:   "You earned " + strconv.Itoa(q.Points) + " points. Keep it rolling!",
	}
	if err := s.notifs.Create(n); err != nil {
		log.WithError(err).Warn("quest notification not stored")
	}
	if s.events != nil {
		s.events.BroadcastToUser(userID, map[string]interface{}{
			"type":         domain.NotifQuestCompleted,
			"quest_id":     q.ID,
			"points":       q.Points,
			"notification": n,
		})
	}
}

// challengeProgress maps this week's stash history onto a 0-100 percentage
// according to the challenge rule.
func challengeProgress(c models.ChallengeContent, history []models.StashTransaction) int {
	switch c.Rule {
	case domain.RuleWeeklySave:
		sum := decimal.Zero
		for _, st := range history {
			if st.Type == domain.StashTypeStash {
				sum = sum.Add(st.Amount)
			}
		}
		return percentOf(sum, c.Target)
	case domain.RuleSingleStash:
		best := decimal.Zero
		for _, st := range history {
			if st.Type == domain.StashTypeStash && st.Amount.GreaterThan(best) {
				best = st.Amount
			}
		}
		return percentOf(best, c.Target)
	}
	return 0
}

func percentOf(amount, target decimal.Decimal) int {
	if !target.IsPositive() {
		return 0
	}
	p := amount.Div(target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return int(p)
}
