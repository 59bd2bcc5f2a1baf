package service

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// StreakSummary is the zero-defaulting view returned by GET /streak.
type StreakSummary struct {
	SaveStreak  int `json:"saveStreak"`
	FightStreak int `json:"fightStreak"`
}

// StreakService reads and bumps the per-user action counters. Counters
// increment on every qualifying action with no calendar-gap check; this
// mirrors the product's current "streak" semantics (closer to a lifetime
// action count) and is deliberately not corrected here.
type StreakService struct {
	store StreakStore
}

func NewStreakService(store StreakStore) *StreakService {
	return &StreakService{store: store}
}

func (s *StreakService) Record(userID uint, kind string, at time.Time) error {
	return s.store.Record(userID, kind, at)
}

// Summary returns the user's counters, defaulting to zero when the user has
// never performed a qualifying action.
func (s *StreakService) Summary(userID uint) (StreakSummary, error) {
	st, err := s.store.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StreakSummary{}, nil
		}
		return StreakSummary{}, err
	}
	return StreakSummary{SaveStreak: st.SaveStreak, FightStreak: st.FightStreak}, nil
}
