package repository

import (
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) GetByUserID(userID uint) (*models.Streak, error) {
	var s models.Streak
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Record bumps the counter for kind by one, creating the row on first
// action. The increment happens in the database so concurrent actions
// cannot lose updates.
func (r *StreakRepository) Record(userID uint, kind string, at time.Time) error {
	s := &models.Streak{UserID: userID}
	counterCol, dateCol := "save_streak", "last_save_date"
	if kind == domain.StreakFight {
		counterCol, dateCol = "fight_streak", "last_fight_date"
		s.FightStreak = 1
		s.LastFightDate = &at
	} else {
		s.SaveStreak = 1
		s.LastSaveDate = &at
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			counterCol: gorm.Expr(counterCol + " + 1"),
			dateCol:    at,
		}),
	}).Create(s).Error
}
