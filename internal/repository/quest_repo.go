package repository

import (
	"errors"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyJoined = errors.New("quest already joined")

type QuestRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) ListAll() ([]models.Quest, error) {
	var list []models.Quest
	err := r.db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *QuestRepository) GetByID(id uint) (*models.Quest, error) {
	var q models.Quest
	err := r.db.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestRepository) GetUserQuest(userID, questID uint) (*models.UserQuest, error) {
	var uq models.UserQuest
	err := r.db.Where("user_id = ? AND quest_id = ?", userID, questID).First(&uq).Error
	if err != nil {
		return nil, err
	}
	return &uq, nil
}

func (r *QuestRepository) ListUserQuests(userID uint) ([]models.UserQuest, error) {
	var list []models.UserQuest
	err := r.db.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *QuestRepository) Join(userID, questID uint, at time.Time) error {
	_, err := r.GetUserQuest(userID, questID)
	if err == nil {
		return ErrAlreadyJoined
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.UserQuest{
		UserID:   userID,
		QuestID:  questID,
		JoinedAt: at,
	}).Error
}

// Complete marks a joined quest completed. The conditional update makes the
// call idempotent per weekly window: a quest already completed at or after
// weekStart is left untouched and reported as not newly marked.
func (r *QuestRepository) Complete(userID, questID uint, at, weekStart time.Time) (marked bool, err error) {
	res := r.db.Model(&models.UserQuest{}).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		Where("completed = ? OR completed_at IS NULL OR completed_at < ?", false, weekStart).
		Updates(map[string]interface{}{"completed": true, "completed_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
