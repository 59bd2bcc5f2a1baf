package repository

import (
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(g *models.Goal) error {
	return r.db.Create(g).Error
}

func (r *GoalRepository) GetByID(userID, goalID uint) (*models.Goal, error) {
	var g models.Goal
	err := r.db.Where("id = ? AND user_id = ?", goalID, userID).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) ListByUser(userID uint) ([]models.Goal, error) {
	var list []models.Goal
	err := r.db.Where("user_id = ?", userID).
		Order("is_main DESC, created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *GoalRepository) GetMain(userID uint) (*models.Goal, error) {
	var g models.Goal
	err := r.db.Where("user_id = ? AND is_main = ?", userID, true).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Update persists the user-editable columns only. current_amount moves
// exclusively through the ledger's delta updates; writing it back from a
// read-out copy would erase stashes committed since that read.
func (r *GoalRepository) Update(g *models.Goal) error {
	return r.db.Model(g).
		Select("name", "emoji", "target_amount", "deadline").
		Updates(g).Error
}

func (r *GoalRepository) Delete(userID, goalID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetMain flags one goal as the dashboard feature, unsetting any other.
func (r *GoalRepository) SetMain(userID, goalID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Goal{}).
			Where("user_id = ? AND is_main = ?", userID, true).
			Update("is_main", false).Error
		if err != nil {
			return err
		}
		res := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("is_main", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
