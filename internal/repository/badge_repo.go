package repository

import (
	"errors"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

func (r *BadgeRepository) ListAll() ([]models.Badge, error) {
	var list []models.Badge
	err := r.db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *BadgeRepository) ListByUser(userID uint) ([]models.UserBadge, error) {
	var list []models.UserBadge
	err := r.db.Preload("Badge").Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&list).Error
	return list, err
}

// Award grants the badge with the given code. Returns true only when the
// grant is new; an already-held badge is a no-op.
func (r *BadgeRepository) Award(userID uint, code string, at time.Time) (bool, error) {
	var b models.Badge
	if err := r.db.Where("code = ?", code).First(&b).Error; err != nil {
		return false, err
	}
	var existing models.UserBadge
	err := r.db.Where("user_id = ? AND badge_id = ?", userID, b.ID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	err = r.db.Create(&models.UserBadge{UserID: userID, BadgeID: b.ID, AwardedAt: at}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
