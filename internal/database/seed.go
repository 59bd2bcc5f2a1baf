package database

import (
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedContent inserts the built-in quest and badge catalog. Idempotent:
// existing rows are left untouched (matched on title/code).
func SeedContent(db *gorm.DB) {
	quests := []models.Quest{
		{
			Title:       "The 1% Rule",
			Description: "Stash at least 1% of your weekly allowance in one go.",
			Difficulty:  domain.DifficultyEasy,
			Points:      50,
			Kind:        domain.QuestKindChallenge,
			Content:     `{"rule":"single_stash","type":"save","target":"50"}`,
		},
		{
			Title:       "Weekly Saver",
			Description: "Stash a total of 1000 this week.",
			Difficulty:  domain.DifficultyMedium,
			Points:      100,
			Kind:        domain.QuestKindChallenge,
			Content:     `{"rule":"weekly_save","type":"save","target":"1000"}`,
		},
		{
			Title:       "Needs vs Wants",
			Description: "Learn to tell a need from a want before you spend.",
			Difficulty:  domain.DifficultyEasy,
			Points:      30,
			Kind:        domain.QuestKindLesson,
			Content:     `{"slides":["Every purchase is a vote.","Needs keep you running.","Wants are fine, in moderation."]}`,
		},
		{
			Title:       "Ick Detox",
			Description: "Spot your impulse buys and tag them honestly.",
			Difficulty:  domain.DifficultyMedium,
			Points:      60,
			Kind:        domain.QuestKindLesson,
			Content:     `{"slides":["An ick is money you wish you had back.","Tagging icks builds the fight streak."]}`,
		},
	}
	for i := range quests {
		err := db.Where(models.Quest{Title: quests[i].Title}).
			FirstOrCreate(&quests[i]).Error
		if err != nil {
			log.WithError(err).Warn("seed quest failed")
		}
	}

	badges := []models.Badge{
		{Code: "first_stash", Title: "First Stash", Description: "Made your first stash.", Icon: "🪙", Points: 10},
		{Code: "goal_crusher", Title: "Goal Crusher", Description: "Completed a savings goal.", Icon: "🏆", Points: 100},
		{Code: "streak_7", Title: "On Fire", Description: "Seven save actions logged.", Icon: "🔥", Points: 50},
		{Code: "ick_fighter", Title: "Ick Fighter", Description: "Tagged ten transactions.", Icon: "🥊", Points: 40},
	}
	for i := range badges {
		err := db.Where(models.Badge{Code: badges[i].Code}).
			FirstOrCreate(&badges[i]).Error
		if err != nil {
			log.WithError(err).Warn("seed badge failed")
		}
	}
}
