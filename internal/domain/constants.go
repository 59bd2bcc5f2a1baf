package domain

// Transaction tags. A transaction starts untagged; tagging is set-once.
const (
	TagNeed = "NEED"
	TagWant = "WANT"
	TagIck  = "ICK"
)

// Stash ledger entry types.
const (
	StashTypeStash    = "STASH"    // wallet -> goal/buffer
	StashTypeWithdraw = "WITHDRAW" // goal/buffer -> wallet
)

// Streak kinds.
const (
	StreakSave  = "SAVE"
	StreakFight = "FIGHT"
)

// Quest kinds.
const (
	QuestKindLesson    = "LESSON"
	QuestKindChallenge = "CHALLENGE"
)

// Quest difficulty levels.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// Challenge progress rules. Progress is keyed by rule id, never by quest
// title, so copy changes cannot break the calculator.
const (
	RuleWeeklySave  = "weekly_save"  // sum of this week's stashes vs target
	RuleSingleStash = "single_stash" // largest single stash this week vs target
)

// Notification types pushed to the events channel.
const (
	NotifQuestCompleted = "QUEST_COMPLETED"
	NotifGoalCompleted  = "GOAL_COMPLETED"
	NotifBadgeAwarded   = "BADGE_AWARDED"
)

func ValidTag(tag string) bool {
	return tag == TagNeed || tag == TagWant || tag == TagIck
}

func ValidStashType(t string) bool {
	return t == StashTypeStash || t == StashTypeWithdraw
}
