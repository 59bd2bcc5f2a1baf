package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"gorm.io/gorm"
)

// Generator is the opaque text-generation capability the coach depends on.
// The pkg/genai client implements it with a hard timeout and no retries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type coachUserStore interface {
	GetByID(id uint) (*models.User, error)
}

type coachGoalStore interface {
	GetMain(userID uint) (*models.Goal, error)
}

var ErrCoachUnavailable = errors.New("coach unavailable")

// CoachService builds a compact financial snapshot of the user and asks the
// generation backend for a reply. A failed or timed-out call fails closed
// with ErrCoachUnavailable; the caller sees an error, never a hang.
type CoachService struct {
	gen    Generator
	users  coachUserStore
	goals  coachGoalStore
	ledger LedgerStore
}

func NewCoachService(gen Generator, users coachUserStore, goals coachGoalStore, ledger LedgerStore) *CoachService {
	return &CoachService{gen: gen, users: users, goals: goals, ledger: ledger}
}

func (s *CoachService) Chat(ctx context.Context, userID uint, message string) (string, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", err
	}
	prompt := s.buildPrompt(u, message)
	reply, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoachUnavailable, err)
	}
	return reply, nil
}

func (s *CoachService) buildPrompt(u *models.User, message string) string {
	var b strings.Builder
	b.WriteString("You are Pocket Fund's friendly money coach for young savers. ")
	b.WriteString("Be brief, encouraging, and concrete. Never give investment advice.\n\n")
	fmt.Fprintf(&b, "User: %s, wallet balance %s.\n", u.DisplayName(), u.WalletBalance.StringFixed(2))

	if g, err := s.goals.GetMain(u.ID); err == nil {
		fmt.Fprintf(&b, "Main goal: %q, saved %s of %s.\n",
			g.Name, g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// goal lookup failures degrade the prompt, not the request
		b.WriteString("Main goal: unknown.\n")
	}

	if recent, err := s.ledger.ListTransactions(u.ID, 5, 0); err == nil && len(recent) > 0 {
		b.WriteString("Recent spending:\n")
		for _, t := range recent {
			tag := "untagged"
			if t.Tag != nil {
				tag = *t.Tag
			}
			fmt.Fprintf(&b, "- %s on %s (%s)\n", t.Amount.StringFixed(2), t.Category, tag)
		}
	}

	b.WriteString("\nUser says: ")
	b.WriteString(message)
	return b.String()
}
