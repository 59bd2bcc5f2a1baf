package repository

import (
	"errors"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient wallet balance")
	ErrGoalInsufficientFunds = errors.New("insufficient goal balance")
)

// LedgerRepository owns every write that moves money. Wallet and goal
// balances only ever change by delta inside a single DB transaction; a
// conditional UPDATE enforces sufficiency so concurrent requests cannot
// overdraw a balance.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateExpense debits the wallet and records the transaction as one unit.
// Returns ErrInsufficientFunds without side effects when the wallet cannot
// cover the amount.
func (r *LedgerRepository) CreateExpense(t *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := debitWallet(tx, t.UserID, t.Amount); err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

// CreateStash applies a stash or withdraw entry atomically. For STASH the
// wallet is debited and, when a goal is attached, the goal credited; the
// returned flag is true only when that credit moved the goal from below its
// target to at or above it. For WITHDRAW the goal (or the unattached buffer)
// is debited and the wallet credited.
func (r *LedgerRepository) CreateStash(s *models.StashTransaction) (goalCompleted bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var goal *models.Goal
		if s.GoalID != nil {
			goal = &models.Goal{}
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND user_id = ?", *s.GoalID, s.UserID).
				First(goal).Error
			if err != nil {
				return err
			}
		}
		switch s.Type {
		case domain.StashTypeStash:
			if err := debitWallet(tx, s.UserID, s.Amount); err != nil {
				return err
			}
			if goal != nil {
				err := tx.Model(goal).
					Update("current_amount", gorm.Expr("current_amount + ?", s.Amount)).Error
				if err != nil {
					return err
				}
				after := goal.CurrentAmount.Add(s.Amount)
				goalCompleted = goal.CurrentAmount.LessThan(goal.TargetAmount) &&
					after.GreaterThanOrEqual(goal.TargetAmount)
			}
		case domain.StashTypeWithdraw:
			if goal != nil {
				res := tx.Model(&models.Goal{}).
					Where("id = ? AND current_amount >= ?", goal.ID, s.Amount).
					Update("current_amount", gorm.Expr("current_amount - ?", s.Amount))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrGoalInsufficientFunds
				}
			} else {
				// Lock the wallet row first so the buffer sum is read
				// against a stable ledger; without it two concurrent
				// withdrawals could both pass the check below.
				var owner models.User
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&owner, s.UserID).Error
				if err != nil {
					return err
				}
				total, err := stashTotal(tx, s.UserID)
				if err != nil {
					return err
				}
				if total.LessThan(s.Amount) {
					return ErrGoalInsufficientFunds
				}
			}
			err := tx.Model(&models.User{}).Where("id = ?", s.UserID).
				Update("wallet_balance", gorm.Expr("wallet_balance + ?", s.Amount)).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(s).Error
	})
	if err != nil {
		return false, err
	}
	return goalCompleted, nil
}

// CreditWallet adds amount to the wallet. Allowance and gift money enter
// the ledger here; like every balance change it is a single atomic delta.
func (r *LedgerRepository) CreditWallet(userID uint, amount decimal.Decimal) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TagTransaction sets the tag on an untagged transaction. Tagging is
// set-once: an already tagged transaction returns ErrAlreadyTagged.
func (r *LedgerRepository) TagTransaction(userID, txID uint, tag string) error {
	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ? AND tag IS NULL", txID, userID).
		Update("tag", tag)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		err := r.db.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", txID, userID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrAlreadyTagged
	}
	return nil
}

var ErrAlreadyTagged = errors.New("transaction already tagged")

func (r *LedgerRepository) ListTransactions(userID uint, limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *LedgerRepository) ListStashSince(userID uint, since time.Time) ([]models.StashTransaction, error) {
	var list []models.StashTransaction
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// StashTotal returns the net stashed amount: sum of stashes minus withdraws.
func (r *LedgerRepository) StashTotal(userID uint) (decimal.Decimal, error) {
	return stashTotal(r.db, userID)
}

func stashTotal(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Model(&models.StashTransaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", domain.StashTypeStash).
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

// debitWallet subtracts amount from the wallet iff the balance covers it.
// The WHERE guard makes the check-and-debit a single atomic statement.
func debitWallet(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientFunds
	}
	return nil
}
