package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/domain"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type ledgerFixture struct {
	svc     *LedgerService
	store   *fakeLedgerStore
	streaks *fakeStreakStore
	badges  *fakeBadgeStore
	notifs  *fakeNotifStore
	events  *fakeEvents
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		store:   newFakeLedgerStore(),
		streaks: newFakeStreakStore(),
		badges:  newFakeBadgeStore(),
		notifs:  &fakeNotifStore{},
		events:  &fakeEvents{},
	}
	f.svc = NewLedgerService(f.store, f.streaks, f.badges, f.notifs, f.events)
	return f
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateExpenseDebitsWallet(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")

	tx, err := f.svc.CreateExpense(1, dec("37.25"), "food", "lunch", time.Now())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if tx.ID == 0 {
		t.Error("expected transaction to be persisted with an id")
	}
	if got := f.store.balances[1]; !got.Equal(dec("62.75")) {
		t.Errorf("balance = %s, want 62.75", got)
	}
}

func TestCreateExpenseInsufficientFunds(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("10.00")

	_, err := f.svc.CreateExpense(1, dec("10.01"), "food", "", time.Now())
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if got := f.store.balances[1]; !got.Equal(dec("10.00")) {
		t.Errorf("balance changed on rejected expense: %s", got)
	}
	if len(f.store.txs) != 0 {
		t.Errorf("rejected expense left %d transactions", len(f.store.txs))
	}
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")

	for _, amount := range []string{"0", "-5.00"} {
		if _, err := f.svc.CreateExpense(1, dec(amount), "misc", "", time.Now()); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %s: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

// Ten thousand one-paisa expenses must leave the balance exact to the paisa.
// Float arithmetic drifts here; decimals must not.
func TestExpenseDecimalExactness(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("200.00")

	for i := 0; i < 10000; i++ {
		if _, err := f.svc.CreateExpense(1, dec("0.01"), "micro", "", time.Now()); err != nil {
			t.Fatalf("expense %d: %v", i, err)
		}
	}
	if got := f.store.balances[1]; !got.Equal(dec("100.00")) {
		t.Errorf("balance = %s, want exactly 100.00", got)
	}
}

// A fresh account starts at zero; crediting allowance money is what makes
// every spend path reachable.
func TestCreditWalletFundsAFreshAccount(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = decimal.Zero

	if err := f.svc.CreditWallet(1, dec("0")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero credit err = %v, want ErrInvalidAmount", err)
	}
	if err := f.svc.CreditWallet(1, dec("100.00")); err != nil {
		t.Fatalf("CreditWallet: %v", err)
	}
	if _, err := f.svc.CreateExpense(1, dec("40.00"), "food", "", time.Now()); err != nil {
		t.Fatalf("expense after credit: %v", err)
	}
	if got := f.store.balances[1]; !got.Equal(dec("60.00")) {
		t.Errorf("balance = %s, want 60.00", got)
	}
}

func TestCreateStashMovesMoneyIntoGoal(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("500.00")
	goalID := uint(7)
	f.store.goals[goalID] = &models.Goal{ID: goalID, UserID: 1, TargetAmount: dec("1000.00"), CurrentAmount: dec("0")}

	res, err := f.svc.CreateStash(1, dec("120.50"), domain.StashTypeStash, &goalID)
	if err != nil {
		t.Fatalf("CreateStash: %v", err)
	}
	if res.GoalCompleted {
		t.Error("goal should not be completed at 120.50/1000")
	}
	if res.Entry.Reference == "" {
		t.Error("stash entry missing reference")
	}
	if got := f.store.balances[1]; !got.Equal(dec("379.50")) {
		t.Errorf("wallet = %s, want 379.50", got)
	}
	if got := f.store.goals[goalID].CurrentAmount; !got.Equal(dec("120.50")) {
		t.Errorf("goal = %s, want 120.50", got)
	}
}

func TestCreateStashGoalCompletionFiresOnce(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("500.00")
	goalID := uint(3)
	f.store.goals[goalID] = &models.Goal{ID: goalID, UserID: 1, TargetAmount: dec("500.00"), CurrentAmount: dec("450.00")}

	res, err := f.svc.CreateStash(1, dec("50.00"), domain.StashTypeStash, &goalID)
	if err != nil {
		t.Fatalf("CreateStash: %v", err)
	}
	if !res.GoalCompleted {
		t.Fatal("crossing 450 -> 500 must report goalCompleted")
	}
	if got := f.notifs.count(domain.NotifGoalCompleted); got != 1 {
		t.Errorf("goal notifications = %d, want 1", got)
	}
	if !f.badges.awarded[userBadgeKey{1, badgeGoalCrusher}] {
		t.Error("goal_crusher badge not awarded")
	}

	// Stashing again on the already-complete goal must not re-celebrate.
	res, err = f.svc.CreateStash(1, dec("10.00"), domain.StashTypeStash, &goalID)
	if err != nil {
		t.Fatalf("second CreateStash: %v", err)
	}
	if res.GoalCompleted {
		t.Error("goalCompleted re-fired on an already-complete goal")
	}
	if got := f.notifs.count(domain.NotifGoalCompleted); got != 1 {
		t.Errorf("goal notifications after second stash = %d, want 1", got)
	}
}

func TestCreateStashInsufficientFunds(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("49.99")

	_, err := f.svc.CreateStash(1, dec("50.00"), domain.StashTypeStash, nil)
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if got := f.store.balances[1]; !got.Equal(dec("49.99")) {
		t.Errorf("balance changed on rejected stash: %s", got)
	}
}

func TestCreateStashRejectsBadType(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")

	if _, err := f.svc.CreateStash(1, dec("10.00"), "TRANSFER", nil); !errors.Is(err, ErrInvalidStashType) {
		t.Fatalf("err = %v, want ErrInvalidStashType", err)
	}
}

func TestWithdrawCannotOverdrawGoal(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("0")
	goalID := uint(2)
	f.store.goals[goalID] = &models.Goal{ID: goalID, UserID: 1, TargetAmount: dec("500.00"), CurrentAmount: dec("30.00")}

	_, err := f.svc.CreateStash(1, dec("30.01"), domain.StashTypeWithdraw, &goalID)
	if !errors.Is(err, repository.ErrGoalInsufficientFunds) {
		t.Fatalf("err = %v, want ErrGoalInsufficientFunds", err)
	}
	if got := f.store.goals[goalID].CurrentAmount; !got.Equal(dec("30.00")) {
		t.Errorf("goal changed on rejected withdraw: %s", got)
	}

	res, err := f.svc.CreateStash(1, dec("30.00"), domain.StashTypeWithdraw, &goalID)
	if err != nil {
		t.Fatalf("exact withdraw: %v", err)
	}
	if res.GoalCompleted {
		t.Error("withdraw must never report goalCompleted")
	}
	if got := f.store.balances[1]; !got.Equal(dec("30.00")) {
		t.Errorf("wallet after withdraw = %s, want 30.00", got)
	}
}

func TestWithdrawFromBufferGuardedByNetTotal(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")
	if _, err := f.svc.CreateStash(1, dec("30.00"), domain.StashTypeStash, nil); err != nil {
		t.Fatalf("setup stash: %v", err)
	}

	if _, err := f.svc.CreateStash(1, dec("50.00"), domain.StashTypeWithdraw, nil); !errors.Is(err, repository.ErrGoalInsufficientFunds) {
		t.Fatalf("err = %v, want ErrGoalInsufficientFunds", err)
	}
	if _, err := f.svc.CreateStash(1, dec("30.00"), domain.StashTypeWithdraw, nil); err != nil {
		t.Fatalf("full buffer withdraw: %v", err)
	}
	total, err := f.svc.StashTotal(1)
	if err != nil {
		t.Fatalf("StashTotal: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Errorf("net stash total = %s, want 0", total)
	}
}

// Two concurrent ₹50 stashes against an ₹80 wallet: exactly one must win.
func TestConcurrentStashSingleWinner(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("80.00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateStash(1, dec("50.00"), domain.StashTypeStash, nil)
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrInsufficientFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != 1 {
		t.Fatalf("got %d successes and %d rejections, want 1 and 1", ok, rejected)
	}
	if got := f.store.balances[1]; !got.Equal(dec("30.00")) {
		t.Errorf("balance = %s, want 30.00", got)
	}
}

func TestStashBumpsSaveStreakAndFirstStashBadge(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")

	if _, err := f.svc.CreateStash(1, dec("10.00"), domain.StashTypeStash, nil); err != nil {
		t.Fatalf("CreateStash: %v", err)
	}
	st, err := f.streaks.GetByUserID(1)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if st.SaveStreak != 1 {
		t.Errorf("saveStreak = %d, want 1", st.SaveStreak)
	}
	if !f.badges.awarded[userBadgeKey{1, badgeFirstStash}] {
		t.Error("first_stash badge not awarded")
	}

	// A withdraw is not a save action.
	if _, err := f.svc.CreateStash(1, dec("5.00"), domain.StashTypeWithdraw, nil); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	st, _ = f.streaks.GetByUserID(1)
	if st.SaveStreak != 1 {
		t.Errorf("saveStreak after withdraw = %d, want 1", st.SaveStreak)
	}
}

func TestSevenSavesAwardStreakBadge(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")

	for i := 0; i < 7; i++ {
		if _, err := f.svc.CreateStash(1, dec("1.00"), domain.StashTypeStash, nil); err != nil {
			t.Fatalf("stash %d: %v", i, err)
		}
	}
	if !f.badges.awarded[userBadgeKey{1, badgeStreak7}] {
		t.Error("streak_7 badge not awarded at 7 saves")
	}
}

func TestTagTransaction(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("100.00")
	tx, err := f.svc.CreateExpense(1, dec("20.00"), "snacks", "", time.Now())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if err := f.svc.TagTransaction(1, tx.ID, "SPICY"); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("invalid tag err = %v, want ErrInvalidTag", err)
	}
	if err := f.svc.TagTransaction(1, tx.ID, domain.TagIck); err != nil {
		t.Fatalf("TagTransaction: %v", err)
	}
	st, err := f.streaks.GetByUserID(1)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if st.FightStreak != 1 {
		t.Errorf("fightStreak = %d, want 1", st.FightStreak)
	}

	// A tag is set-once; retagging must not bump the streak again.
	if err := f.svc.TagTransaction(1, tx.ID, domain.TagNeed); !errors.Is(err, repository.ErrAlreadyTagged) {
		t.Fatalf("retag err = %v, want ErrAlreadyTagged", err)
	}
	st, _ = f.streaks.GetByUserID(1)
	if st.FightStreak != 1 {
		t.Errorf("fightStreak after rejected retag = %d, want 1", st.FightStreak)
	}
}

func TestTenFightsAwardIckFighterBadge(t *testing.T) {
	f := newLedgerFixture()
	f.store.balances[1] = dec("1000.00")

	for i := 0; i < 10; i++ {
		tx, err := f.svc.CreateExpense(1, dec("5.00"), "impulse", "", time.Now())
		if err != nil {
			t.Fatalf("expense %d: %v", i, err)
		}
		if err := f.svc.TagTransaction(1, tx.ID, domain.TagIck); err != nil {
			t.Fatalf("tag %d: %v", i, err)
		}
	}
	if !f.badges.awarded[userBadgeKey{1, badgeIckFighter}] {
		t.Error("ick_fighter badge not awarded at 10 fights")
	}
}
