package repository

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLog records every statement gorm sends so tests can assert on the
// generated SQL itself, not just on expectation counts.
type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (l *queryLog) add(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *queryLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.queries...)
}

// newMockDB opens gorm over a sqlmock connection. Expectations match when
// the expected fragment appears anywhere in the generated statement.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *queryLog) {
	t.Helper()
	qlog := &queryLog{}
	matcher := sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		qlog.add(actual)
		if !strings.Contains(actual, expected) {
			return fmt.Errorf("statement %q does not contain %q", actual, expected)
		}
		return nil
	})
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock, qlog
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}
