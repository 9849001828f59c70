// Package ledger keeps the append-only, time-ordered record of every
// balance-affecting event.
package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/storage"
)

// Kind is the closed set of movement types a record can carry.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// Label tags which balance(s) a record affected. Serialized as-is at the
// storage boundary.
type Label string

const (
	LabelCurrent          Label = "current"
	LabelSavings          Label = "savings"
	LabelCurrentToSavings Label = "current_to_savings"
	LabelSavingsToCurrent Label = "savings_to_current"
)

// DefaultWindowDays is the history window shown to users.
const DefaultWindowDays = 7

// Entry is one immutable ledger record. Amount is always the positive
// magnitude of the movement, never a signed delta.
type Entry struct {
	ID        uint
	Username  string
	Kind      Kind
	Amount    decimal.Decimal
	Label     Label
	Timestamp time.Time
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithTx returns a copy of the store bound to the given transaction handle.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx, now: s.now}
}

// Append writes one record with a store-assigned timestamp and id. Records
// are never deduplicated: appending the same event twice yields two rows.
func (s *Store) Append(username string, kind Kind, amount decimal.Decimal, label Label) (*Entry, error) {
	record := storage.Transaction{
		Username:        username,
		TransactionType: string(kind),
		Amount:          amount,
		Account:         string(label),
		Timestamp:       s.now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to log transaction: %w", err)
	}
	return entryFromRecord(record), nil
}

// Recent returns the user's records from the last windowDays, newest first.
// A read fault is logged and yields an empty history rather than an error so
// the caller can degrade gracefully.
func (s *Store) Recent(username string, windowDays int) []Entry {
	cutoff := s.now().AddDate(0, 0, -windowDays)

	var records []storage.Transaction
	err := s.db.
		Where("username = ? AND timestamp >= ?", username, cutoff).
		Order("timestamp DESC").
		Find(&records).Error
	if err != nil {
		slog.Error("failed to query transactions", "username", username, "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, *entryFromRecord(record))
	}
	return entries
}

func entryFromRecord(record storage.Transaction) *Entry {
	return &Entry{
		ID:        record.ID,
		Username:  record.Username,
		Kind:      Kind(record.TransactionType),
		Amount:    record.Amount,
		Label:     Label(record.Account),
		Timestamp: record.Timestamp,
	}
}
