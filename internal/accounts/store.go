// Package accounts owns user identity records and the two balances held
// against each user.
package accounts

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/storage"
)

// Hasher is the pluggable credential capability consumed at registration.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// allowedColumns is the fixed set of fields GetField/SetField may touch.
// Everything else is rejected before it reaches the database.
var allowedColumns = map[string]bool{
	"id":              true,
	"username":        true,
	"display_name":    true,
	"password_hash":   true,
	"current_balance": true,
	"savings_balance": true,
}

type Store struct {
	db     *gorm.DB
	hasher Hasher
}

func NewStore(db *gorm.DB, hasher Hasher) *Store {
	return &Store{db: db, hasher: hasher}
}

// WithTx returns a copy of the store bound to the given transaction handle.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx, hasher: s.hasher}
}

// Create registers a new account with a fresh id and a hashed credential.
// Returns ErrDuplicateUser if the username is taken.
func (s *Store) Create(username, displayName, secret string, currentBalance, savingsBalance decimal.Decimal) error {
	taken, err := s.Exists(username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateUser, username)
	}

	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return err
	}

	record := storage.Account{
		Username:       username,
		DisplayName:    displayName,
		PasswordHash:   digest,
		CurrentBalance: currentBalance,
		SavingsBalance: savingsBalance,
	}
	if err := s.db.Create(&record).Error; err != nil {
		// The unique index catches a racing registration the Exists
		// check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, username)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetField reads a single allow-listed column for a username. Returns
// ErrNotFound if no such user exists.
func (s *Store) GetField(column, username string) (any, error) {
	if !allowedColumns[column] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}

	row := map[string]any{}
	err := s.db.Model(&storage.Account{}).
		Select(column).
		Where("username = ?", username).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", column, err)
	}
	return row[column], nil
}

// SetField writes a single allow-listed column for a username. A write that
// matches no row fails with ErrNotFound rather than passing silently.
func (s *Store) SetField(column, username string, value any) error {
	if !allowedColumns[column] {
		return fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}

	res := s.db.Model(&storage.Account{}).
		Where("username = ?", username).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to write %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return nil
}

// AdjustBalance adds delta (which may be negative) to the selected balance.
// The update is a single atomic increment at the storage layer, so two
// adjustments against the same username cannot lose an update.
func (s *Store) AdjustBalance(username string, selector Selector, delta decimal.Decimal) error {
	column := selector.column()
	res := s.db.Model(&storage.Account{}).
		Where("username = ?", username).
		Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return nil
}

func (s *Store) Exists(username string) (bool, error) {
	_, err := s.GetField("username", username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) CredentialDigest(username string) (string, error) {
	v, err := s.GetField("password_hash", username)
	if err != nil {
		return "", err
	}
	return toString(v), nil
}

func (s *Store) DisplayName(username string) (string, error) {
	v, err := s.GetField("display_name", username)
	if err != nil {
		return "", err
	}
	return toString(v), nil
}

func (s *Store) Balance(username string, selector Selector) (decimal.Decimal, error) {
	v, err := s.GetField(selector.column(), username)
	if err != nil {
		return decimal.Zero, err
	}
	return toDecimal(v)
}

// AccountNumber returns the stable id assigned at creation.
func (s *Store) AccountNumber(username string) (uint, error) {
	v, err := s.GetField("id", username)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return uint(n), nil
	case uint:
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

// toDecimal converts whatever sqlite hands back for a numeric column.
func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	case []byte:
		return decimal.NewFromString(string(n))
	default:
		return decimal.Zero, fmt.Errorf("unexpected balance type %T", v)
	}
}
