package accounts

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/crypto"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.Handle(), crypto.NewBcrypt(4))
}

func mustCreate(t *testing.T, s *Store, username string, current, savings float64) {
	t.Helper()
	err := s.Create(username, "Test User", "secret-password", decimal.NewFromFloat(current), decimal.NewFromFloat(savings))
	if err != nil {
		t.Fatalf("failed to create %s: %v", username, err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 100, 50)

	err := s.Create("alice", "Other Alice", "another-secret", decimal.Zero, decimal.Zero)
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("want ErrDuplicateUser, got %v", err)
	}

	// The original record is untouched.
	balance, err := s.Balance("alice", Current)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("want balance 100, got %s", balance)
	}
	name, err := s.DisplayName("alice")
	if err != nil {
		t.Fatalf("failed to read display name: %v", err)
	}
	if name != "Test User" {
		t.Fatalf("want display name unchanged, got %q", name)
	}
}

func TestCreateHashesTheSecret(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 0, 0)

	digest, err := s.CredentialDigest("alice")
	if err != nil {
		t.Fatalf("failed to read digest: %v", err)
	}
	if digest == "secret-password" {
		t.Fatal("secret stored in plaintext")
	}
	if !crypto.NewBcrypt(4).Verify("secret-password", digest) {
		t.Fatal("stored digest does not verify against the secret")
	}
}

func TestGetFieldAllowList(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 100, 50)

	v, err := s.GetField("display_name", "alice")
	if err != nil {
		t.Fatalf("expected allow-listed read, got err: %v", err)
	}
	if toString(v) != "Test User" {
		t.Fatalf("want 'Test User', got %v", v)
	}

	if _, err := s.GetField("password_hash; DROP TABLE tbl_accounts", "alice"); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("want ErrInvalidColumn, got %v", err)
	}
	if _, err := s.GetField("favourite_colour", "alice"); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("want ErrInvalidColumn, got %v", err)
	}
}

func TestGetFieldUnknownUser(t *testing.T) {
	s := testStore(t)
	if _, err := s.GetField("username", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSetField(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 0, 0)

	if err := s.SetField("display_name", "alice", "Alice Wonderland"); err != nil {
		t.Fatalf("expected write ok, got err: %v", err)
	}
	name, err := s.DisplayName("alice")
	if err != nil {
		t.Fatalf("failed to read display name: %v", err)
	}
	if name != "Alice Wonderland" {
		t.Fatalf("want updated name, got %q", name)
	}

	if err := s.SetField("favourite_colour", "alice", "blue"); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("want ErrInvalidColumn, got %v", err)
	}
	// A write that matches no row fails loudly rather than passing silently.
	if err := s.SetField("display_name", "nobody", "Ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdjustBalance(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 100, 50)

	if err := s.AdjustBalance("alice", Current, decimal.NewFromFloat(25)); err != nil {
		t.Fatalf("expected adjust ok, got err: %v", err)
	}
	balance, err := s.Balance("alice", Current)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("want 125, got %s", balance)
	}

	// Negative deltas may drive the balance past zero.
	if err := s.AdjustBalance("alice", Current, decimal.NewFromFloat(-200)); err != nil {
		t.Fatalf("expected adjust ok, got err: %v", err)
	}
	balance, err = s.Balance("alice", Current)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(-75)) {
		t.Fatalf("want -75, got %s", balance)
	}

	// The savings balance is untouched throughout.
	savings, err := s.Balance("alice", Savings)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	if !savings.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("want savings 50, got %s", savings)
	}

	if err := s.AdjustBalance("nobody", Current, decimal.NewFromInt(10)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdjustBalanceKeepsPennies(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 10.10, 0)

	if err := s.AdjustBalance("alice", Current, decimal.NewFromFloat(0.25)); err != nil {
		t.Fatalf("expected adjust ok, got err: %v", err)
	}
	balance, err := s.Balance("alice", Current)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromFloat(10.35)) {
		t.Fatalf("want 10.35, got %s", balance)
	}
}

func TestExistsAndAccountNumber(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "alice", 0, 0)
	mustCreate(t, s, "bob", 0, 0)

	exists, err := s.Exists("alice")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("want alice to exist")
	}
	exists, err = s.Exists("nobody")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("want nobody to not exist")
	}

	aliceNumber, err := s.AccountNumber("alice")
	if err != nil {
		t.Fatalf("failed to read account number: %v", err)
	}
	bobNumber, err := s.AccountNumber("bob")
	if err != nil {
		t.Fatalf("failed to read account number: %v", err)
	}
	if aliceNumber == 0 || bobNumber == 0 || aliceNumber == bobNumber {
		t.Fatalf("want distinct non-zero account numbers, got %d and %d", aliceNumber, bobNumber)
	}
}

func TestSelector(t *testing.T) {
	if !Current.Valid() || !Savings.Valid() {
		t.Fatal("want the two real selectors to be valid")
	}
	if Selector("crypto").Valid() {
		t.Fatal("want unknown selector to be invalid")
	}
	if Current.Other() != Savings || Savings.Other() != Current {
		t.Fatal("want Other to flip between the two accounts")
	}
}
