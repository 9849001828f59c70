package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a stored user account: identity, credential digest and the two
// balances. Usernames are unique and immutable after creation.
type Account struct {
	ID             uint            `gorm:"primaryKey"`
	Username       string          `gorm:"uniqueIndex;not null"`
	DisplayName    string          `gorm:"not null"`
	PasswordHash   string          `gorm:"not null"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric"`
	SavingsBalance decimal.Decimal `gorm:"type:numeric"`
}

func (Account) TableName() string { return "tbl_accounts" }

// Transaction is one immutable ledger record. Amount is the positive
// magnitude of the movement; Account says which balance(s) moved.
type Transaction struct {
	ID              uint            `gorm:"primaryKey"`
	Username        string          `gorm:"index;not null"`
	TransactionType string          `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:numeric;not null"`
	Account         string          `gorm:"not null"`
	Timestamp       time.Time       `gorm:"not null"`
}

func (Transaction) TableName() string { return "tbl_transactions" }
