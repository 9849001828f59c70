// Package bank couples balance mutations to ledger records. Every operation
// runs its store writes inside one database transaction, so a balance change
// cannot land without its matching ledger entry or vice versa.
package bank

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/accounts"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/ledger"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/storage"
)

type Bank struct {
	db       *storage.Database
	accounts *accounts.Store
	ledger   *ledger.Store
}

func New(db *storage.Database, accountStore *accounts.Store, ledgerStore *ledger.Store) *Bank {
	return &Bank{db: db, accounts: accountStore, ledger: ledgerStore}
}

// Deposit adds amount to the selected balance and records the event.
func (b *Bank) Deposit(username string, amount decimal.Decimal, target accounts.Selector) error {
	if err := validate(amount, target); err != nil {
		return err
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := b.accounts.WithTx(tx).AdjustBalance(username, target, amount); err != nil {
			return err
		}
		_, err := b.ledger.WithTx(tx).Append(username, ledger.KindDeposit, amount, labelFor(target))
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("deposit", "username", username, "amount", amount, "account", target)
	return nil
}

// Withdraw removes amount from the selected balance and records the event.
// No sufficiency check is made: the balance may be driven negative.
func (b *Bank) Withdraw(username string, amount decimal.Decimal, source accounts.Selector) error {
	if err := validate(amount, source); err != nil {
		return err
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := b.accounts.WithTx(tx).AdjustBalance(username, source, amount.Neg()); err != nil {
			return err
		}
		_, err := b.ledger.WithTx(tx).Append(username, ledger.KindWithdraw, amount, labelFor(source))
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("withdraw", "username", username, "amount", amount, "account", source)
	return nil
}

// Transfer moves amount from the source balance to the other balance and
// records a single directional ledger entry for the pair of mutations.
func (b *Bank) Transfer(username string, amount decimal.Decimal, source accounts.Selector) error {
	if err := validate(amount, source); err != nil {
		return err
	}

	label := ledger.LabelCurrentToSavings
	if source == accounts.Savings {
		label = ledger.LabelSavingsToCurrent
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		store := b.accounts.WithTx(tx)
		if err := store.AdjustBalance(username, source, amount.Neg()); err != nil {
			return err
		}
		if err := store.AdjustBalance(username, source.Other(), amount); err != nil {
			return err
		}
		_, err := b.ledger.WithTx(tx).Append(username, ledger.KindTransfer, amount, label)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("transfer", "username", username, "amount", amount, "from", source, "to", source.Other())
	return nil
}

func validate(amount decimal.Decimal, selector accounts.Selector) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if !selector.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidAccount, selector)
	}
	return nil
}

func labelFor(selector accounts.Selector) ledger.Label {
	if selector == accounts.Savings {
		return ledger.LabelSavings
	}
	return ledger.LabelCurrent
}
