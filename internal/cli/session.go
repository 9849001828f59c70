// Package cli is the interactive shell around the account and ledger stores.
// It owns prompting, validation loops and rendering; money movement goes
// through the bank core.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/accounts"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/bank"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/ledger"
)

var (
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

type Session struct {
	accounts *accounts.Store
	ledger   *ledger.Store
	bank     *bank.Bank
	hasher   accounts.Hasher
	format   CurrencyFormatter

	in  *bufio.Reader
	out io.Writer
}

func New(accountStore *accounts.Store, ledgerStore *ledger.Store, core *bank.Bank, hasher accounts.Hasher, locale string) *Session {
	return &Session{
		accounts: accountStore,
		ledger:   ledgerStore,
		bank:     core,
		hasher:   hasher,
		format:   NewCurrencyFormatter(locale),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run drives the start menu until the user quits.
func (s *Session) Run() error {
	for {
		fmt.Fprintln(s.out, cyan("Welcome to River Bank!"))
		fmt.Fprintln(s.out, "\t (l)ogin to existing account.")
		fmt.Fprintln(s.out, "\t (r)egister a new account.")
		fmt.Fprintln(s.out, "\t (q)uit the application.")

		switch s.promptAction("l", "r", "q") {
		case "l":
			username, ok := s.login()
			if !ok {
				fmt.Fprintln(s.out, red("Incorrect login details, please try again."))
				continue
			}
			s.homePage(username)
		case "r":
			username, err := s.register()
			if err != nil {
				return err
			}
			s.homePage(username)
		case "q":
			return nil
		}
	}
}

// login checks the entered credentials. Any failure yields the same generic
// result so the caller prints one message for unknown user and wrong
// password alike.
func (s *Session) login() (string, bool) {
	username := s.prompt("Enter a username")

	exists, err := s.accounts.Exists(username)
	if err != nil {
		slog.Error("failed to look up user", "username", username, "error", err)
		return "", false
	}
	if !exists {
		return "", false
	}

	password := s.promptPassword(fmt.Sprintf("Enter password for %s", username))
	digest, err := s.accounts.CredentialDigest(username)
	if err != nil {
		slog.Error("failed to read credential digest", "username", username, "error", err)
		return "", false
	}
	if !s.hasher.Verify(password, digest) {
		return "", false
	}
	return username, true
}

func (s *Session) register() (string, error) {
	var username string
	for {
		username = s.prompt("Create a new username")
		if len(username) < 3 || !isAlphanumeric(username) {
			fmt.Fprintln(s.out, "Username must be at least 3 alphanumeric characters long.")
			continue
		}
		taken, err := s.accounts.Exists(username)
		if err != nil {
			return "", err
		}
		if taken {
			fmt.Fprintln(s.out, "Username already exists. Please choose another.")
			continue
		}
		break
	}

	displayName := s.prompt("Create a new display name")

	var password string
	for {
		password = s.promptPassword("Set a new password")
		if len(password) >= 8 {
			break
		}
		fmt.Fprintln(s.out, "Password must be at least 8 characters long.")
	}

	currentBalance := s.promptAmountDefault("Enter starting current account balance", decimal.Zero)
	savingsBalance := s.promptAmountDefault("Enter starting savings account balance", decimal.Zero)

	if err := s.accounts.Create(username, displayName, password, currentBalance, savingsBalance); err != nil {
		return "", err
	}
	return username, nil
}

// homePage shows the dashboard and dispatches account actions until logout.
func (s *Session) homePage(username string) {
	for {
		s.dashboard(username)
		fmt.Fprintln(s.out, "\nActions")
		fmt.Fprintln(s.out, "\t (d)eposit money into an account.")
		fmt.Fprintln(s.out, "\t (w)ithdraw money from an account.")
		fmt.Fprintln(s.out, "\t (t)ransfer money between my accounts.")
		fmt.Fprintln(s.out, "\t (v)iew recent transactions.")
		fmt.Fprintln(s.out, "\t (l)ogout.")

		switch s.promptAction("d", "w", "t", "v", "l") {
		case "d":
			target := s.promptSelector("Account to deposit into (current, savings)")
			amount := s.promptAmount("Amount to deposit")
			if err := s.bank.Deposit(username, amount, target); err != nil {
				fmt.Fprintln(s.out, red(err.Error()))
			}
		case "w":
			source := s.promptSelector("Account to withdraw from (current, savings)")
			amount := s.promptAmount("Amount to withdraw")
			if err := s.bank.Withdraw(username, amount, source); err != nil {
				fmt.Fprintln(s.out, red(err.Error()))
			}
		case "t":
			source := s.promptSelector("Account to transfer from (current, savings)")
			amount := s.promptAmount("Amount to transfer")
			if err := s.bank.Transfer(username, amount, source); err != nil {
				fmt.Fprintln(s.out, red(err.Error()))
			}
		case "v":
			s.printHistory(username)
		case "l":
			return
		}
	}
}

// dashboard greets the user and shows the account number and both balances.
// Read faults degrade to zero values so the session keeps going.
func (s *Session) dashboard(username string) {
	fmt.Fprintln(s.out, green(fmt.Sprintf("Welcome, %s!", username)))

	number, err := s.accounts.AccountNumber(username)
	if err != nil {
		slog.Error("failed to read account number", "username", username, "error", err)
	}
	currentBalance, err := s.accounts.Balance(username, accounts.Current)
	if err != nil {
		slog.Error("failed to read current balance", "username", username, "error", err)
	}
	savingsBalance, err := s.accounts.Balance(username, accounts.Savings)
	if err != nil {
		slog.Error("failed to read savings balance", "username", username, "error", err)
	}

	fmt.Fprintf(s.out, "Your account number: %d\n", number)
	fmt.Fprintf(s.out, "\t Your current account balance: %s\n", green(s.format.Format(currentBalance)))
	fmt.Fprintf(s.out, "\t Your savings account balance: %s\n", green(s.format.Format(savingsBalance)))
}

func (s *Session) printHistory(username string) {
	entries := s.ledger.Recent(username, ledger.DefaultWindowDays)
	fmt.Fprintln(s.out, "Transactions in the last 7 days:")
	for _, entry := range entries {
		fmt.Fprintf(s.out, "- %s of %s on account '%s' at %s\n",
			entry.Kind, s.format.Format(entry.Amount), entry.Label,
			entry.Timestamp.Format("2006-01-02 15:04:05"))
	}
}

func (s *Session) prompt(message string) string {
	fmt.Fprintf(s.out, "%s: ", message)
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPassword reads without echo when attached to a terminal and falls
// back to a plain line read otherwise (tests, piped input).
func (s *Session) promptPassword(message string) string {
	fmt.Fprintf(s.out, "%s: ", message)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(s.out)
		if err == nil {
			return strings.TrimSpace(string(raw))
		}
	}
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (s *Session) promptAction(allowed ...string) string {
	for {
		input := s.prompt("Enter an action (the letter in brackets)")
		for _, action := range allowed {
			if input == action {
				return input
			}
		}
		fmt.Fprintln(s.out, "Invalid action. Try again.")
	}
}

func (s *Session) promptSelector(message string) accounts.Selector {
	for {
		selector := accounts.Selector(strings.ToLower(s.prompt(message)))
		if selector.Valid() {
			return selector
		}
		fmt.Fprintln(s.out, "Not a valid option, try again.")
	}
}

func (s *Session) promptAmount(message string) decimal.Decimal {
	for {
		raw := s.prompt(message)
		amount, err := ParseAmount(raw)
		if err != nil {
			fmt.Fprintln(s.out, "Not a valid amount, try again.")
			continue
		}
		return amount
	}
}

func (s *Session) promptAmountDefault(message string, fallback decimal.Decimal) decimal.Decimal {
	for {
		raw := s.prompt(message)
		if raw == "" {
			return fallback
		}
		amount, err := ParseAmount(raw)
		if err != nil {
			fmt.Fprintln(s.out, "Not a valid amount, try again.")
			continue
		}
		return amount
	}
}
