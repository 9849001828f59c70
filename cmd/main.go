package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/H41L33/t-level-dsd-river-bank-system/internal/accounts"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/bank"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/cli"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/config"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/crypto"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/ledger"
	"github.com/H41L33/t-level-dsd-river-bank-system/internal/storage"
)

var databasePath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "riverbank",
		Short:        "Interactive banking session for River Bank",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
	rootCmd.Flags().StringVar(&databasePath, "database", "", "Path to the sqlite database (overrides DATABASE_PATH).")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if databasePath != "" {
		cfg.DatabasePath = databasePath
	}

	db, err := storage.NewDatabase(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize the database: %w", err)
	}
	defer db.Close()

	hasher := crypto.NewBcrypt(cfg.BcryptRounds)
	accountStore := accounts.NewStore(db.Handle(), hasher)
	ledgerStore := ledger.NewStore(db.Handle())
	core := bank.New(db, accountStore, ledgerStore)

	session := cli.New(accountStore, ledgerStore, core, hasher, cfg.Locale)
	return session.Run()
}
