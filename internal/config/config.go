package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultDatabasePath = "river_bank.db"
	defaultBcryptRounds = 12
	defaultLocale       = "en-GB"
)

type Config struct {
	DatabasePath string
	BcryptRounds int
	Locale       string
}

func Load() (*Config, error) {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = defaultDatabasePath
	}

	rounds := defaultBcryptRounds
	if raw := os.Getenv("BCRYPT_ROUNDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_ROUNDS %q: %w", raw, err)
		}
		rounds = parsed
	}

	locale := os.Getenv("LOCALE")
	if locale == "" {
		locale = defaultLocale
	}

	return &Config{
		DatabasePath: dbPath,
		BcryptRounds: rounds,
		Locale:       locale,
	}, nil
}
