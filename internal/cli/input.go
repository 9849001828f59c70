package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts may carry a pound sign and thousands separators, e.g. "£1,234.56",
// "1,000" or "25.50". A leading minus is accepted here and rejected later by
// the operation's own validation.
var amountPattern = regexp.MustCompile(`^-?£?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)

// ParseAmount converts user-entered money text into a decimal amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if !amountPattern.MatchString(cleaned) {
		return decimal.Zero, fmt.Errorf("not a valid amount: %q", raw)
	}

	cleaned = strings.Replace(cleaned, "£", "", 1)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount: %w", err)
	}
	return amount, nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}
