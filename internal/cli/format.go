package cli

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders amounts as pound values with locale-appropriate
// digit grouping, e.g. £1,234.56.
type CurrencyFormatter struct {
	printer *message.Printer
}

// NewCurrencyFormatter builds a formatter for the given BCP 47 locale,
// falling back to British English when the locale cannot be parsed.
func NewCurrencyFormatter(locale string) CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BritishEnglish
	}
	return CurrencyFormatter{printer: message.NewPrinter(tag)}
}

func (f CurrencyFormatter) Format(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return f.printer.Sprintf("£%v",
		number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
