package accounts

// Selector identifies which of a user's two balances an operation targets.
type Selector string

const (
	Current Selector = "current"
	Savings Selector = "savings"
)

func (s Selector) Valid() bool {
	return s == Current || s == Savings
}

// Other returns the opposite balance, used when crediting the far side of a
// transfer.
func (s Selector) Other() Selector {
	if s == Current {
		return Savings
	}
	return Current
}

func (s Selector) column() string {
	if s == Savings {
		return "savings_balance"
	}
	return "current_balance"
}
