package core

// MonthSummary is one month of the ledger: its entries in insertion order and
// their sum.
type MonthSummary struct {
	Month    MonthKey
	Entries  []Entry
	Subtotal Money
}

// Balance is the accumulated total across all months.
type Balance struct {
	Total Money
}

// Negative reports whether the balance is below zero. Zero is non-negative.
func (b Balance) Negative() bool {
	return b.Total.IsNegative()
}
