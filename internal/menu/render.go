package menu

import (
	"fmt"
	"io"

	"orcamento/internal/core"
)

// RenderMonths writes the entries grouped by month with their subtotals.
func RenderMonths(w io.Writer, months []core.MonthSummary, currency string) {
	if len(months) == 0 {
		fmt.Fprintf(w, "\n📝 No entries recorded yet.\n")
		return
	}

	fmt.Fprintf(w, "\n--- 📝 Monthly Budget Entries ---\n")
	for _, ms := range months {
		fmt.Fprintf(w, "\n*** MONTH: %s (Balance: %s %s) ***\n", ms.Month, currency, ms.Subtotal)
		for i, e := range ms.Entries {
			fmt.Fprintf(w, "  %d. %s %s: %s (%s)\n", i+1, marker(e.Kind), e.Description, e.Amount.Signed(), e.Kind.Label())
		}
	}
	fmt.Fprintf(w, "---------------------------------\n")
}

// RenderTotal writes the accumulated balance and whether it is positive.
func RenderTotal(w io.Writer, b core.Balance, currency string) {
	fmt.Fprintf(w, "\n--- 📊 Accumulated Total Balance ---\n")
	fmt.Fprintf(w, "Overall balance: %s %s\n", currency, b.Total)
	if b.Negative() {
		fmt.Fprintf(w, "Your overall balance is negative. 😥\n")
	} else {
		fmt.Fprintf(w, "Your overall balance is positive! 🎉\n")
	}
	fmt.Fprintf(w, "------------------------\n")
}

func marker(k core.Kind) string {
	if k == core.Income {
		return "🟢"
	}
	return "🔴"
}
