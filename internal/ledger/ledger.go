// Package ledger holds the in-memory month-bucketed ledger.
package ledger

import (
	"slices"
	"sync"

	"orcamento/internal/core"
)

// Ledger maps month keys to entries in insertion order. Month buckets are
// created on first insert and never removed.
type Ledger struct {
	mu     sync.Mutex
	months map[core.MonthKey][]core.Entry
	count  int
}

func New() *Ledger {
	return &Ledger{months: make(map[core.MonthKey][]core.Entry)}
}

// AddEntry validates the raw input, signs the amount by kind and appends the
// entry to the month. On error the ledger is left untouched.
func (l *Ledger) AddEntry(description, rawAmount, kind string, month core.MonthKey) (core.Entry, error) {
	if err := month.Validate(); err != nil {
		return core.Entry{}, err
	}
	e, err := core.NewEntry(description, rawAmount, kind)
	if err != nil {
		return core.Entry{}, err
	}
	l.append(month, e)
	return e, nil
}

// Insert appends an already built entry, e.g. one restored from storage.
func (l *Ledger) Insert(month core.MonthKey, e core.Entry) error {
	if err := (core.Record{Month: month, Entry: e}).Validate(); err != nil {
		return err
	}
	l.append(month, e)
	return nil
}

func (l *Ledger) append(month core.MonthKey, e core.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.months[month] = append(l.months[month], e)
	l.count++
}

// ListByMonth returns the months in ascending order with their subtotals.
// Empty months are skipped; an empty ledger yields nil.
func (l *Ledger) ListByMonth() []core.MonthSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []core.MonthSummary
	for _, k := range l.sortedKeysLocked() {
		entries := l.months[k]
		if len(entries) == 0 {
			continue
		}
		var subtotal core.Money
		for _, e := range entries {
			subtotal = subtotal.Add(e.Amount)
		}
		out = append(out, core.MonthSummary{
			Month:    k,
			Entries:  slices.Clone(entries),
			Subtotal: subtotal,
		})
	}
	return out
}

// TotalBalance sums every entry of every month.
func (l *Ledger) TotalBalance() core.Balance {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total core.Money
	for _, entries := range l.months {
		for _, e := range entries {
			total = total.Add(e.Amount)
		}
	}
	return core.Balance{Total: total}
}

// Len returns the number of entries across all months.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *Ledger) sortedKeysLocked() []core.MonthKey {
	keys := make([]core.MonthKey, 0, len(l.months))
	for k := range l.months {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
