package core

import (
	"errors"
	"strings"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind tells whether an entry adds to or subtracts from the balance.
	Kind string

	// Entry is one income or expense record. Amount carries the sign:
	// positive for income, negative for expense.
	Entry struct {
		Description string
		Amount      Money
		Kind        Kind
	}

	// Record pairs an entry with the month bucket it belongs to.
	Record struct {
		Month MonthKey
		Entry Entry
	}
)

var (
	ErrInvalidKind    = errors.New("kind must be 'income' or 'expense'")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrMonthNotNumber = errors.New("month must be an integer")
	ErrInvalidYear    = errors.New("year must be between 1 and 9999")
	ErrSignMismatch   = errors.New("amount sign does not match kind")
)

// ParseKind parses a kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Income, Expense:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// Label returns the kind capitalised for display, e.g. "Income".
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func (k Kind) String() string {
	return string(k)
}

// NewEntry validates the raw user input and builds a signed entry.
// The kind is checked before the amount.
func NewEntry(description, rawAmount, rawKind string) (Entry, error) {
	kind, err := ParseKind(rawKind)
	if err != nil {
		return Entry{}, err
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Entry{}, err
	}
	if kind == Expense {
		amount = amount.Neg()
	}
	return Entry{
		Description: description,
		Amount:      amount,
		Kind:        kind,
	}, nil
}

// Validate checks the sign invariant of an already built entry.
func (e Entry) Validate() error {
	if !e.Kind.IsValid() {
		return ErrInvalidKind
	}
	if e.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if (e.Kind == Income) == e.Amount.IsNegative() {
		return ErrSignMismatch
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Month.Validate(); err != nil {
		return err
	}
	return r.Entry.Validate()
}
