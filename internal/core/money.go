// Package core provides the ledger's domain types.
//
// This file contains amount parsing and formatting. Amounts are kept as
// integer cents; shopspring/decimal does the string conversions so no float
// arithmetic is ever involved.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a signed amount in cents.
type Money struct {
	Cents int64
}

const (
	// MaxAmountCents bounds a single amount (100 billion major units) so
	// sums of any realistic number of entries stay far from int64 overflow.
	MaxAmountCents = 10_000_000_000_000

	maxAmountLen = 64
	minExponent  = -10
	maxExponent  = 20
)

var maxCents = decimal.NewFromInt(MaxAmountCents)

// ParseAmount converts user input to a strictly positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up to whole cents. Non-numeric input, negative or zero values, amounts
// that round to zero, amounts above MaxAmountCents and input with an extreme
// exponent or length are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents
//	ParseAmount("-5")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLen {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Rounding materialises 10^|exp|; refuse before doing it.
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return Money{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || !cents.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Add returns m+o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with two decimals, e.g. "-30.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Signed is like String but prefixes positive amounts with "+".
func (m Money) Signed() string {
	if m.Cents > 0 {
		return "+" + m.String()
	}
	return m.String()
}
