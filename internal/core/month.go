package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies a ledger bucket as "YYYY-MM". Lexicographic order of
// keys is chronological order.
type MonthKey string

const monthKeyLayout = "2006-01"

// NewMonthKey builds the key for the given year and month number.
func NewMonthKey(year, month int) (MonthKey, error) {
	if year < 1 || year > 9999 {
		return "", ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return "", ErrInvalidMonth
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month)), nil
}

// MonthKeyOf returns the key of the month t falls in.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// ParseMonthKey validates a stored key such as "2025-11".
func ParseMonthKey(s string) (MonthKey, error) {
	k := MonthKey(strings.TrimSpace(s))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// ParseMonthNumber parses the month number typed by the user.
func ParseMonthNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrMonthNotNumber
	}
	if n < 1 || n > 12 {
		return 0, ErrInvalidMonth
	}
	return n, nil
}

func (k MonthKey) Validate() error {
	if len(k) != len(monthKeyLayout) {
		return fmt.Errorf("invalid month key %q", string(k))
	}
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil || t.Year() < 1 || MonthKeyOf(t) != k {
		return fmt.Errorf("invalid month key %q", string(k))
	}
	return nil
}

// Year returns the year part of a valid key.
func (k MonthKey) Year() int {
	y, _ := strconv.Atoi(string(k[:4]))
	return y
}

// Month returns the month number of a valid key.
func (k MonthKey) Month() int {
	m, _ := strconv.Atoi(string(k[5:]))
	return m
}

func (k MonthKey) String() string {
	return string(k)
}
