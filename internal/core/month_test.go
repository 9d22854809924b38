package core

import (
	"errors"
	"sort"
	"testing"
	"time"
)

func TestNewMonthKey(t *testing.T) {
	k, err := NewMonthKey(2025, 5)
	if err != nil || k != "2025-05" {
		t.Fatalf("got %q err=%v", k, err)
	}
	if k.Year() != 2025 || k.Month() != 5 {
		t.Fatalf("unexpected parts %d-%d", k.Year(), k.Month())
	}
	if _, err := NewMonthKey(2025, 13); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if _, err := NewMonthKey(2025, 0); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if _, err := NewMonthKey(0, 1); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestParseMonthNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
		err  error
	}{
		{"1", 1, nil},
		{" 12 ", 12, nil},
		{"0", 0, ErrInvalidMonth},
		{"13", 0, ErrInvalidMonth},
		{"may", 0, ErrMonthNotNumber},
		{"", 0, ErrMonthNotNumber},
		{"5.5", 0, ErrMonthNotNumber},
	}
	for _, tc := range cases {
		got, err := ParseMonthNumber(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.want, got, err)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	for _, ok := range []string{"2025-11", "0999-01"} {
		if _, err := ParseMonthKey(ok); err != nil {
			t.Fatalf("%q expected ok, got %v", ok, err)
		}
	}
	for _, bad := range []string{"2025-13", "2025-1", "25-11", "2025/11", "", "2025-00", "0000-01"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestMonthKeyOrderIsChronological(t *testing.T) {
	keys := []string{"2025-11", "2024-12", "2025-02", "2025-10"}
	sort.Strings(keys)
	want := []string{"2024-12", "2025-02", "2025-10", "2025-11"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order %v, want %v", keys, want)
		}
	}
}

func TestMonthKeyOf(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if got := MonthKeyOf(ts); got != "2026-03" {
		t.Fatalf("got %q", got)
	}
}
