// Package menu runs the interactive text menu on top of the ledger service.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"orcamento/internal/core"
	"orcamento/internal/log"
)

// maxLineBytes bounds one line of input, newline included.
const maxLineBytes = 1 << 20

var errLineTooLong = errors.New("input line too long")

// Service is the ledger surface the menu drives.
type Service interface {
	AddEntry(ctx context.Context, description, rawAmount, kind string, month core.MonthKey) (core.Entry, error)
	ListByMonth() []core.MonthSummary
	TotalBalance() core.Balance
}

type Menu struct {
	svc      Service
	in       *bufio.Reader
	out      io.Writer
	now      func() time.Time
	currency string
	logger   *log.Logger
}

type Option func(*Menu)

// WithClock overrides the clock used to pick the current year.
func WithClock(now func() time.Time) Option {
	return func(m *Menu) { m.now = now }
}

func WithCurrency(symbol string) Option {
	return func(m *Menu) { m.currency = symbol }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Menu) { m.logger = l }
}

func New(svc Service, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		svc:      svc,
		in:       bufio.NewReader(in),
		out:      out,
		now:      time.Now,
		currency: "R$",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Discard()
	}
	m.logger = m.logger.WithComponent(log.ComponentMenu)
	return m
}

// Run loops until the user exits, input ends or ctx is cancelled. Input
// errors never end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, err := m.readLine()
		switch {
		case errors.Is(err, errLineTooLong):
			m.printf("❌ Invalid option. Try again.\n")
			continue
		case err != nil:
			m.printf("\n")
			return endOfInput(err)
		}

		switch choice {
		case "1":
			if err := m.addEntry(ctx, core.Income); err != nil {
				return endOfInput(err)
			}
		case "2":
			if err := m.addEntry(ctx, core.Expense); err != nil {
				return endOfInput(err)
			}
		case "3":
			RenderMonths(m.out, m.svc.ListByMonth(), m.currency)
		case "4":
			RenderTotal(m.out, m.svc.TotalBalance(), m.currency)
		case "5":
			m.printf("Leaving the system!\n")
			return nil
		default:
			m.printf("❌ Invalid option. Try again.\n")
		}
	}
}

// endOfInput maps a clean EOF to a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.printf("\n*** Monthly Budget Menu ***\n")
	m.printf("1. Add Income\n")
	m.printf("2. Add Expense\n")
	m.printf("3. View Monthly Entries\n")
	m.printf("4. Calculate Accumulated Balance\n")
	m.printf("5. Exit\n")
	m.printf("Choose an option (1-5): ")
}

// addEntry runs the prompts for one entry. It returns an error only when
// input can no longer be read; rejected input is reported inline.
func (m *Menu) addEntry(ctx context.Context, kind core.Kind) error {
	m.printf("\n--- Add %s ---\n", kind.Label())

	month, err := m.promptMonth()
	if err != nil {
		return err
	}

	var fields [2]string
	for i, prompt := range []string{"Description: ", "Amount: "} {
		m.printf("%s", prompt)
		line, err := m.readLine()
		if errors.Is(err, errLineTooLong) {
			m.printf("🚨 Error: input too long (max %d bytes).\n", maxLineBytes)
			return nil
		}
		if err != nil {
			return err
		}
		fields[i] = line
	}
	desc, amount := fields[0], fields[1]

	if _, err := m.svc.AddEntry(ctx, desc, amount, string(kind), month); err != nil {
		m.logger.DebugContext(ctx, "Entry rejected", log.FieldError, err, log.FieldMonth, month)
		m.printf("🚨 Error: %s\n", userMessage(err))
		return nil
	}
	m.printf("\n✅ Entry '%s' (%s) added for %s.\n", desc, kind, month)
	return nil
}

// promptMonth asks for a month number of the current year until it is valid.
func (m *Menu) promptMonth() (core.MonthKey, error) {
	year := m.now().Year()
	for {
		m.printf("Year: %d - Month: ", year)
		raw, err := m.readLine()
		if err != nil && !errors.Is(err, errLineTooLong) {
			return "", err
		}
		n, err := core.ParseMonthNumber(raw)
		switch {
		case errors.Is(err, core.ErrInvalidMonth):
			m.printf("❌ Invalid month. Enter a number between 1 and 12.\n")
			continue
		case err != nil:
			m.printf("❌ Invalid input. Enter an integer for the month.\n")
			continue
		}
		key, err := core.NewMonthKey(year, n)
		if err != nil {
			m.printf("❌ %s.\n", err)
			continue
		}
		return key, nil
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidKind):
		return "the kind must be 'income' or 'expense'."
	case errors.Is(err, core.ErrInvalidAmount):
		return "invalid amount. Enter a positive number."
	default:
		return err.Error()
	}
}

// readLine returns the next trimmed line. A line longer than maxLineBytes is
// consumed to its end and reported as errLineTooLong so the caller can
// continue with the following line. A last line without newline is returned
// normally; io.EOF comes on the call after it.
func (m *Menu) readLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := m.in.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		switch {
		case tooLong:
			return "", errLineTooLong
		case err != nil && len(buf) == 0:
			return "", io.EOF
		}
		return strings.TrimSpace(string(buf)), nil
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
