package services

import (
	"context"
	"errors"
	"testing"

	"orcamento/internal/core"
	"orcamento/internal/ledger"
)

type fakeWriter struct {
	records []core.Record
	err     error
	closed  bool
}

func (f *fakeWriter) Append(_ context.Context, month core.MonthKey, e core.Entry) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, core.Record{Month: month, Entry: e})
	return "row-1", nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type fakePublisher struct {
	refs []string
	err  error
}

func (f *fakePublisher) PublishEntryRecorded(_ context.Context, ref string, _ core.Record) error {
	f.refs = append(f.refs, ref)
	return f.err
}

type fakeLoader struct {
	records []core.Record
	err     error
}

func (f fakeLoader) LoadEntries(context.Context) ([]core.Record, error) {
	return f.records, f.err
}

func TestAddEntryMemoryOnly(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(ledger.New(), WithPublisher(pub))
	ctx := context.Background()

	e, err := svc.AddEntry(ctx, "rent", "50", "expense", "2025-05")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if e.Amount.Cents != -5000 {
		t.Fatalf("amount = %d, want -5000", e.Amount.Cents)
	}
	if _, err := svc.AddEntry(ctx, "salary", "100", "income", "2025-05"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if len(pub.refs) != 2 || pub.refs[0] == "" || pub.refs[0] == pub.refs[1] {
		t.Fatalf("unexpected refs %v", pub.refs)
	}
	if got := svc.TotalBalance().Total.Cents; got != 5000 {
		t.Fatalf("total = %d, want 5000", got)
	}
}

func TestAddEntryPersistsBeforeInsert(t *testing.T) {
	w := &fakeWriter{}
	l := ledger.New()
	svc := NewLedgerService(l, WithWriter(w))

	if _, err := svc.AddEntry(context.Background(), "salary", "10", "income", "2025-01"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if len(w.records) != 1 || l.Len() != 1 {
		t.Fatalf("writer=%d ledger=%d, want 1/1", len(w.records), l.Len())
	}
}

func TestAddEntryStorageFailureLeavesLedgerUnchanged(t *testing.T) {
	w := &fakeWriter{err: errors.New("disk full")}
	pub := &fakePublisher{}
	l := ledger.New()
	svc := NewLedgerService(l, WithWriter(w), WithPublisher(pub))

	if _, err := svc.AddEntry(context.Background(), "salary", "10", "income", "2025-01"); err == nil {
		t.Fatal("expected error")
	}
	if l.Len() != 0 || len(pub.refs) != 0 {
		t.Fatalf("ledger=%d published=%d, want 0/0", l.Len(), len(pub.refs))
	}
}

func TestAddEntryValidationHasNoSideEffects(t *testing.T) {
	w := &fakeWriter{}
	pub := &fakePublisher{}
	l := ledger.New()
	svc := NewLedgerService(l, WithWriter(w), WithPublisher(pub))
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, "x", "-5", "income", "2025-01"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.AddEntry(ctx, "x", "5", "foo", "2025-01"); !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if _, err := svc.AddEntry(ctx, "x", "5", "income", "2025-00"); err == nil {
		t.Fatal("expected month error")
	}
	if l.Len() != 0 || len(w.records) != 0 || len(pub.refs) != 0 {
		t.Fatal("rejected entry reached an adapter")
	}
}

func TestAddEntryPublishFailureIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	l := ledger.New()
	svc := NewLedgerService(l, WithPublisher(pub))

	if _, err := svc.AddEntry(context.Background(), "salary", "10", "income", "2025-01"); err != nil {
		t.Fatalf("publish failure surfaced: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("ledger len = %d, want 1", l.Len())
	}
}

func TestRestore(t *testing.T) {
	records := []core.Record{
		{Month: "2025-01", Entry: core.Entry{Description: "salary", Amount: core.Money{Cents: 10000}, Kind: core.Income}},
		{Month: "2025-02", Entry: core.Entry{Description: "rent", Amount: core.Money{Cents: -3000}, Kind: core.Expense}},
	}
	svc := NewLedgerService(ledger.New())

	n, err := svc.Restore(context.Background(), fakeLoader{records: records})
	if err != nil || n != 2 {
		t.Fatalf("Restore: n=%d err=%v", n, err)
	}
	months := svc.ListByMonth()
	if len(months) != 2 || months[0].Month != "2025-01" {
		t.Fatalf("unexpected months %+v", months)
	}

	if _, err := svc.Restore(context.Background(), fakeLoader{err: errors.New("boom")}); err == nil {
		t.Fatal("expected loader error")
	}
	if n, err := svc.Restore(context.Background(), nil); err != nil || n != 0 {
		t.Fatalf("nil loader: n=%d err=%v", n, err)
	}
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	svc := NewLedgerService(ledger.New(), WithWriter(w))
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !w.closed {
		t.Fatal("writer not closed")
	}

	if err := NewLedgerService(ledger.New()).Close(); err != nil {
		t.Fatalf("Close with nil components: %v", err)
	}
}
