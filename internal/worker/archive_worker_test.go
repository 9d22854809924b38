package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"orcamento/internal/amqp"
	"orcamento/internal/core"
	"orcamento/internal/storage"
)

type fakeArchive struct {
	refs []string
	err  error
}

func (f *fakeArchive) ArchiveEntry(_ context.Context, ref string, _ core.Record) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.refs {
		if r == ref {
			return false, nil
		}
	}
	f.refs = append(f.refs, ref)
	return true, nil
}

func validMessage() *amqp.EntryRecordedMessage {
	return &amqp.EntryRecordedMessage{
		Ref:         "3f1c",
		Month:       "2025-05",
		Description: "rent",
		AmountCents: -5000,
		Kind:        "expense",
	}
}

func TestHandleEntryRecorded(t *testing.T) {
	a := &fakeArchive{}
	w := NewArchiveWorker(a, nil)
	ctx := context.Background()

	if err := w.HandleEntryRecorded(ctx, validMessage()); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := w.HandleEntryRecorded(ctx, validMessage()); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if len(a.refs) != 1 {
		t.Fatalf("archived %d entries, want 1", len(a.refs))
	}
}

func TestHandleEntryRecordedInvalidIsPermanent(t *testing.T) {
	w := NewArchiveWorker(&fakeArchive{}, nil)
	msg := validMessage()
	msg.Kind = "income" // sign mismatch

	err := w.HandleEntryRecorded(context.Background(), msg)
	if !errors.Is(err, amqp.ErrPermanent) {
		t.Fatalf("expected ErrPermanent, got %v", err)
	}
}

func TestHandleEntryRecordedStorageErrorIsTransient(t *testing.T) {
	w := NewArchiveWorker(&fakeArchive{err: errors.New("database is locked")}, nil)

	err := w.HandleEntryRecorded(context.Background(), validMessage())
	if err == nil || errors.Is(err, amqp.ErrPermanent) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestHandleEntryRecordedSQLite(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	w := NewArchiveWorker(repo, nil)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := w.HandleEntryRecorded(ctx, validMessage()); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}

	got, err := repo.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(got) != 1 || got[0].Entry.Amount.Cents != -5000 {
		t.Fatalf("unexpected archive contents %+v", got)
	}
}
