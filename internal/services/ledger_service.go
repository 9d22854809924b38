package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"orcamento/internal/core"
	"orcamento/internal/ledger"
	"orcamento/internal/log"
)

// LedgerService orchestrates entry creation across the in-memory ledger, an
// optional persistent store and an optional event publisher.
type LedgerService struct {
	ledger    *ledger.Ledger
	writer    EntryWriter
	publisher EventPublisher
	logger    *log.Logger
	newID     func() string
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithWriter persists every entry before it reaches the ledger.
func WithWriter(w EntryWriter) Option {
	return func(s *LedgerService) { s.writer = w }
}

// WithPublisher announces every recorded entry.
func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) { s.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *LedgerService) { s.logger = l }
}

func NewLedgerService(l *ledger.Ledger, opts ...Option) *LedgerService {
	s := &LedgerService{ledger: l, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.WithComponent(log.ComponentLedger)
	return s
}

// AddEntry validates the input, persists it when a writer is configured,
// appends it to the ledger and publishes it. Validation or persistence
// failures leave the ledger unchanged; publish failures are only logged.
func (s *LedgerService) AddEntry(ctx context.Context, description, rawAmount, kind string, month core.MonthKey) (core.Entry, error) {
	if err := month.Validate(); err != nil {
		return core.Entry{}, err
	}
	e, err := core.NewEntry(description, rawAmount, kind)
	if err != nil {
		return core.Entry{}, err
	}
	rec := core.Record{Month: month, Entry: e}

	ref, err := s.persist(ctx, rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist entry", s.fields(rec, log.OpCreate).WithError(err).ToSlice()...)
		return core.Entry{}, fmt.Errorf("save entry: %w", err)
	}

	if err := s.ledger.Insert(month, e); err != nil {
		return core.Entry{}, err
	}
	s.logger.InfoContext(ctx, "Entry recorded", append(s.fields(rec, log.OpCreate).ToSlice(), log.FieldRef, ref)...)

	if s.publisher != nil {
		// Event ids are unique across sessions; storage refs are not.
		eventID := s.newID()
		if err := s.publisher.PublishEntryRecorded(ctx, eventID, rec); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish entry", append(s.fields(rec, log.OpPublish).WithError(err).ToSlice(), log.FieldRef, eventID)...)
		}
	}

	return e, nil
}

// persist returns the storage reference, empty for the memory backend.
func (s *LedgerService) persist(ctx context.Context, rec core.Record) (string, error) {
	if s.writer == nil {
		return "", nil
	}
	return s.writer.Append(ctx, rec.Month, rec.Entry)
}

// Restore loads persisted records into the ledger. It stops at the first
// invalid record.
func (s *LedgerService) Restore(ctx context.Context, loader EntryLoader) (int, error) {
	if loader == nil {
		return 0, nil
	}
	records, err := loader.LoadEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("load entries: %w", err)
	}
	for i, rec := range records {
		if err := s.ledger.Insert(rec.Month, rec.Entry); err != nil {
			return i, fmt.Errorf("restore entry %d: %w", i, err)
		}
	}
	s.logger.InfoContext(ctx, "Ledger restored", log.FieldOperation, log.OpRestore, log.FieldCount, len(records))
	return len(records), nil
}

func (s *LedgerService) ListByMonth() []core.MonthSummary {
	return s.ledger.ListByMonth()
}

func (s *LedgerService) TotalBalance() core.Balance {
	return s.ledger.TotalBalance()
}

// Close closes the adapters that hold resources.
func (s *LedgerService) Close() error {
	var errs []error
	if c, ok := s.writer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *LedgerService) fields(rec core.Record, op string) log.LogFields {
	return log.NewFields().
		WithEntry(string(rec.Month), rec.Entry.Description, rec.Entry.Amount.Cents, string(rec.Entry.Kind)).
		WithOperation(op)
}
