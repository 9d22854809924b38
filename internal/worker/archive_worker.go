package worker

import (
	"context"
	"fmt"

	"orcamento/internal/amqp"
	"orcamento/internal/core"
	"orcamento/internal/log"
)

// Archive stores entries received from ledger sessions.
type Archive interface {
	ArchiveEntry(ctx context.Context, sourceRef string, rec core.Record) (bool, error)
}

// ArchiveWorker copies entry-recorded events into an archive store.
type ArchiveWorker struct {
	archive Archive
	logger  *log.Logger
}

func NewArchiveWorker(archive Archive, logger *log.Logger) *ArchiveWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ArchiveWorker{
		archive: archive,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEntryRecorded archives one message. Invalid entries are permanent
// failures; storage errors are returned as-is so the message is requeued.
func (w *ArchiveWorker) HandleEntryRecorded(ctx context.Context, msg *amqp.EntryRecordedMessage) error {
	rec, err := msg.Record()
	if err != nil {
		w.logger.WarnContext(ctx, "Dropping invalid entry message", log.FieldRef, msg.Ref, log.FieldError, err)
		return fmt.Errorf("%w: %v", amqp.ErrPermanent, err)
	}

	inserted, err := w.archive.ArchiveEntry(ctx, msg.Ref, rec)
	if err != nil {
		return fmt.Errorf("archive entry %s: %w", msg.Ref, err)
	}

	fields := log.NewFields().
		WithEntry(string(rec.Month), rec.Entry.Description, rec.Entry.Amount.Cents, string(rec.Entry.Kind)).
		WithOperation(log.OpArchive).
		ToSlice()
	fields = append(fields, log.FieldRef, msg.Ref)
	if !inserted {
		w.logger.DebugContext(ctx, "Entry already archived", fields...)
		return nil
	}
	w.logger.InfoContext(ctx, "Entry archived", fields...)
	return nil
}
