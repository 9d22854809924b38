package services

import (
	"context"

	"orcamento/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryWriter persists entries. Append returns a reference for the stored row.
	EntryWriter interface {
		Append(ctx context.Context, month core.MonthKey, e core.Entry) (ref string, err error)
	}

	// EntryLoader returns previously persisted entries, ordered by month then
	// insertion.
	EntryLoader interface {
		LoadEntries(ctx context.Context) ([]core.Record, error)
	}

	// EventPublisher announces recorded entries to other processes.
	EventPublisher interface {
		PublishEntryRecorded(ctx context.Context, ref string, rec core.Record) error
	}
)
