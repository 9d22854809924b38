package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"orcamento/internal/core"
)

// EntryRecordedMessage announces one entry added to a ledger. Ref is a unique
// event id so consumers can drop redeliveries.
type EntryRecordedMessage struct {
	Ref         string    `json:"ref"`
	Month       string    `json:"month"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewEntryRecordedMessage(ref string, rec core.Record) *EntryRecordedMessage {
	return &EntryRecordedMessage{
		Ref:         ref,
		Month:       string(rec.Month),
		Description: rec.Entry.Description,
		AmountCents: rec.Entry.Amount.Cents,
		Kind:        string(rec.Entry.Kind),
		Timestamp:   time.Now().UTC(),
	}
}

// Record converts the message back to a validated domain record.
func (m *EntryRecordedMessage) Record() (core.Record, error) {
	month, err := core.ParseMonthKey(m.Month)
	if err != nil {
		return core.Record{}, fmt.Errorf("invalid entry message %q: %w", m.Ref, err)
	}
	rec := core.Record{
		Month: month,
		Entry: core.Entry{
			Description: m.Description,
			Amount:      core.Money{Cents: m.AmountCents},
			Kind:        core.Kind(m.Kind),
		},
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, fmt.Errorf("invalid entry message %q: %w", m.Ref, err)
	}
	return rec, nil
}

func (m *EntryRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryRecordedMessageFromJSON(data []byte) (*EntryRecordedMessage, error) {
	var msg EntryRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Ref == "" {
		return nil, fmt.Errorf("entry message without ref")
	}
	return &msg, nil
}
