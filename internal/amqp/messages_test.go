package amqp

import (
	"testing"

	"orcamento/internal/core"
)

func TestEntryRecordedMessageRecord(t *testing.T) {
	rec := core.Record{Month: "2025-05", Entry: core.Entry{Description: "salary", Amount: core.Money{Cents: 5000}, Kind: core.Income}}
	body, err := NewEntryRecordedMessage("7", rec).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	msg, err := EntryRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got, err := msg.Record()
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}
}

func TestEntryRecordedMessageRejects(t *testing.T) {
	if _, err := EntryRecordedMessageFromJSON([]byte(`{"month":"2025-05"}`)); err == nil {
		t.Fatal("expected error for missing ref")
	}
	msg := &EntryRecordedMessage{Ref: "1", Month: "2025-05", AmountCents: 100, Kind: "expense"}
	if _, err := msg.Record(); err == nil {
		t.Fatal("expected sign mismatch error")
	}
	msg = &EntryRecordedMessage{Ref: "1", Month: "May", AmountCents: 100, Kind: "income"}
	if _, err := msg.Record(); err == nil {
		t.Fatal("expected month error")
	}
}
