// Copyright (c) 2026 Rerec. All rights reserved.

package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// # Entity

// Record is one persisted measurement: a reading plus the moment it was
// taken and the identifier it is stored under.
//
// Timestamps are normalized to UTC before persistence.
type Record struct {
	ID        string
	Timestamp time.Time
	Reading   Reading
}

// recordEnvelope is the JSON shape of a [Record]. The reading field holds
// the externally tagged variant envelope.
type recordEnvelope struct {
	ID        string          `json:"id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Reading   json.RawMessage `json:"reading"`
}

// MarshalJSON implements [json.Marshaler].
func (record Record) MarshalJSON() ([]byte, error) {
	reading, err := MarshalReading(record.Reading)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", record.ID, err)
	}

	return json.Marshal(recordEnvelope{
		ID:        record.ID,
		Timestamp: record.Timestamp,
		Reading:   reading,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// A client-supplied id is decoded but carries no authority: ingestion
// assigns its own identifier regardless.
func (record *Record) UnmarshalJSON(data []byte) error {
	var envelope recordEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	if len(envelope.Reading) == 0 {
		return fmt.Errorf("record has no reading")
	}

	reading, err := UnmarshalReading(envelope.Reading)
	if err != nil {
		return err
	}

	record.ID = envelope.ID
	record.Timestamp = envelope.Timestamp
	record.Reading = reading
	return nil
}
