package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// StoreTimestamp decodes the store's timestamp shapes: a {_seconds,_nanoseconds}
// object, an RFC 3339 string, or epoch milliseconds. Absent values stay zero.
type StoreTimestamp struct {
	time.Time
}

type storeSeconds struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *StoreTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '{':
		var raw storeSeconds
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode timestamp object: %w", err)
		}
		if raw.Seconds == 0 && raw.Nanoseconds == 0 {
			t.Time = time.Time{}
			return nil
		}
		t.Time = time.Unix(raw.Seconds, raw.Nanoseconds).UTC()
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("decode timestamp %q: %w", raw, err)
		}
		t.Time = parsed.UTC()
	default:
		var millis int64
		if err := json.Unmarshal(data, &millis); err != nil {
			return fmt.Errorf("decode timestamp: %w", err)
		}
		t.Time = time.UnixMilli(millis).UTC()
	}
	return nil
}

// MarshalJSON renders RFC 3339, or null when unset.
func (t StoreTimestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Amount holds fee values the store sends either as numbers or strings.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode amount: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string { return string(a) }
