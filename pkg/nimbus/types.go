package nimbus

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is an opaque point-in-time value carried on output types. The
// Nimbus services are inconsistent about temporal wire formats: JSON-target
// services emit epoch seconds (integral or fractional), REST services emit
// RFC3339. Timestamp accepts both on hydration and emits RFC3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON hydrates the timestamp from either wire representation.
// A value that parses as neither is a MalformedResponseError.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &MalformedResponseError{Field: "timestamp", Value: raw, Err: err}
		}

		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// Some endpoints emit epoch seconds as strings.
			epoch, convErr := strconv.ParseFloat(s, 64)
			if convErr != nil {
				return &MalformedResponseError{Field: "timestamp", Value: s, Err: err}
			}

			t.Time = epochToTime(epoch)

			return nil
		}

		t.Time = parsed

		return nil
	}

	epoch, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &MalformedResponseError{Field: "timestamp", Value: raw, Err: err}
	}

	t.Time = epochToTime(epoch)

	return nil
}

// MarshalJSON emits the timestamp as an RFC3339 string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	data, err := json.Marshal(t.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("marshaling timestamp: %w", err)
	}

	return data, nil
}

func epochToTime(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))

	return time.Unix(sec, nsec).UTC()
}

// Document is a free-form JSON payload, used for function invocation
// payloads and query result cells of unknown shape.
type Document = json.RawMessage

// body collects present fields for a JSON request body. Absent optional
// fields are never added; explicitly-set empty maps are added as-is so they
// serialize to {} rather than being dropped or degraded to [].
type body map[string]interface{}

func (b body) set(key string, value interface{}) {
	b[key] = value
}

func (b body) setString(key string, value *string) {
	if value != nil {
		b[key] = *value
	}
}

func (b body) setInt64(key string, value *int64) {
	if value != nil {
		b[key] = *value
	}
}

func (b body) setInt32(key string, value *int32) {
	if value != nil {
		b[key] = *value
	}
}

func (b body) setBool(key string, value *bool) {
	if value != nil {
		b[key] = *value
	}
}

func (b body) encode() ([]byte, error) {
	data, err := json.Marshal(map[string]interface{}(b))
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return data, nil
}
