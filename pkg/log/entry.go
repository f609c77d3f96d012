package log

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a structured log entry.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RequestID string
	Message   string
	Fields    map[string]any
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With adds alternating key/value pairs to the entry. Non-string keys and a
// trailing key without a value are skipped.
func (e *Entry) With(keysAndValues ...any) *Entry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	mergePairs(e.Fields, keysAndValues)
	return e
}

// MarshalJSON flattens fields into the root object. The reserved keys
// (timestamp, level, msg, caller, request_id) win over fields with the same
// name. error values are written as their message.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+5)

	for k, v := range e.Fields {
		m[k] = renderValue(v)
	}

	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}

	return json.Marshal(m)
}

func renderValue(v any) any {
	switch val := v.(type) {
	case error:
		if val == nil {
			return nil
		}
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}
