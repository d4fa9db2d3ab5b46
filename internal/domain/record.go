package domain

import (
	"bytes"
	"encoding/json"
)

const (
	TimestampField = "timestamp"
	AnomalyField   = "is_anomaly"
)

// LogRecord is a single loosely-typed log entry. Field order follows the
// order in which fields were first set.
type LogRecord struct {
	keys   []string
	values map[string]any
}

func NewLogRecord() *LogRecord {
	return &LogRecord{values: make(map[string]any)}
}

// LogRecordOf builds a record from alternating key/value pairs.
func LogRecordOf(kv ...any) *LogRecord {
	r := NewLogRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		r.Set(key, kv[i+1])
	}
	return r
}

func (r *LogRecord) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *LogRecord) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *LogRecord) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *LogRecord) Keys() []string {
	return r.keys
}

func (r *LogRecord) Len() int {
	return len(r.keys)
}

func (r *LogRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := r.writeFields(&buf, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *LogRecord) writeFields(buf *bytes.Buffer, skip string) error {
	first := true
	for _, key := range r.keys {
		if key == skip {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeField(buf, key, r.values[key]); err != nil {
			return err
		}
	}
	return nil
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
