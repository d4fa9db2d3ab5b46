package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/Egor213/LogiSense/internal/domain"
)

type fieldKind int

const (
	kindNull fieldKind = iota
	kindNumeric
	kindOther
)

// FieldSchema is the inferred type of one record field across a batch.
type FieldSchema struct {
	Name    string
	Numeric bool
}

// InferSchema lists the fields of the batch in first-seen order. A field is
// numeric when it holds at least one number and nothing but numbers or nulls.
func InferSchema(batch []*domain.LogRecord) []FieldSchema {
	var (
		order []string
		kinds = make(map[string]fieldKind)
	)

	for _, r := range batch {
		for _, key := range r.Keys() {
			v, _ := r.Get(key)
			k := kindOf(v)

			prev, seen := kinds[key]
			if !seen {
				order = append(order, key)
				kinds[key] = k
				continue
			}
			switch {
			case prev == kindOther || k == kindNull:
			case prev == kindNull:
				kinds[key] = k
			case prev != k:
				kinds[key] = kindOther
			}
		}
	}

	schema := make([]FieldSchema, 0, len(order))
	for _, name := range order {
		schema = append(schema, FieldSchema{Name: name, Numeric: kinds[name] == kindNumeric})
	}
	return schema
}

func kindOf(v any) fieldKind {
	switch v.(type) {
	case nil:
		return kindNull
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return kindNumeric
	default:
		return kindOther
	}
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("%T is not a number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", v)
	}
	return f, nil
}
