package httpv1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

var errBadNumber = errors.New("invalid number")

// decodeBatch parses a JSON array of objects into records, keeping the key
// order of every object.
func decodeBatch(body []byte) ([]*domain.LogRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.ErrInputMissing
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", domain.ErrDataFormat, err)
	}

	switch v.Type() {
	case fastjson.TypeNull:
		return nil, domain.ErrInputMissing
	case fastjson.TypeObject:
		if o, _ := v.Object(); o.Len() == 0 {
			return nil, domain.ErrInputMissing
		}
		return nil, fmt.Errorf("%w: expected a JSON array of objects", domain.ErrDataFormat)
	case fastjson.TypeArray:
	default:
		return nil, fmt.Errorf("%w: expected a JSON array of objects", domain.ErrDataFormat)
	}

	items, _ := v.Array()
	if len(items) == 0 {
		return nil, domain.ErrInputMissing
	}

	batch := make([]*domain.LogRecord, len(items))
	for i, item := range items {
		record, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrDataFormat, i, err)
		}
		batch[i] = record
	}
	return batch, nil
}

func decodeRecord(item *fastjson.Value) (*domain.LogRecord, error) {
	obj, err := item.Object()
	if err != nil {
		return nil, errors.New("not a JSON object")
	}

	record := domain.NewLogRecord()
	obj.Visit(func(key []byte, val *fastjson.Value) {
		if err != nil {
			return
		}
		var value any
		value, err = decodeValue(val)
		if err != nil {
			err = fmt.Errorf("field %q: %w", key, err)
			return
		}
		record.Set(string(key), value)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func decodeValue(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		return string(v.GetStringBytes()), nil
	case fastjson.TypeNumber:
		raw := v.MarshalTo(nil)
		if !json.Valid(raw) {
			return nil, errBadNumber
		}
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errBadNumber
		}
		return json.Number(raw), nil
	default:
		return json.RawMessage(v.MarshalTo(nil)), nil
	}
}
