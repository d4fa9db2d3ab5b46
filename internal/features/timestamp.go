package features

import (
	"fmt"
	"strings"
	"time"

	"github.com/Egor213/LogiSense/internal/domain"
)

const (
	HourColumn      = "hour"
	DayOfWeekColumn = "day_of_week"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", s)
}

// weekday returns the day of week with Monday = 0.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// timestampColumns decomposes the timestamp field of every record into hour
// and day_of_week. It returns nil columns when no record carries a timestamp.
func timestampColumns(batch []*domain.LogRecord) ([]column, error) {
	present := false
	for _, r := range batch {
		if r.Has(domain.TimestampField) {
			present = true
			break
		}
	}
	if !present {
		return nil, nil
	}

	hour := newColumn(HourColumn, len(batch))
	day := newColumn(DayOfWeekColumn, len(batch))

	for i, r := range batch {
		raw, ok := r.Get(domain.TimestampField)
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q in record %d is not a date-time string",
				domain.ErrDataFormat, domain.TimestampField, i)
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q in record %d: %v",
				domain.ErrDataFormat, domain.TimestampField, i, err)
		}
		hour.set(i, float64(t.Hour()))
		day.set(i, float64(weekday(t)))
	}

	return []column{hour, day}, nil
}
