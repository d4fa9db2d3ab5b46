// Package features turns a batch of loosely-typed log records into the
// numeric matrix consumed by the anomaly detector.
package features

import (
	"fmt"

	"github.com/Egor213/LogiSense/internal/domain"
)

const DummyColumn = "dummy_feature"

type column struct {
	name    string
	values  []float64
	present []bool
}

func newColumn(name string, n int) column {
	return column{
		name:    name,
		values:  make([]float64, n),
		present: make([]bool, n),
	}
}

func (c column) set(i int, v float64) {
	c.values[i] = v
	c.present[i] = true
}

// Derive builds the feature matrix for a batch. Numeric input fields come
// first in first-seen order, followed by the timestamp-derived columns. A
// batch without any numeric signal gets a single row-index column.
func Derive(batch []*domain.LogRecord) (domain.FeatureMatrix, domain.ColumnManifest, error) {
	if len(batch) == 0 {
		return nil, nil, domain.ErrInputMissing
	}

	derived, err := timestampColumns(batch)
	if err != nil {
		return nil, nil, err
	}

	reserved := make(map[string]bool, len(derived))
	for _, c := range derived {
		reserved[c.name] = true
	}

	var columns []column
	for _, field := range InferSchema(batch) {
		if !field.Numeric || reserved[field.Name] {
			continue
		}
		c, err := numericColumn(batch, field.Name)
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, c)
	}
	columns = append(columns, derived...)

	if len(columns) == 0 {
		columns = []column{indexColumn(len(batch))}
	}

	for _, c := range columns {
		for i, ok := range c.present {
			if !ok {
				return nil, nil, fmt.Errorf("%w: missing numeric value for field %q in record %d",
					domain.ErrDataFormat, missingField(c.name), i)
			}
		}
	}

	return toMatrix(columns, len(batch))
}

func numericColumn(batch []*domain.LogRecord, name string) (column, error) {
	c := newColumn(name, len(batch))
	for i, r := range batch {
		v, ok := r.Get(name)
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return column{}, fmt.Errorf("%w: field %q in record %d: %v", domain.ErrDataFormat, name, i, err)
		}
		c.set(i, f)
	}
	return c, nil
}

func indexColumn(n int) column {
	c := newColumn(DummyColumn, n)
	for i := range n {
		c.set(i, float64(i))
	}
	return c
}

// missingField reports the input field behind a derived column.
func missingField(name string) string {
	if name == HourColumn || name == DayOfWeekColumn {
		return domain.TimestampField
	}
	return name
}

func toMatrix(columns []column, n int) (domain.FeatureMatrix, domain.ColumnManifest, error) {
	manifest := make(domain.ColumnManifest, len(columns))
	for j, c := range columns {
		manifest[j] = c.name
	}

	matrix := make(domain.FeatureMatrix, n)
	for i := range matrix {
		row := make([]float64, len(columns))
		for j, c := range columns {
			row[j] = c.values[i]
		}
		matrix[i] = row
	}
	return matrix, manifest, nil
}
