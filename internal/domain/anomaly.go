package domain

import (
	"bytes"
	"time"
)

type AnomalyLabel int

const (
	Anomaly AnomalyLabel = -1
	Normal  AnomalyLabel = 1
)

func (l AnomalyLabel) String() string {
	if l == Anomaly {
		return "anomaly"
	}
	return "normal"
}

// FeatureMatrix holds one numeric row per log record.
type FeatureMatrix [][]float64

// ColumnManifest names the FeatureMatrix columns in order.
type ColumnManifest []string

// AnnotatedRecord is an input record with its anomaly label attached.
type AnnotatedRecord struct {
	*LogRecord
	IsAnomaly AnomalyLabel
}

// MarshalJSON writes the original fields in order followed by is_anomaly.
// An input field with the same name is replaced by the label.
func (a AnnotatedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a.LogRecord != nil {
		if err := a.writeFields(&buf, AnomalyField); err != nil {
			return nil, err
		}
		if a.hasOtherFields() {
			buf.WriteByte(',')
		}
	}
	if err := writeField(&buf, AnomalyField, int(a.IsAnomaly)); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a AnnotatedRecord) hasOtherFields() bool {
	for _, key := range a.keys {
		if key != AnomalyField {
			return true
		}
	}
	return false
}

type AnalysisRun struct {
	ID            int            `json:"id" db:"id"`
	Records       int            `json:"records" db:"records"`
	Anomalies     int            `json:"anomalies" db:"anomalies"`
	Columns       ColumnManifest `json:"columns" db:"columns"`
	Contamination float64        `json:"contamination" db:"contamination"`
	DurationMs    int64          `json:"duration_ms" db:"duration_ms"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

type RunFilter struct {
	From         time.Time
	To           time.Time
	MinAnomalies int
	Limit        int
}
