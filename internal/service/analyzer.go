package service

import (
	"context"
	"time"

	"github.com/Egor213/LogiSense/internal/detector"
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/features"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
)

type AnalyzeResult struct {
	Records       []domain.AnnotatedRecord
	Columns       domain.ColumnManifest
	Anomalies     int
	Contamination float64
	Duration      time.Duration
}

// Run summarizes the result for reporting.
func (r AnalyzeResult) Run() *domain.AnalysisRun {
	return &domain.AnalysisRun{
		Records:       len(r.Records),
		Anomalies:     r.Anomalies,
		Columns:       r.Columns,
		Contamination: r.Contamination,
		DurationMs:    r.Duration.Milliseconds(),
	}
}

// AnalyzerService labels every record of a batch relative to the other
// records of the same batch. It keeps no state between calls.
type AnalyzerService struct {
	cfg      detector.Config
	newModel func() detector.Model
}

func NewAnalyzerService(cfg detector.Config) *AnalyzerService {
	return &AnalyzerService{
		cfg:      cfg,
		newModel: cfg.NewModel,
	}
}

func (s *AnalyzerService) Analyze(ctx context.Context, batch []*domain.LogRecord) (AnalyzeResult, error) {
	if len(batch) == 0 {
		return AnalyzeResult{}, domain.ErrInputMissing
	}
	start := time.Now()

	matrix, columns, err := features.Derive(batch)
	if err != nil {
		return AnalyzeResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return AnalyzeResult{}, err
	}

	labels, err := s.newModel().FitPredict(matrix)
	if err != nil {
		return AnalyzeResult{}, errorsUtils.WrapPathErr(err)
	}
	if len(labels) != len(batch) {
		return AnalyzeResult{}, errorsUtils.WrapPathErr(ErrLabelMismatch)
	}

	result := AnalyzeResult{
		Records:       make([]domain.AnnotatedRecord, len(batch)),
		Columns:       columns,
		Contamination: s.cfg.Contamination,
	}
	for i, record := range batch {
		result.Records[i] = domain.AnnotatedRecord{LogRecord: record, IsAnomaly: labels[i]}
		if labels[i] == domain.Anomaly {
			result.Anomalies++
		}
	}
	result.Duration = time.Since(start)

	return result, nil
}
