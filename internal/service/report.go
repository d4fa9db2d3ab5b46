package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/Egor213/LogiSense/internal/broker"
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/repo"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
)

// ReportService stores and publishes run summaries. Both sinks are optional.
type ReportService struct {
	runRepo  repo.AnalysisRun
	producer broker.Producer
}

func NewReportService(rr repo.AnalysisRun, producer broker.Producer) *ReportService {
	return &ReportService{
		runRepo:  rr,
		producer: producer,
	}
}

func (s *ReportService) Record(ctx context.Context, run *domain.AnalysisRun) error {
	var errs []error

	if s.runRepo != nil {
		if _, err := s.runRepo.SaveRun(ctx, run); err != nil {
			errs = append(errs, errorsUtils.WrapPathErr(err))
		}
	}

	if s.producer != nil {
		payload, err := json.Marshal(run)
		if err != nil {
			return errorsUtils.WrapPathErr(err)
		}
		key := []byte(strconv.Itoa(run.ID))
		if err := s.producer.SendMessage(ctx, key, payload); err != nil {
			errs = append(errs, errorsUtils.WrapPathErr(err))
		}
	}

	return errors.Join(errs...)
}

func (s *ReportService) History(ctx context.Context, filter domain.RunFilter) ([]domain.AnalysisRun, error) {
	if s.runRepo == nil {
		return nil, ErrHistoryDisabled
	}

	runs, err := s.runRepo.GetRuns(ctx, filter)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return runs, nil
}
