package service

import (
	"context"

	"github.com/Egor213/LogiSense/internal/broker"
	"github.com/Egor213/LogiSense/internal/detector"
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/repo"
)

type Analyzer interface {
	Analyze(ctx context.Context, batch []*domain.LogRecord) (AnalyzeResult, error)
}

type Report interface {
	Record(ctx context.Context, run *domain.AnalysisRun) error
	History(ctx context.Context, filter domain.RunFilter) ([]domain.AnalysisRun, error)
}

type Enhancer interface {
	Enhance(prompt string, promptContext map[string]any) (string, error)
}

type Services struct {
	Analyzer
	Report
	Enhancer
}

type ServicesDependencies struct {
	Detector       detector.Config
	Repos          *repo.Repositories
	BrokerProducer broker.Producer
}

func NewServices(deps ServicesDependencies) *Services {
	var runRepo repo.AnalysisRun
	if deps.Repos != nil {
		runRepo = deps.Repos.AnalysisRun
	}

	return &Services{
		Analyzer: NewAnalyzerService(deps.Detector),
		Report:   NewReportService(runRepo, deps.BrokerProducer),
		Enhancer: NewEnhancerService(),
	}
}
