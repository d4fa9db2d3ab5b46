// Package detector provides the unsupervised outlier model used to label
// log batches.
package detector

import (
	"errors"

	"github.com/Egor213/LogiSense/internal/domain"
)

const (
	DefaultContamination = 0.05
	DefaultSeed          = 42
	DefaultTrees         = 100
	DefaultSampleSize    = 256
)

var (
	ErrEmptyMatrix          = errors.New("empty feature matrix")
	ErrRaggedMatrix         = errors.New("feature rows differ in width")
	ErrWidthMismatch        = errors.New("feature width differs from the fitted model")
	ErrInvalidContamination = errors.New("contamination must be in (0, 0.5]")
	ErrInvalidTrees         = errors.New("number of trees must be positive")
	ErrInvalidSampleSize    = errors.New("sample size must be positive")
)

// Model is fit on a batch and labels the rows of that batch.
type Model interface {
	Fit(m domain.FeatureMatrix) error
	Predict(m domain.FeatureMatrix) ([]domain.AnomalyLabel, error)
	FitPredict(m domain.FeatureMatrix) ([]domain.AnomalyLabel, error)
}

// Config holds the model parameters shared by every request.
type Config struct {
	Contamination float64
	Seed          int64
	Trees         int
	SampleSize    int
}

func DefaultConfig() Config {
	return Config{
		Contamination: DefaultContamination,
		Seed:          DefaultSeed,
		Trees:         DefaultTrees,
		SampleSize:    DefaultSampleSize,
	}
}

func (c Config) Validate() error {
	if c.Contamination <= 0 || c.Contamination > 0.5 {
		return ErrInvalidContamination
	}
	if c.Trees <= 0 {
		return ErrInvalidTrees
	}
	if c.SampleSize <= 0 {
		return ErrInvalidSampleSize
	}
	return nil
}

// Options converts the config into IsolationForest options.
func (c Config) Options() []Option {
	return []Option{
		WithContamination(c.Contamination),
		WithSeed(c.Seed),
		WithTrees(c.Trees),
		WithSampleSize(c.SampleSize),
	}
}

// NewModel returns a fresh, unfitted model.
func (c Config) NewModel() Model {
	return New(c.Options()...)
}
