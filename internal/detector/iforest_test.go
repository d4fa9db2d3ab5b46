package detector

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		opts              []Option
		wantTrees         int
		wantContamination float64
	}{
		{
			name:              "defaults",
			wantTrees:         100,
			wantContamination: 0.05,
		},
		{
			name:              "custom",
			opts:              []Option{WithTrees(20), WithContamination(0.1), WithSeed(7)},
			wantTrees:         20,
			wantContamination: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.opts...)
			assert.Equal(t, tt.wantTrees, f.nTrees)
			assert.Equal(t, tt.wantContamination, f.contamination)
			assert.False(t, f.trained)
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name    string
		data    domain.FeatureMatrix
		wantErr error
	}{
		{name: "empty matrix", data: domain.FeatureMatrix{}, wantErr: ErrEmptyMatrix},
		{name: "zero width", data: domain.FeatureMatrix{{}, {}}, wantErr: ErrEmptyMatrix},
		{name: "ragged rows", data: domain.FeatureMatrix{{1, 2}, {3}}, wantErr: ErrRaggedMatrix},
		{name: "single row", data: domain.FeatureMatrix{{1, 2, 3}}},
		{name: "normal data", data: generateTestData(100, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(WithTrees(10))
			err := f.Fit(tt.data)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, f.trained)
				return
			}
			require.NoError(t, err)
			assert.True(t, f.trained)
			assert.Len(t, f.trees, 10)
		})
	}
}

func TestPredictBeforeFit(t *testing.T) {
	f := New()

	_, err := f.Predict(domain.FeatureMatrix{{1}})
	assert.ErrorIs(t, err, domain.ErrModelNotFitted)

	_, err = f.Score(domain.FeatureMatrix{{1}})
	assert.ErrorIs(t, err, domain.ErrModelNotFitted)
}

func TestPredictWidthMismatch(t *testing.T) {
	f := New(WithTrees(5))
	require.NoError(t, f.Fit(generateTestData(20, 2)))

	_, err := f.Predict(domain.FeatureMatrix{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrWidthMismatch)
}

func TestFitPredictFlagsOutlier(t *testing.T) {
	data := make(domain.FeatureMatrix, 0, 20)
	for i := range 19 {
		data = append(data, []float64{float64(10 + i%5), float64(100 + i%3)})
	}
	data = append(data, []float64{500, 9000})

	labels, err := New().FitPredict(data)
	require.NoError(t, err)
	require.Len(t, labels, len(data))

	assert.Equal(t, domain.Anomaly, labels[19])
	assert.Equal(t, 1, countAnomalies(labels))
}

func TestSplitBetweenExtremes(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		u      float64
		want   float64
	}{
		{name: "lower bound", lo: -1e308, hi: 1e308, u: 0, want: -1e308},
		{name: "midpoint", lo: -1e308, hi: 1e308, u: 0.5, want: 0},
		{name: "upper bound", lo: -1e308, hi: 1e308, u: 1, want: 1e308},
		{name: "small range", lo: 2, hi: 4, u: 0.25, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitBetween(tt.lo, tt.hi, tt.u)
			assert.False(t, math.IsInf(got, 0) || math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFitPredictHugeOppositeValues(t *testing.T) {
	data := domain.FeatureMatrix{{1e308}, {-1e308}, {0}, {1}, {2}, {3}}
	f := New()

	require.NoError(t, f.Fit(data))
	scores, err := f.Score(data)
	require.NoError(t, err)

	distinct := map[float64]struct{}{}
	for _, s := range scores {
		assert.False(t, math.IsNaN(s))
		distinct[s] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1)
}

func TestScoresAreBounded(t *testing.T) {
	data := generateTestData(200, 4)
	f := New(WithTrees(30), WithSampleSize(64))
	require.NoError(t, f.Fit(data))

	scores, err := f.Score(data)
	require.NoError(t, err)
	for _, s := range scores {
		assert.Greater(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestContaminationControlsAnomalyShare(t *testing.T) {
	data := generateTestData(100, 3)

	tests := []struct {
		contamination float64
		want          int
	}{
		{contamination: 0.05, want: 5},
		{contamination: 0.1, want: 10},
		{contamination: 0.2, want: 20},
	}

	for _, tt := range tests {
		labels, err := New(WithContamination(tt.contamination)).FitPredict(data)
		require.NoError(t, err)
		assert.Equal(t, tt.want, countAnomalies(labels), "contamination %v", tt.contamination)
	}
}

func TestIdenticalRowsAreNormal(t *testing.T) {
	data := domain.FeatureMatrix{{1, 1}, {1, 1}, {1, 1}, {1, 1}}

	labels, err := New().FitPredict(data)
	require.NoError(t, err)
	assert.Equal(t, 0, countAnomalies(labels))
}

func TestSingleRow(t *testing.T) {
	f := New()
	labels, err := f.FitPredict(domain.FeatureMatrix{{42}})
	require.NoError(t, err)
	assert.Equal(t, []domain.AnomalyLabel{domain.Normal}, labels)

	scores, err := f.Score(domain.FeatureMatrix{{42}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, scores)
}

func TestFitPredictIsDeterministic(t *testing.T) {
	data := generateTestData(150, 3)

	first, err := New(WithSeed(42)).FitPredict(data)
	require.NoError(t, err)

	for range 3 {
		again, err := New(WithSeed(42)).FitPredict(data)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	f := New(WithSeed(42))
	_, err = f.FitPredict(generateTestData(50, 3))
	require.NoError(t, err)
	refit, err := f.FitPredict(data)
	require.NoError(t, err)
	assert.Equal(t, first, refit)
}

func TestSharedInstanceIsSafe(t *testing.T) {
	a := generateTestData(80, 2)
	b := generateTestData(40, 2)

	wantA, err := New().FitPredict(a)
	require.NoError(t, err)
	wantB, err := New().FitPredict(b)
	require.NoError(t, err)

	shared := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, want := a, wantA
			if i%2 == 1 {
				data, want = b, wantB
			}
			got, err := shared.FitPredict(data)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}(i)
	}
	wg.Wait()
}

func TestAveragePathLength(t *testing.T) {
	assert.Equal(t, 0.0, averagePathLength(0))
	assert.Equal(t, 0.0, averagePathLength(1))
	assert.Equal(t, 1.0, averagePathLength(2))
	assert.InDelta(t, 10.2448, averagePathLength(256), 1e-3)
}

func TestPercentile(t *testing.T) {
	data := []float64{5, 1, 4, 2, 3}

	assert.Equal(t, 1.0, percentile(data, 0))
	assert.Equal(t, 5.0, percentile(data, 1))
	assert.Equal(t, 3.0, percentile(data, 0.5))
	assert.InDelta(t, 4.8, percentile(data, 0.95), 1e-9)
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, data)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "zero contamination", cfg: Config{Contamination: 0, Trees: 1, SampleSize: 1}, wantErr: ErrInvalidContamination},
		{name: "too much contamination", cfg: Config{Contamination: 0.6, Trees: 1, SampleSize: 1}, wantErr: ErrInvalidContamination},
		{name: "no trees", cfg: Config{Contamination: 0.1, SampleSize: 1}, wantErr: ErrInvalidTrees},
		{name: "no samples", cfg: Config{Contamination: 0.1, Trees: 1}, wantErr: ErrInvalidSampleSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func generateTestData(n, features int) domain.FeatureMatrix {
	rng := rand.New(rand.NewSource(1))
	data := make(domain.FeatureMatrix, n)
	for i := range data {
		row := make([]float64, features)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		data[i] = row
	}
	return data
}

func countAnomalies(labels []domain.AnomalyLabel) int {
	n := 0
	for _, l := range labels {
		if l == domain.Anomaly {
			n++
		}
	}
	return n
}
