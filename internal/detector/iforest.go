package detector

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/Egor213/LogiSense/internal/domain"
)

const eulerGamma = 0.5772156649

// IsolationForest scores rows by how quickly random axis-aligned splits
// isolate them. Shorter average paths mean more anomalous rows.
type IsolationForest struct {
	mu sync.RWMutex

	nTrees        int
	sampleSize    int
	contamination float64
	seed          int64

	trees     []*node
	pathNorm  float64
	threshold float64
	nFeatures int
	trained   bool
}

type node struct {
	splitFeature int
	splitValue   float64

	left  *node
	right *node

	size int
}

func (n *node) leaf() bool {
	return n.left == nil && n.right == nil
}

// Option configures an IsolationForest.
type Option func(*IsolationForest)

func WithTrees(n int) Option {
	return func(f *IsolationForest) {
		f.nTrees = n
	}
}

func WithSampleSize(n int) Option {
	return func(f *IsolationForest) {
		f.sampleSize = n
	}
}

func WithContamination(c float64) Option {
	return func(f *IsolationForest) {
		f.contamination = c
	}
}

func WithSeed(seed int64) Option {
	return func(f *IsolationForest) {
		f.seed = seed
	}
}

func New(opts ...Option) *IsolationForest {
	f := &IsolationForest{
		nTrees:        DefaultTrees,
		sampleSize:    DefaultSampleSize,
		contamination: DefaultContamination,
		seed:          DefaultSeed,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fit grows the ensemble on m and sets the anomaly threshold from the
// training scores. Every call starts from the configured seed.
func (f *IsolationForest) Fit(m domain.FeatureMatrix) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fit(m)
}

func (f *IsolationForest) fit(m domain.FeatureMatrix) error {
	nFeatures, err := width(m)
	if err != nil {
		return err
	}
	if f.nTrees <= 0 {
		return ErrInvalidTrees
	}
	if f.sampleSize <= 0 {
		return ErrInvalidSampleSize
	}

	nSamples := len(m)
	sampleSize := min(f.sampleSize, nSamples)
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize))))
	rng := rand.New(rand.NewSource(f.seed))

	trees := make([]*node, f.nTrees)
	for i := range trees {
		indices := rng.Perm(nSamples)[:sampleSize]
		sample := make([][]float64, sampleSize)
		for j, idx := range indices {
			sample[j] = m[idx]
		}
		trees[i] = buildNode(rng, sample, nFeatures, 0, maxDepth)
	}

	f.trees = trees
	f.nFeatures = nFeatures
	f.pathNorm = averagePathLength(sampleSize)
	f.trained = true

	scores := f.score(m)
	f.threshold = percentile(scores, 1-f.contamination)

	return nil
}

func buildNode(rng *rand.Rand, data [][]float64, nFeatures, depth, maxDepth int) *node {
	n := len(data)
	if depth >= maxDepth || n <= 1 {
		return &node{size: n}
	}

	// Only features that still vary can split this node.
	var (
		candidates []int
		lows       []float64
		highs      []float64
	)
	for feature := 0; feature < nFeatures; feature++ {
		lo, hi := data[0][feature], data[0][feature]
		for _, row := range data[1:] {
			lo = math.Min(lo, row[feature])
			hi = math.Max(hi, row[feature])
		}
		if lo < hi {
			candidates = append(candidates, feature)
			lows = append(lows, lo)
			highs = append(highs, hi)
		}
	}
	if len(candidates) == 0 {
		return &node{size: n}
	}

	pick := rng.Intn(len(candidates))
	feature := candidates[pick]
	splitValue := splitBetween(lows[pick], highs[pick], rng.Float64())

	var leftData, rightData [][]float64
	for _, row := range data {
		if row[feature] < splitValue {
			leftData = append(leftData, row)
		} else {
			rightData = append(rightData, row)
		}
	}

	return &node{
		splitFeature: feature,
		splitValue:   splitValue,
		left:         buildNode(rng, leftData, nFeatures, depth+1, maxDepth),
		right:        buildNode(rng, rightData, nFeatures, depth+1, maxDepth),
		size:         n,
	}
}

// splitBetween interpolates without computing hi-lo, which overflows for
// finite values of opposite sign near the float64 limits.
func splitBetween(lo, hi, u float64) float64 {
	return lo*(1-u) + hi*u
}

// Score returns the anomaly score of every row in [0, 1]; higher values are
// more anomalous.
func (f *IsolationForest) Score(m domain.FeatureMatrix) ([]float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.checkInput(m); err != nil {
		return nil, err
	}
	return f.score(m), nil
}

func (f *IsolationForest) score(m domain.FeatureMatrix) []float64 {
	scores := make([]float64, len(m))
	for i, row := range m {
		var total float64
		for _, tree := range f.trees {
			total += pathLength(row, tree, 0)
		}
		avg := total / float64(len(f.trees))

		if f.pathNorm == 0 {
			scores[i] = 0.5
			continue
		}
		scores[i] = math.Pow(2, -avg/f.pathNorm)
	}
	return scores
}

// Predict labels rows scoring above the fitted threshold as anomalies.
func (f *IsolationForest) Predict(m domain.FeatureMatrix) ([]domain.AnomalyLabel, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.predict(m)
}

func (f *IsolationForest) predict(m domain.FeatureMatrix) ([]domain.AnomalyLabel, error) {
	if err := f.checkInput(m); err != nil {
		return nil, err
	}

	scores := f.score(m)
	labels := make([]domain.AnomalyLabel, len(scores))
	for i, s := range scores {
		if s > f.threshold {
			labels[i] = domain.Anomaly
		} else {
			labels[i] = domain.Normal
		}
	}
	return labels, nil
}

// FitPredict fits on m and labels m while holding the model exclusively, so
// a concurrent caller never observes a half-built ensemble.
func (f *IsolationForest) FitPredict(m domain.FeatureMatrix) ([]domain.AnomalyLabel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fit(m); err != nil {
		return nil, err
	}
	return f.predict(m)
}

func (f *IsolationForest) Threshold() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.threshold
}

func (f *IsolationForest) checkInput(m domain.FeatureMatrix) error {
	if !f.trained {
		return domain.ErrModelNotFitted
	}
	w, err := width(m)
	if err != nil {
		return err
	}
	if w != f.nFeatures {
		return ErrWidthMismatch
	}
	return nil
}

func width(m domain.FeatureMatrix) (int, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, ErrEmptyMatrix
	}
	w := len(m[0])
	for _, row := range m[1:] {
		if len(row) != w {
			return 0, ErrRaggedMatrix
		}
	}
	return w, nil
}

func pathLength(row []float64, n *node, depth int) float64 {
	for !n.leaf() {
		if row[n.splitFeature] < n.splitValue {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(n.size)
}

// averagePathLength is c(n), the mean path length of an unsuccessful search
// in a binary search tree of n nodes.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

// percentile returns the q-quantile of data using linear interpolation.
func percentile(data []float64, q float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
