package mixclust

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metric names the dissimilarity used by ComputeDissimilarity.
type Metric string

const (
	MetricGower     Metric = "gower"
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
)

// DissimilarityConfig controls dissimilarity computation.
// Start with [DefaultDissimilarityConfig] and override the fields you need.
type DissimilarityConfig struct {
	// Metric selects Gower (any variable kinds) or Euclidean/Manhattan
	// (continuous variables only). Default: MetricGower.
	Metric Metric

	// Weights gives one non-negative weight per variable for Gower. nil means
	// every variable contributes equally. Ignored by the other metrics.
	Weights []float64

	// Standardize divides each column by its range before Euclidean or
	// Manhattan distances are taken. Gower always range-scales.
	Standardize bool

	// Workers controls the number of goroutines computing pairwise
	// distances. 0 means runtime.NumCPU(); 1 forces sequential computation.
	Workers int
}

// DefaultDissimilarityConfig returns unweighted Gower with automatic workers.
func DefaultDissimilarityConfig() DissimilarityConfig {
	return DissimilarityConfig{Metric: MetricGower}
}

func validateDissimilarityConfig(cfg *DissimilarityConfig) error {
	switch cfg.Metric {
	case MetricGower, MetricEuclidean, MetricManhattan:
	default:
		return fmt.Errorf("mixclust: invalid Metric %q", cfg.Metric)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("mixclust: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// ComputeDissimilarity validates ds and returns its pairwise dissimilarity
// matrix under cfg.
func ComputeDissimilarity(ds *Dataset, cfg DissimilarityConfig) (*Dissimilarity, error) {
	if cfg.Metric == "" {
		cfg.Metric = MetricGower
	}
	if err := validateDissimilarityConfig(&cfg); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	var metric DistanceMetric
	switch cfg.Metric {
	case MetricGower:
		g, err := NewGowerMetric(ds, cfg.Weights)
		if err != nil {
			return nil, err
		}
		metric = g
	default:
		if !ds.AllContinuous() {
			return nil, fmt.Errorf("mixclust: metric %q needs all-continuous variables; use %q for mixed data", cfg.Metric, MetricGower)
		}
		var scale []float64
		if cfg.Standardize {
			scale = columnRanges(ds)
		}
		if cfg.Metric == MetricEuclidean {
			metric = EuclideanMetric{Scale: scale}
		} else {
			metric = ManhattanMetric{Scale: scale}
		}
	}

	return ComputePairwiseParallel(ds.Rows, metric, resolveWorkers(cfg.Workers)), nil
}

// Gower computes the unweighted Gower dissimilarity matrix of ds.
func Gower(ds *Dataset) (*Dissimilarity, error) {
	return ComputeDissimilarity(ds, DefaultDissimilarityConfig())
}

func columnRanges(ds *Dataset) []float64 {
	out := make([]float64, ds.P())
	for j := range out {
		col := presentValues(ds.Column(j))
		if len(col) == 0 {
			out[j] = math.NaN()
			continue
		}
		out[j] = floats.Max(col) - floats.Min(col)
	}
	return out
}
