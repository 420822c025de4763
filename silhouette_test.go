package mixclust

import (
	"math"
	"testing"
)

func TestComputeSilhouette_TwoGroups(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 2, 10, 11, 12)
	s := ComputeSilhouette(d, []int{0, 0, 0, 1, 1, 1})

	want := []float64{9.5 / 11, 9.0 / 10, 7.5 / 9, 7.5 / 9, 9.0 / 10, 9.5 / 11}
	for i, w := range want {
		if math.Abs(s.Widths[i]-w) > 1e-12 {
			t.Errorf("Widths[%d] = %v, want %v", i, s.Widths[i], w)
		}
	}
	avg := (9.5/11 + 0.9 + 7.5/9) / 3
	if math.Abs(s.Average-avg) > 1e-12 {
		t.Errorf("Average = %v, want %v", s.Average, avg)
	}
	for c, ca := range s.ClusterAverage {
		if math.Abs(ca-avg) > 1e-12 {
			t.Errorf("ClusterAverage[%d] = %v, want %v", c, ca, avg)
		}
	}
	if s.Neighbor[0] != 1 || s.Neighbor[5] != 0 {
		t.Errorf("Neighbor = %v", s.Neighbor)
	}
}

func TestComputeSilhouette_Singleton(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 10)
	s := ComputeSilhouette(d, []int{0, 0, 1})
	if s.Widths[2] != 0 {
		t.Errorf("singleton width = %v, want 0", s.Widths[2])
	}
	// The singleton still counts toward the average.
	want := (s.Widths[0] + s.Widths[1]) / 3
	if math.Abs(s.Average-want) > 1e-12 {
		t.Errorf("Average = %v, want %v", s.Average, want)
	}
}

func TestComputeSilhouette_NoiseExcluded(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 5, 10, 11)
	s := ComputeSilhouette(d, []int{0, 0, -1, 1, 1})

	if !math.IsNaN(s.Widths[2]) {
		t.Errorf("noise width = %v, want NaN", s.Widths[2])
	}
	if s.Neighbor[2] != -1 {
		t.Errorf("noise neighbor = %d, want -1", s.Neighbor[2])
	}
	// Noise is neither a cluster to compare against nor averaged.
	w0 := (10.5 - 1) / 10.5
	if math.Abs(s.Widths[0]-w0) > 1e-12 {
		t.Errorf("Widths[0] = %v, want %v", s.Widths[0], w0)
	}
	if math.IsNaN(s.Average) {
		t.Error("Average must skip noise")
	}
}

func TestComputeSilhouette_OneCluster(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 2)
	s := ComputeSilhouette(d, []int{0, 0, 0})
	if s.Average != 0 {
		t.Errorf("Average = %v, want 0", s.Average)
	}
	for i, w := range s.Widths {
		if w != 0 {
			t.Errorf("Widths[%d] = %v, want 0", i, w)
		}
	}
}
