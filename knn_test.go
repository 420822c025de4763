package mixclust

import (
	"slices"
	"testing"
)

func TestKNNDistances(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 3)

	cases := []struct {
		k    int
		want []float64
	}{
		{1, []float64{1, 1, 2}},
		{2, []float64{3, 2, 3}},
		{5, []float64{3, 2, 3}}, // clamped to n-1
		{0, []float64{1, 1, 2}}, // clamped to 1
	}
	for _, tc := range cases {
		if got := KNNDistances(d, tc.k); !slices.Equal(got, tc.want) {
			t.Errorf("KNNDistances(k=%d) = %v, want %v", tc.k, got, tc.want)
		}
	}

	if got := KNNDistances(NewDissimilarity(1), 3); !slices.Equal(got, []float64{0}) {
		t.Errorf("single observation: %v, want [0]", got)
	}
}

func TestSortedKNNDistances(t *testing.T) {
	d := lineDissimilarity(t, 0, 1, 3, 10)
	got, err := SortedKNNDistances(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 1, 2, 7}; !slices.Equal(got, want) {
		t.Errorf("SortedKNNDistances = %v, want %v", got, want)
	}
	if _, err := SortedKNNDistances(d, 0); err == nil {
		t.Error("expected error for k=0")
	}
}
