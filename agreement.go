package mixclust

import "fmt"

// AdjustedRandIndex measures the agreement of two labelings of the same
// observations, corrected for chance: 1 for identical partitions, around 0
// for unrelated ones. Label values are only compared for equality, so noise
// (-1) counts as one more group.
func AdjustedRandIndex(a, b []int) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("mixclust: labelings have %d and %d entries", len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return 1, nil
	}

	type pair struct{ x, y int }
	joint := map[pair]int{}
	rows := map[int]int{}
	cols := map[int]int{}
	for i := range a {
		joint[pair{a[i], b[i]}]++
		rows[a[i]]++
		cols[b[i]]++
	}

	choose2 := func(m int) float64 { return float64(m) * float64(m-1) / 2 }
	var index, sumRows, sumCols float64
	for _, c := range joint {
		index += choose2(c)
	}
	for _, c := range rows {
		sumRows += choose2(c)
	}
	for _, c := range cols {
		sumCols += choose2(c)
	}

	expected := sumRows * sumCols / choose2(n)
	maxIndex := (sumRows + sumCols) / 2
	if maxIndex == expected {
		// Both labelings are trivial (all one group or all singletons).
		return 1, nil
	}
	return (index - expected) / (maxIndex - expected), nil
}
