// Package mixclust clusters mixed-type observations (continuous, binary,
// ordinal and nominal variables) from a precomputed dissimilarity matrix.
//
// The usual flow computes Gower's dissimilarity once and hands the same
// read-only matrix to several independent estimators:
//
//	ds, err := mixclust.Generate(mixclust.DefaultGenerateConfig())
//	d, err := mixclust.Gower(ds)
//
//	sel, err := mixclust.SelectK(d, mixclust.KRange{Min: 1, Max: 5})
//	// sel.K is the silhouette-selected number of clusters
//	// sel.Best.Medoids are the medoid row indices
//
//	tree, err := mixclust.Hierarchical(d, mixclust.LinkageComplete)
//	// tree.Merges[i] = {Left, Right, Height, Size}, ids >= n are clusters
//
//	res, err := mixclust.DBSCAN(d, mixclust.DefaultDBSCANConfig())
//	// res.Labels[i] is the cluster ID for point i (-1 = noise)
//
// # Dissimilarities
//
// Gower's coefficient averages a type-appropriate per-variable distance:
// range-scaled absolute difference for continuous variables, rank-scaled
// difference for ordinal variables, and a mismatch indicator for binary and
// nominal variables. Variables missing (NaN) on either side of a pair are
// left out of that pair's average. All-numeric data can also use the
// Euclidean or Manhattan metric:
//
//	cfg := mixclust.DefaultDissimilarityConfig()
//	cfg.Metric = mixclust.MetricManhattan
//	d, err := mixclust.ComputeDissimilarity(ds, cfg)
//
// # Hierarchical linkages
//
// Single linkage is built from a minimum spanning tree. The other linkages
// (complete, average, median, centroid, ward, mcquitty) use the
// Lance–Williams update on the dissimilarities as given. Median and centroid
// linkage can produce inversions, so their heights are not guaranteed to be
// monotone.
package mixclust
