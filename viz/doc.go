// Package viz renders the exploratory plots used to choose clustering
// parameters: dendrograms, kernel density and ECDF plots of the pairwise
// dissimilarities, the sorted k-nearest-neighbor distance curve for DBSCAN,
// and silhouette widths.
//
// Plots are built with gonum/plot and written with [Encode]:
//
//	p, err := viz.Dendrogram(tree, nil, "complete linkage")
//	err = viz.Encode(p, viz.FormatSVG, 800, 500, w)
//
// Dendrograms can also be drawn as node-link trees through Graphviz with
// [DendrogramDOT] and [RenderDOT].
package viz
