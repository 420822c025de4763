package mixclust

import (
	"fmt"
	"math"
)

// VarKind describes how a variable is compared when computing dissimilarities.
type VarKind string

const (
	Continuous       VarKind = "continuous"
	Ordinal          VarKind = "ordinal"
	SymmetricBinary  VarKind = "symmetric"
	AsymmetricBinary VarKind = "asymmetric"
	Nominal          VarKind = "nominal"
)

// ParseVarKind maps a kind name to a VarKind. "binary" is accepted as an
// alias for SymmetricBinary and "numeric" for Continuous.
func ParseVarKind(s string) (VarKind, error) {
	switch VarKind(s) {
	case Continuous, Ordinal, SymmetricBinary, AsymmetricBinary, Nominal:
		return VarKind(s), nil
	}
	switch s {
	case "binary":
		return SymmetricBinary, nil
	case "numeric":
		return Continuous, nil
	}
	return "", fmt.Errorf("mixclust: unknown variable kind %q", s)
}

// Variable names one column of a Dataset and its kind.
type Variable struct {
	Name string
	Kind VarKind
}

// Dataset holds observations in row-major order. Each row has one value per
// variable. Binary values are 0 or 1, ordinal and nominal values are integer
// codes, and NaN marks a missing value.
type Dataset struct {
	Vars []Variable
	Rows [][]float64

	// Groups is the latent group of each row when known (synthetic data),
	// nil otherwise.
	Groups []int
}

// N returns the number of observations.
func (ds *Dataset) N() int { return len(ds.Rows) }

// P returns the number of variables.
func (ds *Dataset) P() int { return len(ds.Vars) }

// Column returns a copy of variable j across all rows.
func (ds *Dataset) Column(j int) []float64 {
	col := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		col[i] = row[j]
	}
	return col
}

// AllContinuous reports whether every variable is Continuous.
func (ds *Dataset) AllContinuous() bool {
	for _, v := range ds.Vars {
		if v.Kind != Continuous {
			return false
		}
	}
	return true
}

// Validate checks row widths, variable kinds and per-kind value domains.
func (ds *Dataset) Validate() error {
	if len(ds.Vars) == 0 {
		return fmt.Errorf("mixclust: dataset has no variables")
	}
	for j, v := range ds.Vars {
		if _, err := ParseVarKind(string(v.Kind)); err != nil {
			return fmt.Errorf("mixclust: variable %d (%s): %w", j, v.Name, err)
		}
	}
	if ds.Groups != nil && len(ds.Groups) != len(ds.Rows) {
		return fmt.Errorf("mixclust: %d group labels for %d rows", len(ds.Groups), len(ds.Rows))
	}
	for i, row := range ds.Rows {
		if len(row) != len(ds.Vars) {
			return fmt.Errorf("mixclust: row %d has %d values, want %d", i, len(row), len(ds.Vars))
		}
		for j, x := range row {
			if math.IsNaN(x) {
				continue
			}
			if math.IsInf(x, 0) {
				return fmt.Errorf("mixclust: row %d, variable %s: infinite value", i, ds.Vars[j].Name)
			}
			switch ds.Vars[j].Kind {
			case SymmetricBinary, AsymmetricBinary:
				if x != 0 && x != 1 {
					return fmt.Errorf("mixclust: row %d, variable %s: binary value %g is not 0 or 1", i, ds.Vars[j].Name, x)
				}
			case Ordinal, Nominal:
				if x != math.Trunc(x) {
					return fmt.Errorf("mixclust: row %d, variable %s: level %g is not an integer code", i, ds.Vars[j].Name, x)
				}
			}
		}
	}
	return nil
}
