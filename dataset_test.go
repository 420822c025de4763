package mixclust

import (
	"math"
	"testing"
)

func TestParseVarKind(t *testing.T) {
	cases := map[string]VarKind{
		"continuous": Continuous,
		"numeric":    Continuous,
		"ordinal":    Ordinal,
		"symmetric":  SymmetricBinary,
		"binary":     SymmetricBinary,
		"asymmetric": AsymmetricBinary,
		"nominal":    Nominal,
	}
	for in, want := range cases {
		got, err := ParseVarKind(in)
		if err != nil || got != want {
			t.Errorf("ParseVarKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseVarKind("interval"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDataset_Accessors(t *testing.T) {
	ds := &Dataset{
		Vars: []Variable{{"x", Continuous}, {"b", SymmetricBinary}},
		Rows: [][]float64{{1.5, 0}, {2.5, 1}, {3.5, 1}},
	}
	if ds.N() != 3 || ds.P() != 2 {
		t.Errorf("N, P = %d, %d; want 3, 2", ds.N(), ds.P())
	}
	col := ds.Column(1)
	if col[0] != 0 || col[1] != 1 || col[2] != 1 {
		t.Errorf("Column(1) = %v", col)
	}
	col[0] = 9
	if ds.Rows[0][1] != 0 {
		t.Error("Column must return a copy")
	}
	if ds.AllContinuous() {
		t.Error("AllContinuous() = true with a binary variable")
	}
}

func TestDataset_Validate(t *testing.T) {
	vars := []Variable{{"x", Continuous}, {"b", SymmetricBinary}, {"o", Ordinal}}
	cases := []struct {
		name    string
		ds      *Dataset
		wantErr bool
	}{
		{"valid", &Dataset{Vars: vars, Rows: [][]float64{{0.3, 1, 2}}}, false},
		{"missing values", &Dataset{Vars: vars, Rows: [][]float64{{math.NaN(), math.NaN(), math.NaN()}}}, false},
		{"no variables", &Dataset{}, true},
		{"unknown kind", &Dataset{Vars: []Variable{{"z", "interval"}}}, true},
		{"short row", &Dataset{Vars: vars, Rows: [][]float64{{0.3, 1}}}, true},
		{"binary out of domain", &Dataset{Vars: vars, Rows: [][]float64{{0.3, 2, 2}}}, true},
		{"fractional level", &Dataset{Vars: vars, Rows: [][]float64{{0.3, 1, 1.5}}}, true},
		{"infinite", &Dataset{Vars: vars, Rows: [][]float64{{math.Inf(-1), 1, 2}}}, true},
		{"group count", &Dataset{Vars: vars, Rows: [][]float64{{0.3, 1, 2}}, Groups: []int{0, 1}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ds.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
