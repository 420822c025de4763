package mixclust

import (
	"math"
	"testing"
)

func TestGenerate_Default(t *testing.T) {
	ds, err := Generate(DefaultGenerateConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.N() != 45 {
		t.Fatalf("N() = %d, want 45", ds.N())
	}
	if ds.P() != len(MixedVars) {
		t.Fatalf("P() = %d, want %d", ds.P(), len(MixedVars))
	}
	if err := ds.Validate(); err != nil {
		t.Fatalf("generated dataset is invalid: %v", err)
	}

	for i, row := range ds.Rows {
		if want := i / 15; ds.Groups[i] != want {
			t.Errorf("row %d: group %d, want %d", i, ds.Groups[i], want)
		}
		if math.IsNaN(row[0]) || math.IsInf(row[0], 0) {
			t.Errorf("row %d: continuous value %v", i, row[0])
		}
		if row[1] != 0 && row[1] != 1 {
			t.Errorf("row %d: binary value %v", i, row[1])
		}
		if row[2] < 0 || row[2] > 5 || row[2] != math.Trunc(row[2]) {
			t.Errorf("row %d: ordinal value %v outside 0..5", i, row[2])
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(DefaultGenerateConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(DefaultGenerateConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				t.Fatalf("row %d col %d differs between runs: %v vs %v", i, j, a.Rows[i][j], b.Rows[i][j])
			}
		}
	}

	cfg := DefaultGenerateConfig()
	cfg.Seed++
	c, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.Rows {
		if a.Rows[i][0] != c.Rows[i][0] {
			same = false
			break
		}
	}
	if same {
		t.Error("a different seed produced the same continuous column")
	}
}

func TestGenerate_GroupMeansIncrease(t *testing.T) {
	cfg := DefaultGenerateConfig()
	cfg.GroupSize = 400
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	means := make([]float64, len(cfg.Groups))
	for i, row := range ds.Rows {
		means[ds.Groups[i]] += row[0] / float64(cfg.GroupSize)
	}
	for g, p := range cfg.Groups {
		if math.Abs(means[g]-p.Mean) > 0.25 {
			t.Errorf("group %d: sample mean %.3f far from %.1f", g, means[g], p.Mean)
		}
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	mutate := map[string]func(*GenerateConfig){
		"group size": func(c *GenerateConfig) { c.GroupSize = 0 },
		"no groups":  func(c *GenerateConfig) { c.Groups = nil },
		"trials":     func(c *GenerateConfig) { c.OrdinalTrials = 0 },
		"sd":         func(c *GenerateConfig) { c.Groups[0].SD = 0 },
		"binary p":   func(c *GenerateConfig) { c.Groups[1].BinaryP = 1.5 },
		"ordinal p":  func(c *GenerateConfig) { c.Groups[2].OrdinalP = -0.1 },
	}
	for name, fn := range mutate {
		cfg := DefaultGenerateConfig()
		fn(&cfg)
		if _, err := Generate(cfg); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
