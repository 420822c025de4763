package mixclust

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds the synthetic dataset so repeated runs see the same data.
const DefaultSeed uint64 = 1234

// GroupParams parameterizes one latent group of the synthetic dataset.
type GroupParams struct {
	// Mean and SD of the Gaussian continuous variable.
	Mean float64
	SD   float64

	// BinaryP is the success probability of the Bernoulli binary variable.
	BinaryP float64

	// OrdinalP is the per-trial success probability of the Binomial ordinal
	// variable, which takes values 0..OrdinalTrials.
	OrdinalP float64
}

// GenerateConfig controls synthetic data generation.
// Start with [DefaultGenerateConfig] and override the fields you need.
type GenerateConfig struct {
	// GroupSize is the number of rows drawn per group. Must be >= 1.
	GroupSize int

	// Groups lists the generating parameters, one entry per latent group.
	Groups []GroupParams

	// OrdinalTrials is the number of Binomial trials for the ordinal
	// variable, giving OrdinalTrials+1 ordered levels. Must be >= 1.
	OrdinalTrials int

	// Seed makes generation deterministic.
	Seed uint64
}

// DefaultGenerateConfig returns three groups of 15 rows with increasing
// means (0, 1, 2) and success probabilities (.2, .5, .8), and a 6-level
// ordinal variable.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		GroupSize: 15,
		Groups: []GroupParams{
			{Mean: 0, SD: 1, BinaryP: 0.2, OrdinalP: 0.2},
			{Mean: 1, SD: 1, BinaryP: 0.5, OrdinalP: 0.5},
			{Mean: 2, SD: 1, BinaryP: 0.8, OrdinalP: 0.8},
		},
		OrdinalTrials: 5,
		Seed:          DefaultSeed,
	}
}

// MixedVars is the variable layout produced by [Generate].
var MixedVars = []Variable{
	{Name: "x", Kind: Continuous},
	{Name: "b", Kind: SymmetricBinary},
	{Name: "o", Kind: Ordinal},
}

func validateGenerateConfig(cfg *GenerateConfig) error {
	if cfg.GroupSize < 1 {
		return fmt.Errorf("mixclust: GroupSize must be >= 1, got %d", cfg.GroupSize)
	}
	if len(cfg.Groups) == 0 {
		return fmt.Errorf("mixclust: at least one group is required")
	}
	if cfg.OrdinalTrials < 1 {
		return fmt.Errorf("mixclust: OrdinalTrials must be >= 1, got %d", cfg.OrdinalTrials)
	}
	for g, p := range cfg.Groups {
		if p.SD <= 0 {
			return fmt.Errorf("mixclust: group %d: SD must be > 0, got %f", g, p.SD)
		}
		if p.BinaryP < 0 || p.BinaryP > 1 {
			return fmt.Errorf("mixclust: group %d: BinaryP must be in [0, 1], got %f", g, p.BinaryP)
		}
		if p.OrdinalP < 0 || p.OrdinalP > 1 {
			return fmt.Errorf("mixclust: group %d: OrdinalP must be in [0, 1], got %f", g, p.OrdinalP)
		}
	}
	return nil
}

// Generate draws GroupSize rows for each group, group after group, with the
// columns laid out as [MixedVars]. All draws come from one PCG stream seeded
// from cfg.Seed, so the same config always yields the same dataset.
func Generate(cfg GenerateConfig) (*Dataset, error) {
	if err := validateGenerateConfig(&cfg); err != nil {
		return nil, err
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	n := cfg.GroupSize * len(cfg.Groups)
	ds := &Dataset{
		Vars:   append([]Variable(nil), MixedVars...),
		Rows:   make([][]float64, 0, n),
		Groups: make([]int, 0, n),
	}

	// Each group draws whole columns: all continuous values, then binary,
	// then ordinal.
	for g, p := range cfg.Groups {
		cont := distuv.Normal{Mu: p.Mean, Sigma: p.SD, Src: src}
		bin := distuv.Bernoulli{P: p.BinaryP, Src: src}
		ord := distuv.Binomial{N: float64(cfg.OrdinalTrials), P: p.OrdinalP, Src: src}

		rows := make([][]float64, cfg.GroupSize)
		for i := range rows {
			rows[i] = make([]float64, len(MixedVars))
			rows[i][0] = cont.Rand()
		}
		for i := range rows {
			rows[i][1] = bin.Rand()
		}
		for i := range rows {
			rows[i][2] = ord.Rand()
		}
		for _, row := range rows {
			ds.Rows = append(ds.Rows, row)
			ds.Groups = append(ds.Groups, g)
		}
	}
	return ds, nil
}
