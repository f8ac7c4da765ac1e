package config

import "sort"

var Presets = map[string]*Config{
	"planck": {
		Model: "full",
		Cosmology: CosmologyConfig{
			T0: 2.726, OBh2: 0.022, OMh2: 0.14, ODEh2: 0.3528,
			W0: -1, YHe: 0.24, NNuEff: 3.046,
		},
		Stride: DefaultStride,
	},
	"eds": {
		// Einstein-de Sitter: matter only, useful for closed-form checks
		Model: "full",
		Cosmology: CosmologyConfig{
			T0: 2.726, OBh2: 0.022, OMh2: 0.14,
			W0: -1, YHe: 0.24, NNuEff: 0,
		},
		Stride: DefaultStride,
	},
	"annihilation": {
		Model: "full",
		Cosmology: CosmologyConfig{
			T0: 2.726, OBh2: 0.022, OMh2: 0.14, ODEh2: 0.3528,
			W0: -1, YHe: 0.24, NNuEff: 3.046,
		},
		Injection: InjectionConfig{PAnn: 1e-6, Alpha: 2},
		Stride:    DefaultStride,
	},
	"recfast": {
		Model: "recfast",
		Cosmology: CosmologyConfig{
			T0: 2.726, OBh2: 0.022, OMh2: 0.14, ODEh2: 0.3528,
			W0: -1, YHe: 0.24, NNuEff: 3.046,
		},
		Stride: DefaultStride,
	},
}

// GetPreset returns a copy of a named preset, or nil. Callers may overwrite
// fields without touching the shared table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
