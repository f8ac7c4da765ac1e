package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/recomb/internal/cosmo"
)

const (
	DefaultT0     = 2.726
	DefaultOBh2   = 0.022
	DefaultOMh2   = 0.14
	DefaultODEh2  = 0.3528
	DefaultYHe    = 0.24
	DefaultNNuEff = 3.046
	DefaultStride = 16
)

type Config struct {
	Model     string          `yaml:"model"`
	Cosmology CosmologyConfig `yaml:"cosmology"`
	Injection InjectionConfig `yaml:"injection"`
	Stride    int             `yaml:"stride"`
}

type CosmologyConfig struct {
	T0     float64 `yaml:"t0"`
	OBh2   float64 `yaml:"obh2"`
	OMh2   float64 `yaml:"omh2"`
	OKh2   float64 `yaml:"okh2"`
	ODEh2  float64 `yaml:"odeh2"`
	W0     float64 `yaml:"w0"`
	WA     float64 `yaml:"wa"`
	YHe    float64 `yaml:"yhe"`
	NNuEff float64 `yaml:"nnueff"`
}

type InjectionConfig struct {
	PAnn  float64 `yaml:"pann"`
	PDec  float64 `yaml:"pdec"`
	Alpha float64 `yaml:"alpha"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "full",
		Cosmology: CosmologyConfig{
			T0:     DefaultT0,
			OBh2:   DefaultOBh2,
			OMh2:   DefaultOMh2,
			ODEh2:  DefaultODEh2,
			W0:     -1,
			YHe:    DefaultYHe,
			NNuEff: DefaultNNuEff,
		},
		Stride: DefaultStride,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Input maps the configuration onto the parameter constructor's input.
func (c *Config) Input() cosmo.Input {
	return cosmo.Input{
		T0:     c.Cosmology.T0,
		OBh2:   c.Cosmology.OBh2,
		OMh2:   c.Cosmology.OMh2,
		OKh2:   c.Cosmology.OKh2,
		ODEh2:  c.Cosmology.ODEh2,
		W0:     c.Cosmology.W0,
		WA:     c.Cosmology.WA,
		YHe:    c.Cosmology.YHe,
		NNuEff: c.Cosmology.NNuEff,
		PAnn:   c.Injection.PAnn,
		PDec:   c.Injection.PDec,
		Alpha:  c.Injection.Alpha,
	}
}
