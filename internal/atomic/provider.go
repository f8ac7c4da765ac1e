package atomic

import (
	"github.com/san-kum/recomb/internal/recomb"
	"github.com/san-kum/recomb/internal/spectrum"
)

// RateInput is the local state a kernel evaluates at. Temperatures are in
// eV, nH in m^-3, H in s^-1. Buf and Iz are consulted only by the
// two-photon kernel.
type RateInput struct {
	Xe        float64
	NH        float64
	H         float64
	TmEv      float64
	TrEv      float64
	FHe       float64
	Z         float64
	Injection float64
	Buf       *spectrum.Buffer
	Iz        int
}

// Kernel computes dxe/dlna for one mechanism.
type Kernel func(in RateInput) float64

type kernelFunc func(p *Provider, in RateInput) float64

// dispatch resolves (model, mechanism) to a concrete rate formula. The
// models that predate the multi-level treatment answer every hydrogen
// mechanism with their single formula; the full model distinguishes the
// two-photon, simplified and low-z channels.
var dispatch = map[recomb.Model]map[recomb.Mechanism]kernelFunc{
	recomb.ModelPeebles: {
		recomb.MechHelium:     func(_ *Provider, in RateInput) float64 { return heliumRate(in) },
		recomb.MechTwoPhoton:  func(_ *Provider, in RateInput) float64 { return peeblesRate(in) },
		recomb.MechSimplified: func(_ *Provider, in RateInput) float64 { return peeblesRate(in) },
		recomb.MechPeebles:    func(_ *Provider, in RateInput) float64 { return peeblesRate(in) },
	},
	recomb.ModelRecFast: {
		recomb.MechHelium:     func(_ *Provider, in RateInput) float64 { return heliumRate(in) },
		recomb.MechTwoPhoton:  func(_ *Provider, in RateInput) float64 { return recFastRate(in) },
		recomb.MechSimplified: func(_ *Provider, in RateInput) float64 { return recFastRate(in) },
		recomb.MechPeebles:    func(_ *Provider, in RateInput) float64 { return recFastRate(in) },
	},
	recomb.ModelEMLA: {
		recomb.MechHelium:     func(_ *Provider, in RateInput) float64 { return heliumRate(in) },
		recomb.MechTwoPhoton:  func(_ *Provider, in RateInput) float64 { return mlaRate(in) },
		recomb.MechSimplified: func(_ *Provider, in RateInput) float64 { return mlaRate(in) },
		recomb.MechPeebles:    func(_ *Provider, in RateInput) float64 { return mlaRate(in) },
	},
	recomb.ModelFull: {
		recomb.MechHelium:     func(_ *Provider, in RateInput) float64 { return heliumRate(in) },
		recomb.MechTwoPhoton:  func(_ *Provider, in RateInput) float64 { return twoPhotonRate(in) },
		recomb.MechSimplified: func(_ *Provider, in RateInput) float64 { return mlaRate(in) },
		recomb.MechPeebles:    func(_ *Provider, in RateInput) float64 { return peeblesRate(in) },
	},
}

// Provider resolves mechanisms against a configured physics model.
type Provider struct {
	model recomb.Model
}

func NewProvider(model recomb.Model) *Provider {
	return &Provider{model: model}
}

func (p *Provider) Model() recomb.Model { return p.model }

// Kernel returns the rate formula for a mechanism under the active model.
func (p *Provider) Kernel(mech recomb.Mechanism) (Kernel, error) {
	table, ok := dispatch[p.model]
	if !ok {
		return nil, &recomb.RunError{Op: "atomic: resolve kernel", Wrapped: recomb.ErrUnknownModel, Detail: p.model.String()}
	}
	fn, ok := table[mech]
	if !ok {
		return nil, &recomb.RunError{Op: "atomic: resolve kernel", Wrapped: recomb.ErrUnknownMechanism, Detail: mech.String()}
	}
	return func(in RateInput) float64 { return fn(p, in) }, nil
}

// hydrogenKernel returns the formula the active model uses for the main
// hydrogen evolution; the post-Saha departure is measured against it.
func (p *Provider) hydrogenKernel() Kernel {
	k, err := p.Kernel(recomb.MechTwoPhoton)
	if err != nil {
		return func(RateInput) float64 { return 0 }
	}
	return k
}
