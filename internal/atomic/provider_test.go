package atomic

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/recomb/internal/recomb"
)

func TestKernelDispatch(t *testing.T) {
	models := []recomb.Model{recomb.ModelFull, recomb.ModelPeebles, recomb.ModelRecFast, recomb.ModelEMLA}
	mechs := []recomb.Mechanism{recomb.MechHelium, recomb.MechTwoPhoton, recomb.MechSimplified, recomb.MechPeebles}

	for _, m := range models {
		p := NewProvider(m)
		for _, mech := range mechs {
			if _, err := p.Kernel(mech); err != nil {
				t.Errorf("model %v mechanism %v: %v", m, mech, err)
			}
		}
	}
}

func TestKernelDispatchRejectsUnknown(t *testing.T) {
	p := NewProvider(recomb.Model(99))
	if _, err := p.Kernel(recomb.MechPeebles); !errors.Is(err, recomb.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}

	p = NewProvider(recomb.ModelFull)
	if _, err := p.Kernel(recomb.Mechanism(99)); !errors.Is(err, recomb.ErrUnknownMechanism) {
		t.Errorf("expected ErrUnknownMechanism, got %v", err)
	}
}

// recombInput is a mid-recombination plasma state: xe well above its Saha
// value, so every hydrogen kernel must drive it down.
func recombInput() RateInput {
	const z = 1200.0
	trEv := kBoltzEv * testT0 * (1 + z)
	return RateInput{
		Xe:   0.9,
		NH:   testNH0 * (1 + z) * (1 + z) * (1 + z),
		H:    6e-14,
		TmEv: trEv,
		TrEv: trEv,
		FHe:  testFHe,
		Z:    z,
	}
}

func TestHydrogenKernelsRecombine(t *testing.T) {
	in := recombInput()
	tests := []struct {
		name string
		k    func(RateInput) float64
	}{
		{"peebles", peeblesRate},
		{"recfast", recFastRate},
		{"mla", mlaRate},
		{"two-photon", twoPhotonRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rate := tt.k(in); rate >= 0 {
				t.Errorf("dxe/dlna = %g, want negative above Saha equilibrium", rate)
			}
		})
	}
}

// The fudged RecFast coefficient is 14 percent larger than the plain
// multi-level fit, so it must recombine faster.
func TestRecFastFudge(t *testing.T) {
	in := recombInput()
	if rf, ml := recFastRate(in), mlaRate(in); rf >= ml {
		t.Errorf("recfast rate %g not below mla rate %g", rf, ml)
	}
}

// Without a spectral buffer the two-photon kernel reduces to the plain
// multi-level rate.
func TestTwoPhotonWithoutBuffer(t *testing.T) {
	in := recombInput()
	if tp, ml := twoPhotonRate(in), mlaRate(in); tp != ml {
		t.Errorf("two-photon without buffer = %g, want mla %g", tp, ml)
	}
}

// The net hydrogen rate changes sign across the Saha equilibrium point.
func TestHydrogenEquilibriumCrossing(t *testing.T) {
	const z = 1300.0
	trEv := kBoltzEv * testT0 * (1 + z)
	nH := testNH0 * (1 + z) * (1 + z) * (1 + z)
	xs := sahaXeLocal(nH, trEv)

	in := RateInput{NH: nH, H: 7e-14, TmEv: trEv, TrEv: trEv, Z: z}

	in.Xe = xs * 1.05
	above := mlaRate(in)
	in.Xe = xs * 0.95
	below := mlaRate(in)

	if above >= 0 {
		t.Errorf("rate above equilibrium = %g, want negative", above)
	}
	if below <= 0 {
		t.Errorf("rate below equilibrium = %g, want positive", below)
	}
}

func TestHeliumRateDirections(t *testing.T) {
	// mid helium recombination: singly ionized helium must decay
	const z = 2200.0
	trEv := kBoltzEv * testT0 * (1 + z)
	in := RateInput{
		Xe:   1 + testFHe/2,
		NH:   testNH0 * (1 + z) * (1 + z) * (1 + z),
		H:    1.65e-13,
		TmEv: trEv,
		TrEv: trEv,
		FHe:  testFHe,
		Z:    z,
	}
	if rate := heliumRate(in); rate >= 0 {
		t.Errorf("helium-era rate = %g, want negative", rate)
	}
}

// Once helium is exhausted the helium-era kernel reduces to the hydrogen
// Saha drift, which keeps xe on the equilibrium track.
func TestHeliumRateHydrogenDrift(t *testing.T) {
	const z = 1660.0
	trEv := kBoltzEv * testT0 * (1 + z)
	nH := testNH0 * (1 + z) * (1 + z) * (1 + z)
	s := sahaRatioH(trEv, nH)
	xe := quadPos(s, s) // hydrogen Saha solution, no helium left

	in := RateInput{Xe: xe, NH: nH, H: 1e-13, TmEv: trEv, TrEv: trEv, FHe: testFHe, Z: z}
	rate := heliumRate(in)
	if rate >= 0 {
		t.Errorf("drift = %g, want negative while the Saha ratio falls", rate)
	}
	if math.Abs(rate) > 1 {
		t.Errorf("drift = %g, implausibly fast", rate)
	}
}

// A residual of singly ionized helium near the hydrogen handoff decays
// within a small fraction of an expansion e-fold: continuum absorption by
// neutral hydrogen keeps the 2^1P channel open once the plasma turns
// neutral. Without that channel the residual straggles past z=1650.
func TestHeliumRelaxationNearHandoff(t *testing.T) {
	const z = 1800.0
	trEv := kBoltzEv * testT0 * (1 + z)
	nH := testNH0 * (1 + z) * (1 + z) * (1 + z)
	s := sahaRatioH(trEv, nH)
	xs := quadPos(s, s)

	in := RateInput{Xe: xs, NH: nH, H: 1.13e-13, TmEv: trEv, TrEv: trEv, FHe: testFHe, Z: z}
	base := heliumRate(in)

	const resid = 1e-3
	in.Xe = xs + resid
	slope := (heliumRate(in) - base) / resid
	if slope > -20 {
		t.Errorf("relaxation slope = %g per e-fold, want below -20", slope)
	}
}

func TestInjectionIonization(t *testing.T) {
	in := recombInput()
	if got := injectionIonization(in); got != 0 {
		t.Errorf("no injection but ionization term = %g", got)
	}
	in.Injection = 1e-30
	pos := injectionIonization(in)
	if pos <= 0 {
		t.Errorf("ionization term = %g, want positive", pos)
	}
	// fully ionized plasma absorbs nothing into ionization
	in.Xe = 1
	if got := injectionIonization(in); got != 0 {
		t.Errorf("xe=1 but ionization term = %g", got)
	}
}
