package atomic

import (
	"math"

	"github.com/san-kum/recomb/internal/spectrum"
)

// quadPos returns the positive root of x^2 + b*x - c = 0 for b, c >= 0,
// in the cancellation-free form.
func quadPos(b, c float64) float64 {
	if c == 0 {
		return 0
	}
	return 2 * c / (b + math.Sqrt(b*b+4*c))
}

// SahaHydrogen returns the equilibrium free-electron fraction of hydrogen
// alone, from detailed balance at the radiation temperature T0*(1+z).
func SahaHydrogen(nH0, t0, z float64) float64 {
	ainv := 1 + z
	tK := t0 * ainv
	nH := nH0 * ainv * ainv * ainv
	s := partitionDensity(tK) * math.Exp(-eIonH/(kBoltzEv*tK)) / nH
	// xe^2/(1-xe) = s
	return quadPos(s, s)
}

// SahaHeII returns the full free-electron fraction during the He III -> He II
// transition, assuming hydrogen and the first helium electron stay fully
// ionized, together with the remaining doubly-ionized fraction xHeIII.
func SahaHeII(nH0, t0, fHe, z float64) (xe, xHeIII float64) {
	ainv := 1 + z
	tK := t0 * ainv
	nH := nH0 * ainv * ainv * ainv
	r := partitionDensity(tK) * math.Exp(-chiHeII/(kBoltzEv*tK)) / nH
	// (1+fHe+x)*x = r*(fHe-x)
	x := quadPos(1+fHe+r, r*fHe)
	return 1 + fHe + x, x
}

// sahaHeI returns the equilibrium singly-ionized helium fraction xHeII
// (relative to hydrogen) with hydrogen fully ionized.
func sahaHeI(nH0, t0, fHe, z float64) float64 {
	ainv := 1 + z
	tK := t0 * ainv
	nH := nH0 * ainv * ainv * ainv
	// statistical weight ratio g_e*g_HeII/g_HeI = 4
	r := 4 * partitionDensity(tK) * math.Exp(-chiHeI/(kBoltzEv*tK)) / nH
	// (1+x)*x = r*(fHe-x)
	return quadPos(1+r, r*fHe)
}

// lnaOffset moves a redshift by delta in log scale factor.
func lnaOffset(z, delta float64) float64 {
	return (1+z)*math.Exp(-delta) - 1
}

// PostSahaHeI returns the helium-era electron fraction with the first-order
// departure from Saha equilibrium: xe = xe_Saha + dxe, where
// dxe = (dxe_Saha/dlna - f(xe_Saha)) / f'(xe_Saha) and f is the helium rate
// kernel. The departure dxe drives the regime switch out of the post-Saha
// stage.
func (p *Provider) PostSahaHeI(nH0, t0, fHe, hubble, z float64) (xe, dxe float64) {
	xs := 1 + sahaHeI(nH0, t0, fHe, z)

	const dl = 1e-3
	xPlus := 1 + sahaHeI(nH0, t0, fHe, lnaOffset(z, dl))
	xMinus := 1 + sahaHeI(nH0, t0, fHe, lnaOffset(z, -dl))
	dxsdlna := (xPlus - xMinus) / (2 * dl)

	trEv := kBoltzEv * t0 * (1 + z)
	in := RateInput{
		Xe:   xs,
		NH:   nH0 * (1 + z) * (1 + z) * (1 + z),
		H:    hubble,
		TmEv: trEv,
		TrEv: trEv,
		FHe:  fHe,
		Z:    z,
	}
	slope := p.rateSlope(heliumRate, in)
	if slope == 0 {
		return xs, 0
	}
	dxe = (dxsdlna - heliumRate(in)) / slope
	return xs + dxe, dxe
}

// PostSahaHydrogen returns the hydrogen-era electron fraction with the
// first-order post-Saha correction, computed from the local plasma state.
// It seeds the spectral buffer at grid index iz with thermal occupation
// values, as the ODE stages expect on entry.
func (p *Provider) PostSahaHydrogen(nH, hubble, trEv float64, buf *spectrum.Buffer, iz int, z, injection float64) (xe, dxe float64) {
	xs := sahaXeLocal(nH, trEv)

	const dl = 1e-3
	xPlus := sahaXeLocal(nH*math.Exp(-3*dl), trEv*math.Exp(-dl))
	xMinus := sahaXeLocal(nH*math.Exp(3*dl), trEv*math.Exp(dl))
	dxsdlna := (xPlus - xMinus) / (2 * dl)

	in := RateInput{
		Xe:        xs,
		NH:        nH,
		H:         hubble,
		TmEv:      trEv,
		TrEv:      trEv,
		Z:         z,
		Injection: injection,
		Buf:       buf,
		Iz:        iz,
	}
	if buf != nil {
		buf.Update(xs, trEv, nH, iz, z, spectrum.Thermal)
	}
	k := p.hydrogenKernel()
	slope := p.rateSlope(k, in)
	if slope == 0 {
		return xs, 0
	}
	dxe = (dxsdlna - k(in)) / slope
	return xs + dxe, dxe
}

// sahaXeLocal solves the hydrogen Saha equation from the local density and
// radiation temperature (eV).
func sahaXeLocal(nH, trEv float64) float64 {
	s := partitionDensityEv(trEv) * math.Exp(-eIonH/trEv) / nH
	return quadPos(s, s)
}

// rateSlope estimates d(dxe/dlna)/dxe of a kernel at the given state by a
// centered difference.
func (p *Provider) rateSlope(k Kernel, in RateInput) float64 {
	const eps = 1e-6
	plus, minus := in, in
	plus.Xe += eps
	minus.Xe -= eps
	return (k(plus) - k(minus)) / (2 * eps)
}
