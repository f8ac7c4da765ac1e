package cosmo

import (
	"fmt"
	"math"

	"github.com/san-kum/recomb/internal/recomb"
)

// Fixed redshift grid. The step is calibrated jointly with the multistep
// integration coefficients; neither may change independently.
const (
	ZStart = 8000.0
	ZEnd   = 0.0
	DLNA   = 8.49e-5
)

// Input carries the physical scalars a Parameters value is built from.
type Input struct {
	T0     float64 // CMB temperature today [K]
	OBh2   float64 // baryon density, omega_b h^2
	OMh2   float64 // total matter density, omega_m h^2
	OKh2   float64 // curvature, omega_k h^2
	ODEh2  float64 // dark energy density, omega_de h^2
	W0, WA float64 // dark energy equation of state (CPL)
	YHe    float64 // primordial helium mass fraction
	NNuEff float64 // effective number of neutrino species

	PAnn  float64 // dark matter annihilation efficiency
	PDec  float64 // dark matter decay rate parameter
	Alpha float64 // redshift-shape parameter of the annihilation efficiency
}

// Parameters is the immutable physical configuration of a run. Construct it
// with [New]; treat every field as read-only afterwards.
type Parameters struct {
	Input

	NH0 float64 // hydrogen number density today [m^-3]
	FHe float64 // helium-to-hydrogen number ratio

	ZStart, ZEnd float64
	DLNA         float64
	NZ           int
}

// New derives the grid and number densities from the physical scalars,
// rejecting unphysical input.
func New(in Input) (*Parameters, error) {
	if in.T0 <= 0 {
		return nil, paramErr("T0", in.T0, "must be positive")
	}
	if in.OBh2 < 0 || in.OMh2 < 0 || in.OKh2 < 0 || in.ODEh2 < 0 {
		lo := math.Min(math.Min(in.OBh2, in.OKh2), math.Min(in.OMh2, in.ODEh2))
		return nil, paramErr("density", lo, "density parameters must be non-negative")
	}
	if in.YHe < 0 || in.YHe >= 1 {
		return nil, paramErr("YHe", in.YHe, "must lie in [0,1)")
	}
	if in.NNuEff < 0 {
		return nil, paramErr("NNuEff", in.NNuEff, "must be non-negative")
	}
	if in.OBh2 > in.OMh2 {
		return nil, paramErr("OBh2", in.OBh2, "baryons cannot exceed total matter")
	}

	p := &Parameters{
		Input:  in,
		NH0:    11.223846333047 * in.OBh2 * (1 - in.YHe),
		FHe:    in.YHe / (1 - in.YHe) / 3.97153,
		ZStart: ZStart,
		ZEnd:   ZEnd,
		DLNA:   DLNA,
	}
	p.NZ = 2 + int(math.Ceil(math.Log((1+p.ZStart)/(1+p.ZEnd))/p.DLNA))
	if p.NZ <= 4 {
		return nil, &recomb.RunError{Op: "cosmo: derive grid", Wrapped: recomb.ErrGridTooShort,
			Detail: fmt.Sprintf("nz=%d", p.NZ)}
	}
	return p, nil
}

func paramErr(field string, v float64, msg string) error {
	return &recomb.RunError{
		Op:      "cosmo: validate parameters",
		Wrapped: recomb.ErrInvalidParams,
		Detail:  fmt.Sprintf("%s=%g %s", field, v, msg),
	}
}

// Z returns the redshift of grid index i.
func (p *Parameters) Z(i int) float64 {
	return (1+p.ZStart)*math.Exp(-p.DLNA*float64(i)) - 1
}

// NH returns the hydrogen number density at redshift z [m^-3].
func (p *Parameters) NH(z float64) float64 {
	ainv := 1 + z
	return p.NH0 * ainv * ainv * ainv
}

// TR returns the radiation temperature at redshift z [K].
func (p *Parameters) TR(z float64) float64 { return p.T0 * (1 + z) }
