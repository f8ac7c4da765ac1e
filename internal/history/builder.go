package history

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/recomb/internal/atomic"
	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/integrate"
	"github.com/san-kum/recomb/internal/recomb"
	"github.com/san-kum/recomb/internal/spectrum"
)

// Regime switching thresholds. Calibrated against the fixed grid step; do
// not tune independently.
const (
	xHeIIIMin    = 1e-9 // He III Saha holds until the doubly-ionized remnant drops below this
	dxHeMax      = 5e-4 // He post-Saha departure that forces ODE integration
	dxHSahaMin   = 1e-4 // He ODE runs until xe is this close to the hydrogen Saha value
	zHeODEMin    = 1650.0
	dxHMax       = 5e-5 // H post-Saha departure that forces ODE integration
	dlnTMax      = 5e-4 // steady-state Tm holds while 1-Tm/Tr stays below this
	zTmExplicit  = 700.0
	zPeeblesOnly = 20.0
)

const ctxCheckMask = 0x0fff

// Builder runs the staged recombination integration for one parameter set.
type Builder struct {
	params    *cosmo.Parameters
	prov      *atomic.Provider
	step      *integrate.Multistep
	observers []recomb.Observer
}

func New(params *cosmo.Parameters, prov *atomic.Provider) *Builder {
	return &Builder{
		params: params,
		prov:   prov,
		step:   integrate.NewMultistep(),
	}
}

// AddObserver registers a per-step callback, invoked after every grid index
// is written.
func (b *Builder) AddObserver(o recomb.Observer) {
	b.observers = append(b.observers, o)
}

// Run allocates a history for the parameter grid and builds it.
func (b *Builder) Run(ctx context.Context) (*recomb.History, error) {
	hist := recomb.NewHistory(b.params.NZ, b.params.ZStart, b.params.DLNA)
	if err := b.Build(ctx, hist); err != nil {
		return nil, err
	}
	return hist, nil
}

// local bundles the background quantities every stage evaluates at one
// redshift.
type local struct {
	z, tr, nH, h, inj float64
}

func (b *Builder) at(z float64) local {
	return local{
		z:   z,
		tr:  b.params.TR(z),
		nH:  b.params.NH(z),
		h:   cosmo.HubbleRate(b.params, z),
		inj: cosmo.EnergyInjectionRate(b.params, z),
	}
}

// Build fills a caller-owned history. hist must have exactly the grid
// length derived from the parameters; it is written monotonically, each
// index exactly once.
func (b *Builder) Build(ctx context.Context, hist *recomb.History) error {
	p := b.params
	nz := p.NZ
	if hist.Len() != nz {
		return &recomb.RunError{Op: "history: build", Wrapped: recomb.ErrHistorySize,
			Detail: fmt.Sprintf("have %d, want %d", hist.Len(), nz)}
	}
	if nz <= 4 {
		return &recomb.RunError{Op: "history: build", Wrapped: recomb.ErrGridTooShort,
			Detail: fmt.Sprintf("nz=%d", nz)}
	}

	kHe, err := b.prov.Kernel(recomb.MechHelium)
	if err != nil {
		return err
	}
	kH2G, err := b.prov.Kernel(recomb.MechTwoPhoton)
	if err != nil {
		return err
	}
	kHMLA, err := b.prov.Kernel(recomb.MechSimplified)
	if err != nil {
		return err
	}
	kPeebles, err := b.prov.Kernel(recomb.MechPeebles)
	if err != nil {
		return err
	}

	// Occupation-number arena for the whole grid, sized once. Later stages
	// index into positions written from the helium ODE stage onward.
	buf := spectrum.New(nz)
	st := &recomb.StageState{}

	z := p.ZStart
	iz := 0

	// Stage 1: He III Saha equilibrium. Matter and radiation are tightly
	// coupled; Tm tracks Tr exactly.
	hist.StageStart[recomb.StageHeIIISaha] = 0
	deltaXe := 1.0 // xHeIII
	for ; iz < nz && deltaXe > xHeIIIMin; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		z = p.Z(iz)
		hist.Xe[iz], deltaXe = atomic.SahaHeII(p.NH0, p.T0, p.FHe, z)
		hist.Tm[iz] = p.TR(z)
		b.notify(recomb.StageHeIIISaha, iz, z, hist)
	}
	if iz == nz && deltaXe > xHeIIIMin {
		hist.Warnings = append(hist.Warnings, "He III Saha stage consumed the whole grid")
		return nil
	}

	// Stage 2: He I/II post-Saha. deltaXe is now the departure from the
	// helium Saha value.
	b.enter(hist, recomb.StageHePostSaha, iz)
	deltaXe = 0
	for ; iz < nz && deltaXe < dxHeMax; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		z = p.Z(iz)
		hist.Xe[iz], deltaXe = b.prov.PostSahaHeI(p.NH0, p.T0, p.FHe, cosmo.HubbleRate(p, z), z)
		hist.Tm[iz] = p.TR(z)
		b.notify(recomb.StageHePostSaha, iz, z, hist)
	}
	if iz == nz {
		if deltaXe < dxHeMax {
			hist.Warnings = append(hist.Warnings, "helium post-Saha departure never reached the ODE threshold")
		}
		return nil
	}

	// Stage 3: helium ODE with Tm pinned to the Compton steady state. The
	// spectral history starts accumulating thermal occupation values here.
	b.enter(hist, recomb.StageHeODE, iz)
	b.seedXe(hist, st, iz)
	deltaXe = 1 // departure from the hydrogen Saha value
	for ; iz < nz && (deltaXe > dxHSahaMin || z > zHeODEMin); iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		hist.Xe[iz] = b.xeNext1(kHe, buf, z, hist.Xe[iz-1], iz-1, st)
		z = p.Z(iz)
		bg := b.at(z)
		hist.Tm[iz] = SteadyStateTm(hist.Xe[iz], bg.tr, bg.h, p.FHe, bg.nH*1e-6, bg.inj)
		buf.Update(hist.Xe[iz], kBoltzEv*bg.tr, bg.nH, iz, z, spectrum.Thermal)
		deltaXe = math.Abs(hist.Xe[iz] - atomic.SahaHydrogen(p.NH0, p.T0, z))
		b.notify(recomb.StageHeODE, iz, z, hist)
	}
	if iz == nz {
		if deltaXe > dxHSahaMin || z > zHeODEMin {
			hist.Warnings = append(hist.Warnings, "helium ODE stage consumed the whole grid")
		}
		return nil
	}

	// Stage 4: hydrogen post-Saha. deltaXe is the departure from the
	// hydrogen Saha value; the perturbative solver keeps feeding the
	// spectral history.
	b.enter(hist, recomb.StageHPostSaha, iz)
	deltaXe = 0
	for ; iz < nz && deltaXe < dxHMax; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		z = p.Z(iz)
		bg := b.at(z)
		hist.Xe[iz], deltaXe = b.prov.PostSahaHydrogen(bg.nH, bg.h, kBoltzEv*bg.tr, buf, iz, z, bg.inj)
		hist.Tm[iz] = SteadyStateTm(hist.Xe[iz], bg.tr, bg.h, p.FHe, bg.nH*1e-6, bg.inj)
		b.notify(recomb.StageHPostSaha, iz, z, hist)
	}
	if iz == nz {
		if deltaXe < dxHMax {
			hist.Warnings = append(hist.Warnings, "hydrogen post-Saha departure never reached the ODE threshold")
		}
		return nil
	}

	// Stage 5: two-photon hydrogen ODE, Tm still in steady state. Exits as
	// soon as the steady-state and full Tm evolution depart, or at z=700.
	b.enter(hist, recomb.StageHTwoPhotonSS, iz)
	b.seedXe(hist, st, iz)
	for ; iz < nz && 1-hist.Tm[iz-1]/(p.TR(z)) < dlnTMax && z > zTmExplicit; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		hist.Xe[iz] = b.xeNext1(kH2G, buf, z, hist.Xe[iz-1], iz-1, st)
		z = p.Z(iz)
		bg := b.at(z)
		hist.Tm[iz] = SteadyStateTm(hist.Xe[iz], bg.tr, bg.h, p.FHe, bg.nH*1e-6, bg.inj)
		buf.Update(hist.Xe[iz], kBoltzEv*bg.tr, bg.nH, iz, z, spectrum.Evolved)
		b.notify(recomb.StageHTwoPhotonSS, iz, z, hist)
	}
	if iz == nz {
		return nil
	}

	// Stage 6: two-photon ODE with Tm evolved explicitly. The Tm derivative
	// history is seeded the same way as the xe history: centered finite
	// differences over the steady-state samples already written.
	b.enter(hist, recomb.StageHTwoPhotonTm, iz)
	b.seedTm(hist, st, iz)
	for ; iz < nz && z > zTmExplicit; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		hist.Xe[iz], hist.Tm[iz] = b.xeNext2(kH2G, buf, z, hist.Xe[iz-1], hist.Tm[iz-1], iz-1, st)
		z = p.Z(iz)
		bg := b.at(z)
		buf.Update(hist.Xe[iz], kBoltzEv*bg.tr, bg.nH, iz, z, spectrum.Evolved)
		b.notify(recomb.StageHTwoPhotonTm, iz, z, hist)
	}
	if iz == nz {
		return nil
	}

	// Stage 7: radiative-transfer corrections are negligible now; switch to
	// the simplified multi-level rate.
	b.enter(hist, recomb.StageHSimplifiedTm, iz)
	for ; iz < nz && z > zPeeblesOnly; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		hist.Xe[iz], hist.Tm[iz] = b.xeNext2(kHMLA, nil, z, hist.Xe[iz-1], hist.Tm[iz-1], iz-1, st)
		z = p.Z(iz)
		b.notify(recomb.StageHSimplifiedTm, iz, z, hist)
	}
	if iz == nz {
		return nil
	}

	// Stage 8: below z=20 the residual ionization is tiny and reionization
	// takes over shortly; Peebles is fine.
	b.enter(hist, recomb.StagePeeblesTm, iz)
	for ; iz < nz; iz++ {
		if err := checkCtx(ctx, iz); err != nil {
			return err
		}
		hist.Xe[iz], hist.Tm[iz] = b.xeNext2(kPeebles, nil, z, hist.Xe[iz-1], hist.Tm[iz-1], iz-1, st)
		z = p.Z(iz)
		b.notify(recomb.StagePeeblesTm, iz, z, hist)
	}

	return nil
}

// xeNext1 advances xe one grid step with Tm pinned to the steady state. z1
// is the redshift of the previously written index; izRad the spectral
// history index the kernel may consult.
func (b *Builder) xeNext1(kern atomic.Kernel, buf *spectrum.Buffer, z1, xeIn float64, izRad int, st *recomb.StageState) float64 {
	bg := b.at(z1)
	tm := SteadyStateTm(xeIn, bg.tr, bg.h, b.params.FHe, bg.nH*1e-6, bg.inj)
	dxe := kern(atomic.RateInput{
		Xe:        xeIn,
		NH:        bg.nH,
		H:         bg.h,
		TmEv:      kBoltzEv * tm,
		TrEv:      kBoltzEv * bg.tr,
		FHe:       b.params.FHe,
		Z:         z1,
		Injection: bg.inj,
		Buf:       buf,
		Iz:        izRad,
	})
	out := b.step.Step(xeIn, dxe, st.DxePrev2, b.params.DLNA)
	st.PushXe(z1, dxe)
	return out
}

// xeNext2 advances xe and Tm together one grid step.
func (b *Builder) xeNext2(kern atomic.Kernel, buf *spectrum.Buffer, z1, xeIn, tmIn float64, izRad int, st *recomb.StageState) (xeOut, tmOut float64) {
	bg := b.at(z1)
	dxe := kern(atomic.RateInput{
		Xe:        xeIn,
		NH:        bg.nH,
		H:         bg.h,
		TmEv:      kBoltzEv * tmIn,
		TrEv:      kBoltzEv * bg.tr,
		FHe:       b.params.FHe,
		Z:         z1,
		Injection: bg.inj,
		Buf:       buf,
		Iz:        izRad,
	})
	dtm := TmDerivative(xeIn, tmIn, bg.tr, bg.h, b.params.FHe, bg.nH*1e-6, bg.inj)
	xeOut = b.step.Step(xeIn, dxe, st.DxePrev2, b.params.DLNA)
	tmOut = b.step.Step(tmIn, dtm, st.DTmPrev2, b.params.DLNA)
	st.PushXeTm(z1, dxe, dtm)
	return xeOut, tmOut
}

// seedXe reseeds the lagged xe derivative samples at an ODE-stage entry by
// centered finite differences over the already-written history.
func (b *Builder) seedXe(hist *recomb.History, st *recomb.StageState, iz int) {
	if iz < 4 {
		return
	}
	dlna := b.params.DLNA
	st.ZPrev2 = b.params.Z(iz - 3)
	st.DxePrev2 = (hist.Xe[iz-2] - hist.Xe[iz-4]) / (2 * dlna)
	st.ZPrev = b.params.Z(iz - 2)
	st.DxePrev = (hist.Xe[iz-1] - hist.Xe[iz-3]) / (2 * dlna)
}

// seedTm does the same for the Tm derivative samples when explicit Tm
// evolution begins.
func (b *Builder) seedTm(hist *recomb.History, st *recomb.StageState, iz int) {
	if iz < 4 {
		return
	}
	dlna := b.params.DLNA
	st.DTmPrev2 = (hist.Tm[iz-2] - hist.Tm[iz-4]) / (2 * dlna)
	st.DTmPrev = (hist.Tm[iz-1] - hist.Tm[iz-3]) / (2 * dlna)
}

func (b *Builder) enter(hist *recomb.History, s recomb.Stage, iz int) {
	if iz < hist.Len() {
		hist.StageStart[s] = iz
	}
}

func (b *Builder) notify(stage recomb.Stage, iz int, z float64, hist *recomb.History) {
	for _, o := range b.observers {
		o.OnStep(stage, iz, z, hist.Xe[iz], hist.Tm[iz])
	}
}

func checkCtx(ctx context.Context, iz int) error {
	if iz&ctxCheckMask != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
