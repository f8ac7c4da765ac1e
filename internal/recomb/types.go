package recomb

import "math"

// Model selects the atomic-physics treatment used for hydrogen. It is a
// runtime configuration value; every model resolves each [Mechanism] to a
// concrete rate formula through the atomic dispatch table.
type Model int

const (
	// ModelFull blends helium evolution with two-photon corrected hydrogen
	// recombination. This is the default.
	ModelFull Model = iota
	ModelPeebles
	ModelRecFast
	ModelEMLA
)

func (m Model) String() string {
	switch m {
	case ModelFull:
		return "full"
	case ModelPeebles:
		return "peebles"
	case ModelRecFast:
		return "recfast"
	case ModelEMLA:
		return "emla"
	}
	return "unknown"
}

// ParseModel maps a configuration string to a Model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "", "full":
		return ModelFull, nil
	case "peebles":
		return ModelPeebles, nil
	case "recfast":
		return ModelRecFast, nil
	case "emla":
		return ModelEMLA, nil
	}
	return ModelFull, &RunError{Op: "parse model", Wrapped: ErrUnknownModel, Detail: s}
}

// Mechanism is the ionization channel requested for a single rate call.
// The stage machine passes it explicitly per stage.
type Mechanism int

const (
	MechHelium Mechanism = iota
	MechTwoPhoton
	MechSimplified
	MechPeebles
)

func (m Mechanism) String() string {
	switch m {
	case MechHelium:
		return "helium"
	case MechTwoPhoton:
		return "two-photon"
	case MechSimplified:
		return "simplified"
	case MechPeebles:
		return "peebles"
	}
	return "unknown"
}

// Stage identifies one of the eight physical regimes walked by the stage
// machine, in order. Stages never repeat within a run.
type Stage int

const (
	StageHeIIISaha Stage = iota
	StageHePostSaha
	StageHeODE
	StageHPostSaha
	StageHTwoPhotonSS
	StageHTwoPhotonTm
	StageHSimplifiedTm
	StagePeeblesTm
	numStages
)

var stageNames = [numStages]string{
	"He III Saha",
	"He I/II post-Saha",
	"He ODE",
	"H post-Saha",
	"H two-photon (steady Tm)",
	"H two-photon (explicit Tm)",
	"H simplified (explicit Tm)",
	"low-z Peebles",
}

func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return "unknown"
	}
	return stageNames[s]
}

// NumStages is the number of regimes in a complete run.
const NumStages = int(numStages)

// StageState carries the lagged derivative samples the multistep scheme
// needs: the two previous (z, dxe/dlna) pairs, and once the matter
// temperature evolves explicitly, the two previous dTm/dlna samples. It is
// owned by a single build and reseeded at every regime boundary.
type StageState struct {
	ZPrev, ZPrev2     float64
	DxePrev, DxePrev2 float64
	DTmPrev, DTmPrev2 float64
}

// PushXe records the derivative sample taken at redshift z, discarding the
// oldest one.
func (st *StageState) PushXe(z, dxedlna float64) {
	st.ZPrev2 = st.ZPrev
	st.DxePrev2 = st.DxePrev
	st.ZPrev = z
	st.DxePrev = dxedlna
}

// PushXeTm records simultaneous xe and Tm derivative samples at redshift z.
func (st *StageState) PushXeTm(z, dxedlna, dtmdlna float64) {
	st.ZPrev2 = st.ZPrev
	st.DxePrev2 = st.DxePrev
	st.DTmPrev2 = st.DTmPrev
	st.ZPrev = z
	st.DxePrev = dxedlna
	st.DTmPrev = dtmdlna
}

// History holds the computed ionization history on the uniform
// log-scale-factor grid. Index i corresponds to
// z(i) = (1+zstart)·exp(−dlna·i) − 1, strictly decreasing in i.
type History struct {
	Xe []float64
	Tm []float64

	ZStart float64
	DLNA   float64

	// StageStart[s] is the grid index at which stage s took over; −1 if the
	// stage was skipped (grid exhausted earlier).
	StageStart [NumStages]int

	// Warnings collects non-fatal anomalies: stages whose physical exit
	// criterion was never met before the grid ran out.
	Warnings []string
}

// NewHistory allocates a history for nz grid points.
func NewHistory(nz int, zstart, dlna float64) *History {
	h := &History{
		Xe:     make([]float64, nz),
		Tm:     make([]float64, nz),
		ZStart: zstart,
		DLNA:   dlna,
	}
	for i := range h.StageStart {
		h.StageStart[i] = -1
	}
	return h
}

// Len returns the grid length.
func (h *History) Len() int { return len(h.Xe) }

// Z returns the redshift of grid index i.
func (h *History) Z(i int) float64 {
	return (1+h.ZStart)*math.Exp(-h.DLNA*float64(i)) - 1
}

// index returns the fractional grid position of redshift z.
func (h *History) index(z float64) float64 {
	return math.Log((1+h.ZStart)/(1+z)) / h.DLNA
}

// XeAt returns the free-electron fraction at an arbitrary redshift,
// interpolating linearly in log scale factor between grid samples.
func (h *History) XeAt(z float64) float64 { return h.interp(h.Xe, z) }

// TmAt returns the matter temperature at an arbitrary redshift.
func (h *History) TmAt(z float64) float64 { return h.interp(h.Tm, z) }

func (h *History) interp(arr []float64, z float64) float64 {
	x := h.index(z)
	if x <= 0 {
		return arr[0]
	}
	n := len(arr)
	if x >= float64(n-1) {
		return arr[n-1]
	}
	i := int(x)
	frac := x - float64(i)
	return arr[i]*(1-frac) + arr[i+1]*frac
}

// IsFinite reports whether every sample in the history is a finite number.
func (h *History) IsFinite() bool {
	for i := range h.Xe {
		if math.IsNaN(h.Xe[i]) || math.IsInf(h.Xe[i], 0) {
			return false
		}
		if math.IsNaN(h.Tm[i]) || math.IsInf(h.Tm[i], 0) {
			return false
		}
	}
	return true
}

// Observer receives a callback after every grid step of a build.
type Observer interface {
	OnStep(stage Stage, iz int, z, xe, tm float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(stage Stage, iz int, z, xe, tm float64)

func (f ObserverFunc) OnStep(stage Stage, iz int, z, xe, tm float64) {
	f(stage, iz, z, xe, tm)
}
