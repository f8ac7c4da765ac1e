// Package spectrum tracks the photon occupation number history used by the
// two-photon and post-Saha hydrogen corrections.
//
// The buffer stores ln f^- per (virtual frequency bin, grid index), plus
// separate rows for the Lyman alpha, beta and gamma lines. It is sized once
// for the whole grid before integration starts and never grows: late stages
// read arbitrary earlier grid positions written from the helium ODE stage
// onward.
package spectrum

import "math"

// NVirt is the number of virtual frequency bins between Lyman-alpha and the
// Lyman limit.
const NVirt = 311

// Lyman line indices.
const (
	LyAlpha = iota
	LyBeta
	LyGamma
	numLines
)

// Line energies in eV.
var lineEv = [numLines]float64{
	10.198714553953742,           // Ly-alpha, n=2
	10.198714553953742 * 32 / 27, // Ly-beta, n=3
	10.198714553953742 * 5 / 4,   // Ly-gamma, n=4
}

const lymanLimitEv = 13.598286071938324

// Mode selects how Update fills grid index iz.
type Mode int

const (
	// Thermal seeds the occupation numbers with blackbody values.
	Thermal Mode = iota
	// Evolved carries the previously stored occupation forward, so the
	// accumulated distortion relative to the local blackbody survives
	// redshifting.
	Evolved
)

// Buffer is the whole-grid occupation-number arena. Writes are append-only
// in the grid index.
type Buffer struct {
	virt   [NVirt][]float64
	ly     [numLines][]float64
	binEv  [NVirt]float64
	nz     int
	filled int
}

// New allocates a buffer for nz grid points.
func New(nz int) *Buffer {
	b := &Buffer{nz: nz}
	for k := range b.virt {
		b.virt[k] = make([]float64, nz)
	}
	for l := range b.ly {
		b.ly[l] = make([]float64, nz)
	}
	// Geometric bin energies spanning Ly-alpha up to the Lyman limit.
	ratio := lymanLimitEv / lineEv[LyAlpha]
	for k := range b.binEv {
		frac := float64(k) / float64(NVirt-1)
		b.binEv[k] = lineEv[LyAlpha] * math.Pow(ratio, frac)
	}
	return b
}

// Len returns the grid capacity.
func (b *Buffer) Len() int { return b.nz }

// Filled returns the number of grid indices written so far.
func (b *Buffer) Filled() int { return b.filled }

// Update appends occupation values at grid index iz. trEv is the radiation
// temperature in eV; xe and nH describe the local plasma state.
func (b *Buffer) Update(xe, trEv, nH float64, iz int, z float64, mode Mode) {
	if iz < 0 || iz >= b.nz {
		return
	}
	switch mode {
	case Thermal:
		for k := range b.virt {
			b.virt[k][iz] = -b.binEv[k] / trEv
		}
		for l := range b.ly {
			b.ly[l][iz] = -lineEv[l] / trEv
		}
	case Evolved:
		if iz == 0 || b.filled == 0 {
			b.Update(xe, trEv, nH, iz, z, Thermal)
			break
		}
		for k := range b.virt {
			b.virt[k][iz] = b.virt[k][iz-1]
		}
		for l := range b.ly {
			b.ly[l][iz] = b.ly[l][iz-1]
		}
	}
	if iz >= b.filled {
		b.filled = iz + 1
	}
}

// LyValue returns the stored ln f^- of the given Lyman line at grid index iz.
func (b *Buffer) LyValue(line, iz int) float64 {
	if line < 0 || line >= numLines || iz < 0 || iz >= b.filled {
		return 0
	}
	return b.ly[line][iz]
}

// LyDeficit returns the stored distortion of a Lyman line at grid index iz
// relative to a blackbody at trEv: ln f^- - ln f^-_thermal. Zero when the
// index has not been written.
func (b *Buffer) LyDeficit(line, iz int, trEv float64) float64 {
	if line < 0 || line >= numLines || iz < 0 || iz >= b.filled {
		return 0
	}
	return b.ly[line][iz] - (-lineEv[line] / trEv)
}

// LineEv returns the energy of a Lyman line in eV.
func LineEv(line int) float64 {
	if line < 0 || line >= numLines {
		return 0
	}
	return lineEv[line]
}
