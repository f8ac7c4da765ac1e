// Package analysis computes post-run diagnostics of a recombination
// history: the downstream numbers the xe and Tm arrays feed.
package analysis

import (
	"math"

	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/recomb"
)

const (
	sigmaThomson = 6.6524616e-29 // m^2
	cLight       = 2.99792458e8  // m/s
)

// ThomsonOpticalDepth integrates d tau/dlna = sigma_T n_e c / H from z=0
// back to zMax over the history grid.
func ThomsonOpticalDepth(p *cosmo.Parameters, hist *recomb.History, zMax float64) float64 {
	tau := 0.0
	prev := 0.0
	first := true
	// walk from low z (end of grid) toward zMax
	for i := hist.Len() - 1; i >= 0; i-- {
		z := hist.Z(i)
		if z > zMax {
			break
		}
		ne := p.NH(z) * hist.Xe[i]
		integrand := sigmaThomson * cLight * ne / cosmo.HubbleRate(p, z)
		if !first {
			tau += 0.5 * (integrand + prev) * hist.DLNA
		}
		prev = integrand
		first = false
	}
	return tau
}

// RecombinationRedshift returns the redshift at which xe first drops
// through the given level (0.5 for the conventional mid-transition), or NaN
// if the history never crosses it.
func RecombinationRedshift(hist *recomb.History, level float64) float64 {
	for i := 1; i < hist.Len(); i++ {
		if hist.Xe[i] <= level && hist.Xe[i-1] > level {
			// interpolate in grid position
			frac := (hist.Xe[i-1] - level) / (hist.Xe[i-1] - hist.Xe[i])
			zHi := hist.Z(i - 1)
			zLo := hist.Z(i)
			return zHi + frac*(zLo-zHi)
		}
	}
	return math.NaN()
}

// FreezeOut returns the residual ionization fraction at the end of the
// grid.
func FreezeOut(hist *recomb.History) float64 {
	return hist.Xe[hist.Len()-1]
}

// Summary bundles the standard diagnostics of one run.
type Summary struct {
	ZRecombination float64 `json:"z_recombination"`
	TauToZ1100     float64 `json:"tau_z1100"`
	FreezeOutXe    float64 `json:"freeze_out_xe"`
	TmFinal        float64 `json:"tm_final"`
}

// Summarize computes the standard diagnostics for a history.
func Summarize(p *cosmo.Parameters, hist *recomb.History) Summary {
	return Summary{
		ZRecombination: RecombinationRedshift(hist, 0.5),
		TauToZ1100:     ThomsonOpticalDepth(p, hist, 1100),
		FreezeOutXe:    FreezeOut(hist),
		TmFinal:        hist.Tm[hist.Len()-1],
	}
}
