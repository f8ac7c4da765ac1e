package history

// Compton coupling coefficient, 8 sigma_T a_r / (3 m_e c), per K^4 s.
const comptonCoeff = 4.91466895548409e-22

const (
	kBoltz   = 1.3806503e-23 // J/K
	kBoltzEv = 8.617343e-5   // eV/K
)

// SteadyStateTm is the first-order steady-state matter temperature: the
// radiation temperature reduced by the ratio of the Compton to Hubble
// timescales, plus the exotic-heating correction. Valid while Compton
// coupling dominates, i.e. until the stage-5 exit threshold. nHcm3 is the
// hydrogen density in cm^-3.
func SteadyStateTm(xe, tr, hubble, fHe, nHcm3, injection float64) float64 {
	tr4 := tr * tr * tr * tr
	tm := tr / (1 + hubble/(comptonCoeff*tr4)*(1+xe+fHe)/xe)
	if injection != 0 {
		tm += 1 / (comptonCoeff * tr4 * xe) * 2 / (3 * kBoltz) * (1 + 2*xe) / (3 * nHcm3 * 1e6) * injection
	}
	return tm
}

// TmDerivative is dTm/dlna: adiabatic cooling, Compton heating toward the
// radiation temperature, and exotic energy deposition.
func TmDerivative(xe, tm, tr, hubble, fHe, nHcm3, injection float64) float64 {
	tr4 := tr * tr * tr * tr
	d := -2*tm + comptonCoeff*tr4*xe/(1+xe+fHe)*(tr-tm)/hubble
	if injection != 0 {
		d += 2 / (3 * kBoltz) * (1 + 2*xe) / (3 * nHcm3 * 1e6) * injection / (1 + xe + fHe) / hubble
	}
	return d
}
