package cosmo

import "math"

// ln^2(1001/2501): the annihilation efficiency shape is normalized so the
// three redshift branches join continuously.
const annShapeNorm = 0.838490285049671

// Decay-channel coefficient, (0.71e5/Mpc)^2 * 3c^2/(8 pi G) * Omega_cdm.
const decayCoeff = 1.932e-10

const annCoeff = 4.827652e-18

// EnergyInjectionRate returns the volumetric heating/ionization rate from
// dark-matter annihilation and decay at redshift z. The annihilation
// efficiency p(z) is constant above z=2500, log-squared shaped down to z=30,
// and frozen at its z=30 value below; the branches are continuous.
func EnergyInjectionRate(p *Parameters, z float64) float64 {
	var pAnn float64
	switch {
	case z > 2500:
		pAnn = p.PAnn * math.Exp(-p.Alpha*annShapeNorm)
	case z > 30:
		l := math.Log((1 + z) / 2501)
		pAnn = p.PAnn * math.Exp(p.Alpha*(l*l-annShapeNorm))
	default:
		l := math.Log(31.0 / 2501)
		pAnn = p.PAnn * math.Exp(p.Alpha*(l*l-annShapeNorm))
	}

	ainv := 1 + z
	ann := p.OMh2 * annCoeff
	return ann*ann*math.Pow(ainv, 6)*pAnn + decayCoeff*ainv*ainv*ainv*p.PDec
}
