package cosmo

import "math"

// Conversion from the summed density parameters to an expansion rate in s^-1.
const hubbleConv = 3.2407792896393e-18

// Photon density coefficient per T0^4; based on 1 AU = 1.49597870691e11 m.
const photonCoeff = 4.48162687719e-7

// Ratio of the energy density of one neutrino species to the photon density,
// assuming the standard lower neutrino temperature.
const nuPhotonRatio = 0.227107317660239

// HubbleRate returns the expansion rate H(z) in s^-1, summing matter,
// curvature, CPL dark energy, photon and neutrino densities at a = 1/(1+z).
func HubbleRate(p *Parameters, z float64) float64 {
	ainv := 1 + z

	rhoM := p.OMh2 * ainv * ainv * ainv
	rhoK := p.OKh2 * ainv * ainv
	rhoDE := p.ODEh2 * math.Pow(ainv, 3*(1+p.W0)) * math.Exp(3*p.WA*(math.Log(ainv)-1+1/ainv))

	ogh2 := photonCoeff * p.T0 * p.T0 * p.T0 * p.T0
	rhoG := ogh2 * ainv * ainv * ainv * ainv
	rhoNu := nuPhotonRatio * rhoG * p.NNuEff

	return hubbleConv * math.Sqrt(rhoM+rhoK+rhoDE+rhoG+rhoNu)
}
