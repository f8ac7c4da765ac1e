package atomic

import "math"

// Physical constants. SI unless noted; energies in eV where the kernels use
// them directly.
const (
	kBoltz   = 1.3806503e-23  // J/K
	kBoltzEv = 8.617343e-5    // eV/K
	evJoule  = 1.60217653e-19 // J/eV
	mElec    = 9.10938215e-31 // kg
	hPlanck  = 6.62606896e-34 // J s

	// Hydrogen level energies [eV].
	eIonH  = 13.598286071938324 // ionization from 1s
	e21H   = 10.198714553953742 // Lyman-alpha
	e2sIon = eIonH - e21H       // ionization from n=2

	lambdaLyA = 1.21567e-7 // m
	lambda2s  = 8.2245809  // 2s->1s two-photon rate, s^-1

	// Helium [eV].
	chiHeII  = 54.417760 // He+ ionization
	chiHeI   = 24.587387 // He ionization
	eHe21    = 20.616    // He I 2s excitation
	heI2sIon = chiHeI - eHe21

	lambdaHe21  = 5.84334e-8 // m
	lambdaHe2s2 = 51.3       // He 2s->1s two-photon rate, s^-1
	aHe21       = 1.798287e9 // He I 2^1P -> 1^1S Einstein coefficient, s^-1

	// Hydrogen photoionization cross section at the He I 2^1P line
	// frequency [m^2].
	sigmaHAtHe21 = 1.436289e-22

	cLight   = 2.99792458e8 // m/s
	heMassEv = 3.7284e9     // helium-4 rest mass energy [eV]
)

// boltzFactor is (2 pi m_e k_B / h^2)^{3/2}, so that
// boltzFactor * T^{3/2} is the electron partition density in m^-3.
var boltzFactor = math.Pow(2*math.Pi*mElec*kBoltz/(hPlanck*hPlanck), 1.5)

// partitionDensity returns (2 pi m_e k_B T / h^2)^{3/2} in m^-3 for a
// temperature in Kelvin.
func partitionDensity(tK float64) float64 {
	return boltzFactor * tK * math.Sqrt(tK)
}

// partitionDensityEv is partitionDensity for a temperature in eV.
func partitionDensityEv(tEv float64) float64 {
	return partitionDensity(tEv / kBoltzEv)
}
