package atomic

import "math"

// Verner & Ferland fit parameters for He I Case-B recombination.
const (
	heQ  = 1.8029e-17 // 10^-16.744, m^3/s
	heP  = 0.711
	heT1 = 1.3002e5 // 10^5.114, K
	heT2 = 3.0
)

func caseBHelium(tmEv float64) float64 {
	tK := tmEv / kBoltzEv
	s2 := math.Sqrt(tK / heT2)
	s1 := math.Sqrt(tK / heT1)
	return heQ / (s2 * math.Pow(1+s2, 1-heP) * math.Pow(1+s1, 1+heP))
}

// sahaRatioH is the hydrogen Saha ratio s = n_e n_p / (n_H1s nH), from the
// radiation temperature in eV and nH in m^-3.
func sahaRatioH(trEv, nH float64) float64 {
	return partitionDensityEv(trEv) * math.Exp(-eIonH/trEv) / nH
}

// hSahaFraction returns the ionized hydrogen fraction in Saha equilibrium
// given the total free-electron fraction xe:
// xHII * xe / (1 - xHII) = s  =>  xHII = s / (s + xe).
func hSahaFraction(s, xe float64) float64 {
	return s / (s + xe)
}

// heContinuumEscape is the rate per excited atom at which He I 2^1P line
// photons are lost to photoionization of neutral hydrogen instead of
// re-exciting helium, using the Kholupenko, Ivanchik & Varshalovich (2007)
// fit. The channel opens as hydrogen turns neutral below z ~ 2200 and drives
// helium recombination to completion before the z = 1650 handoff.
func heContinuumEscape(tmEv, xHeI, xH1s float64) float64 {
	if xH1s <= 0 || xHeI <= 0 {
		return 0
	}
	dop := math.Sqrt(2 * tmEv / heMassEv) // Doppler width over line frequency
	l3 := lambdaHe21 * lambdaHe21 * lambdaHe21
	gamma := 3 * aHe21 * l3 * xHeI /
		(8 * math.Pi * math.Sqrt(math.Pi) * cLight * dop * sigmaHAtHe21 * xH1s)
	return aHe21 / (1 + 0.36*math.Pow(gamma, 0.86))
}

// heliumRate is dxe/dlna during He II -> He I recombination. Helium evolves
// by its rate equation; hydrogen stays in Saha equilibrium with the free
// electrons, so the total derivative carries both the helium rate and the
// drift of the hydrogen Saha fraction. It is this drift that lets xe close
// in on the pure-hydrogen Saha value once helium is spent.
func heliumRate(in RateInput) float64 {
	s := sahaRatioH(in.TrEv, in.NH)
	xHII := hSahaFraction(s, in.Xe)
	xHeII := in.Xe - xHII
	if xHeII < 0 {
		xHeII = 0
	}
	if xHeII > in.FHe {
		xHeII = in.FHe
	}
	xHeI := in.FHe - xHeII

	var dxHeII float64
	if xHeII > 0 {
		alpha := caseBHelium(in.TmEv)
		// statistical weight 4 between He I ground and He II + e
		beta := alpha * 4 * partitionDensityEv(in.TmEv) * math.Exp(-heI2sIon/in.TmEv)

		k := lambdaHe21 * lambdaHe21 * lambdaHe21 / (8 * math.Pi * in.H)
		n1s := xHeI * in.NH
		esc := lambdaHe2s2 + heContinuumEscape(in.TmEv, xHeI, 1-xHII)
		c := (1 + k*esc*n1s) / (1 + k*(esc+beta)*n1s)

		dxHeII = c * (beta*xHeI*math.Exp(-eHe21/in.TrEv) - alpha*in.NH*in.Xe*xHeII) / in.H
	}

	// hydrogen Saha drift at fixed xe
	const dl = 1e-3
	sPlus := sahaRatioH(in.TrEv*math.Exp(-dl), in.NH*math.Exp(-3*dl))
	sMinus := sahaRatioH(in.TrEv*math.Exp(dl), in.NH*math.Exp(3*dl))
	dxHII := (hSahaFraction(sPlus, in.Xe) - hSahaFraction(sMinus, in.Xe)) / (2 * dl)

	return dxHeII + dxHII
}
