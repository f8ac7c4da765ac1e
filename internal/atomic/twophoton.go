package atomic

import "github.com/san-kum/recomb/internal/spectrum"

// twoPhotonRate is the multi-level rate with the radiative-transfer
// feedback: the Lyman-alpha occupation deficit accumulated in the spectral
// history modulates the net decay term. With no buffer attached, it reduces
// to the plain multi-level rate.
func twoPhotonRate(in RateInput) float64 {
	net, escape := hydrogenNet(in, caseBPequignot(in.TmEv))
	if in.Buf != nil && in.Iz > 0 {
		deficit := in.Buf.LyDeficit(spectrum.LyAlpha, in.Iz, in.TrEv)
		net += escape * deficit
	}
	return net + injectionIonization(in)
}
