// Package integrate implements the fixed-step multistep scheme the
// recombination history is calibrated against.
package integrate

// Coefficients of the two-step explicit extrapolation. The scheme pairs the
// current derivative with the sample two steps back, not one; together with
// the fixed grid step these constants are a calibrated contract and must not
// be retuned toward canonical Adams-Bashforth.
const (
	cNow  = 1.25
	cLag2 = -0.25
)

// Multistep advances one scalar state variable per call. It is stateless;
// callers carry the lagged derivative samples.
type Multistep struct{}

func NewMultistep() *Multistep { return &Multistep{} }

// Step returns y_{n+1} = y_n + dlna*(1.25*fNow - 0.25*fLag2), where fNow is
// the derivative at the current grid point and fLag2 the derivative two grid
// points back.
func (m *Multistep) Step(y, fNow, fLag2, dlna float64) float64 {
	return y + dlna*(cNow*fNow+cLag2*fLag2)
}
