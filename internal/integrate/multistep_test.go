package integrate

import (
	"math"
	"testing"
)

func TestStepFormula(t *testing.T) {
	m := NewMultistep()

	tests := []struct {
		name              string
		y, fNow, fLag2, h float64
		want              float64
	}{
		{"zero derivatives", 1.0, 0, 0, 0.1, 1.0},
		{"equal derivatives", 1.0, 2.0, 2.0, 0.1, 1.2},
		{"weighted blend", 1.0, 2.0, 4.0, 0.1, 1.15},
		{"negative lag", 0.5, 1.0, -1.0, 0.01, 0.515},
		{"zero step", 3.0, 100, -100, 0, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Step(tt.y, tt.fNow, tt.fLag2, tt.h)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Step(%g,%g,%g,%g) = %g, want %g", tt.y, tt.fNow, tt.fLag2, tt.h, got, tt.want)
			}
		})
	}
}

// With a constant derivative the lag sample equals the current one and the
// scheme reduces to exact linear advancement.
func TestStepConstantDerivative(t *testing.T) {
	m := NewMultistep()
	const (
		c    = -0.7
		h    = 8.49e-5
		n    = 1000
		y0   = 2.0
		want = y0 + n*h*c
	)

	y := y0
	for i := 0; i < n; i++ {
		y = m.Step(y, c, c, h)
	}
	if math.Abs(y-want) > 1e-10 {
		t.Errorf("after %d steps got %g, want %g", n, y, want)
	}
}

// The scheme must reproduce exp decay to the accuracy a first-order-plus
// correction method gives at this step size.
func TestStepExponentialDecay(t *testing.T) {
	m := NewMultistep()
	const h = 1e-3
	const n = 2000

	y := 1.0
	fLag2 := [2]float64{-1.0, -1.0}
	for i := 0; i < n; i++ {
		f := -y
		y = m.Step(y, f, fLag2[i%2], h)
		fLag2[i%2] = f
	}

	want := math.Exp(-float64(n) * h)
	if math.Abs(y-want) > 1e-4 {
		t.Errorf("decay after %d steps: got %g, want %g", n, y, want)
	}
}
