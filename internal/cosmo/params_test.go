package cosmo

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/recomb/internal/recomb"
)

func validInput() Input {
	return Input{
		T0:     2.726,
		OBh2:   0.022,
		OMh2:   0.14,
		ODEh2:  0.3528,
		W0:     -1,
		YHe:    0.24,
		NNuEff: 3.046,
	}
}

func TestNewRejectsUnphysicalInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero T0", func(in *Input) { in.T0 = 0 }},
		{"negative T0", func(in *Input) { in.T0 = -2.7 }},
		{"negative baryons", func(in *Input) { in.OBh2 = -0.01 }},
		{"negative matter", func(in *Input) { in.OMh2 = -0.1 }},
		{"negative curvature", func(in *Input) { in.OKh2 = -1 }},
		{"negative dark energy", func(in *Input) { in.ODEh2 = -0.3 }},
		{"helium fraction one", func(in *Input) { in.YHe = 1.0 }},
		{"negative helium", func(in *Input) { in.YHe = -0.1 }},
		{"negative neutrinos", func(in *Input) { in.NNuEff = -1 }},
		{"baryons exceed matter", func(in *Input) { in.OBh2 = 0.2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := New(in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, recomb.ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestNewDerivedQuantities(t *testing.T) {
	p, err := New(validInput())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// nH0 = 11.223846333047 * obh2 * (1-YHe)
	if math.Abs(p.NH0-0.187663) > 1e-5 {
		t.Errorf("NH0 = %g, want ~0.187663", p.NH0)
	}
	// fHe = YHe / (1-YHe) / 3.97153
	if math.Abs(p.FHe-0.0795133) > 1e-6 {
		t.Errorf("FHe = %g, want ~0.0795133", p.FHe)
	}
	if p.ZStart != 8000 || p.ZEnd != 0 {
		t.Errorf("grid bounds = [%g, %g], want [8000, 0]", p.ZStart, p.ZEnd)
	}

	// nz = 2 + ceil(ln((1+zstart)/(1+zend))/dlna)
	wantNZ := 2 + int(math.Ceil(math.Log(8001.0)/DLNA))
	if p.NZ != wantNZ {
		t.Errorf("NZ = %d, want %d", p.NZ, wantNZ)
	}
	if p.NZ != 105860 {
		t.Errorf("NZ = %d, want 105860 for the standard grid", p.NZ)
	}
}

func TestGridRedshifts(t *testing.T) {
	p, err := New(validInput())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if p.Z(0) != 8000 {
		t.Errorf("Z(0) = %g, want 8000", p.Z(0))
	}
	for _, i := range []int{1, 100, 10000, p.NZ - 1} {
		if p.Z(i) >= p.Z(i-1) {
			t.Errorf("grid not strictly decreasing at i=%d: %g >= %g", i, p.Z(i), p.Z(i-1))
		}
	}
	// the last point overshoots z=0 by less than one step
	zLast := p.Z(p.NZ - 1)
	if zLast > 0 || zLast < -2e-4 {
		t.Errorf("Z(nz-1) = %g, want in (-2e-4, 0]", zLast)
	}
}

func TestBackgroundScaling(t *testing.T) {
	p, err := New(validInput())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got, want := p.NH(0), p.NH0; got != want {
		t.Errorf("NH(0) = %g, want %g", got, want)
	}
	if got, want := p.NH(999), p.NH0*1e9; math.Abs(got/want-1) > 1e-12 {
		t.Errorf("NH(999) = %g, want %g", got, want)
	}
	if got, want := p.TR(1100), 2.726*1101; math.Abs(got-want) > 1e-9 {
		t.Errorf("TR(1100) = %g, want %g", got, want)
	}
}
