package history

import (
	"context"
	"testing"

	"github.com/san-kum/recomb/internal/atomic"
	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/recomb"
)

func benchParams(b *testing.B) *cosmo.Parameters {
	b.Helper()
	p, err := cosmo.New(cosmo.Input{
		T0:     2.726,
		OBh2:   0.022,
		OMh2:   0.14,
		ODEh2:  0.3528,
		W0:     -1,
		YHe:    0.24,
		NNuEff: 3.046,
	})
	if err != nil {
		b.Fatalf("parameters: %v", err)
	}
	return p
}

func benchBuild(b *testing.B, model recomb.Model) {
	p := benchParams(b)
	builder := New(p, atomic.NewProvider(model))
	hist := recomb.NewHistory(p.NZ, p.ZStart, p.DLNA)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := builder.Build(context.Background(), hist); err != nil {
			b.Fatalf("build: %v", err)
		}
	}
}

func BenchmarkBuildFull(b *testing.B) {
	benchBuild(b, recomb.ModelFull)
}

func BenchmarkBuildPeebles(b *testing.B) {
	benchBuild(b, recomb.ModelPeebles)
}

func BenchmarkBuildRecFast(b *testing.B) {
	benchBuild(b, recomb.ModelRecFast)
}
