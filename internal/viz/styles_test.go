package viz

import "testing"

func TestSparkline(t *testing.T) {
	ramp := []float64{0, 1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"ramp hits every level", ramp, 8, "▁▂▃▄▅▆▇█"},
		{"constant stays on the floor", []float64{3, 3, 3, 3}, 4, "▁▁▁▁"},
		{"short input", []float64{0, 7}, 8, "▁█"},
		{"empty input", nil, 3, "───"},
		{"zero width", ramp, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values, tt.width); got != tt.want {
				t.Errorf("Sparkline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSparklineDownsamples(t *testing.T) {
	values := make([]float64, 400)
	for i := range values {
		values[i] = float64(i)
	}
	got := Sparkline(values, 40)
	if n := len([]rune(got)); n != 40 {
		t.Errorf("sparkline width = %d runes, want 40", n)
	}
}
