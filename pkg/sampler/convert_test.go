package sampler

import (
	"math"
	"testing"
)

func TestConvertToPCM(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0, 0},
		{"one lsb", 65536, 1},
		{"positive", float32(0x2000) * 65536, 0x2000},
		{"negative", float32(-0x2000) * 65536, -0x2000},
		{"fraction truncates", 65535, 0},
		{"negative fraction floors", -1, -1}, // arithmetic shift rounds toward -inf
		{"saturates high", math.MaxFloat32, math.MaxInt32 >> 16},
		{"saturates low", -math.MaxFloat32, math.MinInt32 >> 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]float32, 8)
			out := make([]int16, 8)
			in[0] = tt.in
			convertToPCM(in, out)
			if out[0] != tt.want {
				t.Fatalf("convertToPCM(%v) = %d, want %d", tt.in, out[0], tt.want)
			}
			for i := 1; i < 8; i++ {
				if out[i] != 0 {
					t.Fatalf("out[%d] = %d, want 0", i, out[i])
				}
			}
		})
	}
}

func TestTruncInt32Saturates(t *testing.T) {
	if got := truncInt32(3e9); got != math.MaxInt32 {
		t.Fatalf("truncInt32(3e9) = %d, want MaxInt32", got)
	}
	if got := truncInt32(-3e9); got != math.MinInt32 {
		t.Fatalf("truncInt32(-3e9) = %d, want MinInt32", got)
	}
	if got := truncInt32(1234.9); got != 1234 {
		t.Fatalf("truncInt32(1234.9) = %d, want 1234 (truncation)", got)
	}
	if got := truncInt32(-1234.9); got != -1234 {
		t.Fatalf("truncInt32(-1234.9) = %d, want -1234 (truncation)", got)
	}
}
