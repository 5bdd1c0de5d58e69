package sampler

import "math"

// convertToPCM converts the float mix bus, pre-scaled by 65536, into 16-bit
// PCM, four samples per iteration. Values saturate at the int32 range
// before the shift, so a mix beyond the int16 range clips at the int16
// limits.
func convertToPCM(in []float32, out []int16) {
	for i := 0; i < len(in); i += 4 {
		d0 := truncInt32(in[i])
		d1 := truncInt32(in[i+1])
		d2 := truncInt32(in[i+2])
		d3 := truncInt32(in[i+3])
		out[i] = int16(d0 >> 16)
		out[i+1] = int16(d1 >> 16)
		out[i+2] = int16(d2 >> 16)
		out[i+3] = int16(d3 >> 16)
	}
}

// truncInt32 truncates toward zero, saturating at the int32 range the way
// hardware float-to-int conversion instructions do. Go leaves out-of-range
// float-to-int conversion implementation-specific, so the clamp is explicit.
func truncInt32(v float32) int32 {
	if v >= 2147483648.0 {
		return math.MaxInt32
	}
	if v < -2147483648.0 {
		return math.MinInt32
	}
	return int32(v)
}
