package sampler

// DefaultVelocityTable maps MIDI velocity to target peak gain with a squared
// curve: quiet notes fall off faster than linear and velocity 127 plays at
// unity. Replace it with SetVelocityTable to match an instrument's response.
var DefaultVelocityTable = func() [128]float32 {
	var t [128]float32
	for v := range t {
		n := float32(v) / 127.0
		t[v] = n * n
	}
	return t
}()
