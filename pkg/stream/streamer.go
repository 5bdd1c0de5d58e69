// Package stream adapts the sampler to beep's Streamer interface so it can
// be played through beep's speaker or composed with beep effects.
package stream

import (
	"github.com/wararyo/capsulego/pkg/sampler"
)

// Streamer pulls buffer periods from a sampler and serves them as stereo
// float64 frames. The mono output is duplicated to both channels.
type Streamer struct {
	sampler *sampler.Sampler
	buf     [sampler.SampleBufferSize]int16
	pos     int
}

// New wraps a sampler. The streamer owns the Process cadence; nothing else
// should call Process on the same sampler.
func New(s *sampler.Sampler) *Streamer {
	return &Streamer{
		sampler: s,
		pos:     sampler.SampleBufferSize,
	}
}

// Stream fills samples with the next frames. It always fills the whole
// slice; a live sampler has no end.
func (st *Streamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if st.pos >= sampler.SampleBufferSize {
			st.sampler.Process(st.buf[:])
			st.pos = 0
		}
		v := float64(st.buf[st.pos]) / 32768.0
		st.pos++
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// Err implements beep.Streamer; the sampler never fails.
func (st *Streamer) Err() error {
	return nil
}
