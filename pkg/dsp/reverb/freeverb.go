package reverb

// Freeverb tuning constants (delay lengths in samples at 44.1kHz).
const (
	numCombs     = 8
	numAllpasses = 4
	fixedGain    = 0.015
	scaleDamping = 0.4
	scaleRoom    = 0.28
	offsetRoom   = 0.7
	initialRoom  = 0.5
	initialDamp  = 0.5
	initialWet   = 1.0 / 3.0
	initialDry   = 2.0 / 3.0
)

var combTuning = [numCombs]int{
	1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617,
}

var allpassTuning = [numAllpasses]int{
	556, 441, 341, 225,
}

// Freeverb is a mono rendition of the Freeverb algorithm by Jezar at
// Dreampoint: eight parallel damped combs into four series allpasses. It
// satisfies the sampler's master effect contract and allocates only at
// construction.
type Freeverb struct {
	combs     [numCombs]*combFilter
	allpasses [numAllpasses]*allPassFilter

	roomSize float32
	damping  float32
	wetLevel float32
	dryLevel float32
}

// New creates a Freeverb for the given sample rate. The classic tuning is
// for 44.1kHz; other rates scale the delay lines.
func New(sampleRate float64) *Freeverb {
	f := &Freeverb{
		roomSize: initialRoom,
		damping:  initialDamp,
		wetLevel: initialWet,
		dryLevel: initialDry,
	}

	scale := sampleRate / 44100.0
	for i := 0; i < numCombs; i++ {
		f.combs[i] = newCombFilter(int(float64(combTuning[i]) * scale))
	}
	for i := 0; i < numAllpasses; i++ {
		f.allpasses[i] = newAllPassFilter(int(float64(allpassTuning[i]) * scale))
	}

	f.update()
	return f
}

// SetRoomSize sets the room size (0-1). Larger rooms decay longer.
func (f *Freeverb) SetRoomSize(size float32) {
	f.roomSize = clamp01(size)
	f.update()
}

// SetDamping sets the high-frequency damping amount (0-1).
func (f *Freeverb) SetDamping(damping float32) {
	f.damping = clamp01(damping)
	f.update()
}

// SetWetLevel sets the processed signal level (0-1).
func (f *Freeverb) SetWetLevel(level float32) {
	f.wetLevel = clamp01(level)
}

// SetDryLevel sets the unprocessed signal level (0-1).
func (f *Freeverb) SetDryLevel(level float32) {
	f.dryLevel = clamp01(level)
}

func (f *Freeverb) update() {
	feedback := f.roomSize*scaleRoom + offsetRoom
	damp := f.damping * scaleDamping
	for i := 0; i < numCombs; i++ {
		f.combs[i].setFeedback(feedback)
		f.combs[i].setDamping(damp)
	}
}

// Process runs the reverb over one buffer. in and out must be the same
// length and may be the same slice.
func (f *Freeverb) Process(in, out []float32) {
	for i := range in {
		input := in[i]
		attenuated := input * fixedGain

		wet := float32(0)
		for j := 0; j < numCombs; j++ {
			wet += f.combs[j].process(attenuated)
		}
		for j := 0; j < numAllpasses; j++ {
			wet = f.allpasses[j].process(wet)
		}

		out[i] = input*f.dryLevel + wet*f.wetLevel
	}
}

// Reset clears every delay line.
func (f *Freeverb) Reset() {
	for i := 0; i < numCombs; i++ {
		f.combs[i].reset()
	}
	for i := 0; i < numAllpasses; i++ {
		f.allpasses[i].reset()
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
