package sampler

// Sample is a single PCM waveform together with its playback parameters. It
// is immutable for the lifetime of any voice playing it.
//
// Data must contain at least one guard sample past Length: the resampling
// kernel reads Data[pos] and Data[pos+1].
type Sample struct {
	Data   []int16
	Length int

	// Root is the MIDI note at which the sample plays at unity pitch.
	Root uint8

	// AdsrEnabled selects looped envelope playback. When false the sample
	// plays once to Length at constant volume and stops.
	AdsrEnabled bool

	// Attack, Decay, Sustain and Release are per-envelope-step
	// coefficients, applied every AdsrUpdateSampleCount output samples.
	Attack  float32
	Decay   float32
	Sustain float32
	Release float32

	// LoopStart and LoopEnd delimit the region the voice wraps back into
	// once it reaches LoopEnd. Used only when AdsrEnabled. Loop points are
	// applied between kernel calls, so a voice overshoots LoopEnd by up to
	// pitch*AdsrUpdateSampleCount samples before wrapping; Data must cover
	// that overshoot.
	LoopStart int
	LoopEnd   int
}

// MappedSample binds a sample to an inclusive note and velocity range.
type MappedSample struct {
	LowerNoteNo   uint8
	UpperNoteNo   uint8
	LowerVelocity uint8
	UpperVelocity uint8
	Sample        *Sample
}

// Timbre is an ordered set of mapped samples. A channel plays whichever
// sample matches first.
type Timbre struct {
	Name    string
	Samples []MappedSample
}

// LookupSample returns the first mapped sample whose note and velocity
// ranges both contain the arguments, or nil when none match.
func (t *Timbre) LookupSample(noteNo, velocity uint8) *Sample {
	for i := range t.Samples {
		ms := &t.Samples[i]
		if ms.LowerNoteNo <= noteNo && noteNo <= ms.UpperNoteNo &&
			ms.LowerVelocity <= velocity && velocity <= ms.UpperVelocity {
			return ms.Sample
		}
	}
	return nil
}
