package sampler

import "math"

// adsrStage is the current envelope segment of a voice.
type adsrStage uint8

const (
	stageAttack adsrStage = iota
	stageDecay
	stageSustain
	stageRelease
)

// samplePlayer is one concurrently sounding copy of a sample. The pool of
// players is owned by the Sampler and guarded by its players mutex.
type samplePlayer struct {
	sample    *Sample
	noteNo    uint8
	channel   uint8
	volume    float32 // target peak gain from the velocity table
	gain      float32 // current envelope output
	pitchBend float32 // semitones, snapshot of the channel's bend
	pitch     float32 // playback rate
	pos       int
	posF      float32
	createdAt uint64
	released  bool
	playing   bool
	stage     adsrStage
}

// reset starts the player on a new note, overwriting whatever it was doing.
// A nil sample leaves the player idle: the note is dropped but the slot is
// immediately reusable.
func (p *samplePlayer) reset(smp *Sample, noteNo uint8, volume, pitchBend float32, channel uint8, createdAt uint64) {
	p.sample = smp
	p.noteNo = noteNo
	p.channel = channel
	p.volume = volume
	p.gain = 0
	p.pitchBend = pitchBend
	p.pitch = 0
	p.pos = 0
	p.posF = 0
	p.createdAt = createdAt
	p.released = false
	p.stage = stageAttack
	if smp == nil {
		p.playing = false
		return
	}
	p.playing = true
	if !smp.AdsrEnabled {
		p.gain = volume
	}
	p.updatePitch()
}

// updatePitch recomputes the playback rate from the note, the sample root
// and the current bend.
func (p *samplePlayer) updatePitch() {
	if p.sample == nil {
		return
	}
	delta := float64(p.noteNo) - float64(p.sample.Root) + float64(p.pitchBend)
	p.pitch = float32(math.Pow(2, delta/12.0))
}

// updateGain advances the envelope by one step of AdsrUpdateSampleCount
// output samples. A pending release forces the release segment regardless
// of the current one. With ADSR disabled the gain is pinned to the target
// volume and the player ends only at the end of the sample.
func (p *samplePlayer) updateGain() {
	smp := p.sample
	if smp == nil {
		return
	}
	if !smp.AdsrEnabled {
		p.gain = p.volume
		return
	}

	if p.released {
		p.stage = stageRelease
	}

	switch p.stage {
	case stageAttack:
		p.gain += smp.Attack * p.volume
		if p.gain >= p.volume {
			p.gain = p.volume
			p.stage = stageDecay
		}
	case stageDecay:
		goal := smp.Sustain * p.volume
		p.gain = (p.gain-goal)*smp.Decay + goal
		if p.gain-goal < 0.001 {
			p.stage = stageSustain
			p.gain = goal
		}
	case stageSustain:
	case stageRelease:
		p.gain *= smp.Release
		if p.gain < 0.001 {
			p.gain = 0
			p.playing = false
		}
	}
}
