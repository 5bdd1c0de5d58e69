// Package sampler implements a polyphonic real-time sampler: control events
// arrive on a queue, a fixed pool of voices renders pitched, envelope-shaped
// copies of PCM samples into a float mix bus, and each Process call emits one
// buffer period of 16-bit output.
package sampler

import (
	"sync"

	"github.com/wararyo/capsulego/pkg/midi"
)

const (
	// ChannelCount is the number of control channels.
	ChannelCount = 16
	// MaxSound is the size of the voice pool and so the polyphony limit.
	MaxSound = 16
	// SampleBufferSize is the number of output samples written per Process
	// call.
	SampleBufferSize = 128
	// AdsrUpdateSampleCount is the envelope step: the number of output
	// samples over which a voice's gain and pitch are held constant.
	AdsrUpdateSampleCount = 32
)

// The mixing pass needs the buffer to split evenly into envelope steps and
// the output conversion works four samples at a time.
var (
	_ = [1]struct{}{}[SampleBufferSize%AdsrUpdateSampleCount]
	_ = [1]struct{}{}[SampleBufferSize%8]
)

const logTag = "sampler"

// Effect is an in-place master effect. Process reads SampleBufferSize
// samples from in and writes the same count to out; in and out may alias.
type Effect interface {
	Process(in, out []float32)
}

// Sampler is the engine. NoteOn, NoteOff and PitchBend only queue events and
// may be called from any goroutine. SetTimbre, SetMasterVolume,
// SetVelocityTable, SetKernel and AddEffect are configuration calls that
// write engine state without a lock: make them before audio starts or from
// the goroutine that calls Process. Process is called by the audio thread
// once per buffer period and must complete within it.
type Sampler struct {
	queue *midi.Queue

	playersMu sync.Mutex
	players   [MaxSound]samplePlayer
	tick      uint64

	channels [ChannelCount]channel

	kernel        Kernel
	effects       []Effect
	velocityTable *[128]float32
	masterVolume  float32
}

// New creates a sampler with an idle voice pool, the portable kernel and an
// empty master effect chain.
func New() *Sampler {
	s := &Sampler{
		queue:         midi.NewQueue(),
		kernel:        PortableKernel{},
		velocityTable: &DefaultVelocityTable,
		masterVolume:  0.25,
	}
	for i := range s.channels {
		s.channels[i].sampler = s
		s.channels[i].index = uint8(i)
		s.channels[i].playingNotes = make([]playingNote, 0, MaxSound)
	}
	return s
}

// NoteOn queues a note-on. Note and velocity are masked to 7 bits; an
// out-of-range channel falls back to channel 0.
func (s *Sampler) NoteOn(noteNo, velocity, ch uint8) {
	if ch >= ChannelCount {
		ch = 0
	}
	s.queue.Push(midi.NoteOnEvent{
		BaseEvent:  midi.BaseEvent{EventChannel: ch},
		NoteNumber: noteNo & 0x7f,
		Velocity:   velocity & 0x7f,
	})
}

// NoteOff queues a note-off with the same clamping as NoteOn.
func (s *Sampler) NoteOff(noteNo, velocity, ch uint8) {
	if ch >= ChannelCount {
		ch = 0
	}
	s.queue.Push(midi.NoteOffEvent{
		BaseEvent:  midi.BaseEvent{EventChannel: ch},
		NoteNumber: noteNo & 0x7f,
		Velocity:   velocity & 0x7f,
	})
}

// PitchBend queues a bend change. The raw value is clamped to the 14-bit
// range; an out-of-range channel discards the event.
func (s *Sampler) PitchBend(raw int16, ch uint8) {
	if ch >= ChannelCount {
		return
	}
	if raw < -8192 {
		raw = -8192
	} else if raw > 8191 {
		raw = 8191
	}
	s.queue.Push(midi.PitchBendEvent{
		BaseEvent: midi.BaseEvent{EventChannel: ch},
		Value:     raw,
	})
}

// SetTimbre binds a timbre to a channel. Voices already sounding keep their
// sample; an out-of-range channel is a no-op.
func (s *Sampler) SetTimbre(ch uint8, t *Timbre) {
	if ch < ChannelCount {
		s.channels[ch].setTimbre(t)
	}
}

// SetMasterVolume sets the gain applied to every voice in the mixing pass.
func (s *Sampler) SetMasterVolume(v float32) {
	s.masterVolume = v
}

// SetVelocityTable replaces the velocity-to-gain table. A nil table
// restores the default. The table is read, never written; callers must not
// mutate it while audio runs.
func (s *Sampler) SetVelocityTable(t *[128]float32) {
	if t == nil {
		t = &DefaultVelocityTable
	}
	s.velocityTable = t
}

// SetKernel replaces the resampling kernel. A nil kernel restores the
// portable one.
func (s *Sampler) SetKernel(k Kernel) {
	if k == nil {
		k = PortableKernel{}
	}
	s.kernel = k
}

// AddEffect appends an effect to the master chain. Effects run in order,
// in place on the mix bus, after the mixing pass of each Process call.
func (s *Sampler) AddEffect(e Effect) {
	s.effects = append(s.effects, e)
}

// Process generates one buffer period into out, which must hold at least
// SampleBufferSize samples. Queued control events are applied first, so
// their effect is audible within the same period.
func (s *Sampler) Process(out []int16) {
	// Pop one message at a time so producers only ever wait behind a
	// single-element removal, never behind dispatch.
	for {
		event, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.dispatch(event)
	}

	var bus [SampleBufferSize]float32

	s.playersMu.Lock()
	for i := range s.players {
		s.mixPlayer(&s.players[i], &bus)
	}
	s.playersMu.Unlock()

	for _, e := range s.effects {
		e.Process(bus[:], bus[:])
	}

	convertToPCM(bus[:], out[:SampleBufferSize])
}

func (s *Sampler) dispatch(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		s.channels[e.Channel()].noteOn(e.NoteNumber, e.Velocity)
	case midi.NoteOffEvent:
		s.channels[e.Channel()].noteOff(e.NoteNumber, e.Velocity)
	case midi.PitchBendEvent:
		s.channels[e.Channel()].setPitchBend(e.Value)
	}
}

// mixPlayer renders one voice into the bus, one envelope step at a time.
// Callers hold the players mutex.
func (s *Sampler) mixPlayer(p *samplePlayer, bus *[SampleBufferSize]float32) {
	if !p.playing {
		return
	}

	for j := 0; j < SampleBufferSize/AdsrUpdateSampleCount; j++ {
		smp := p.sample
		if smp == nil {
			break
		}
		if smp.AdsrEnabled {
			p.updateGain()
		}
		if !p.playing {
			break
		}

		w := Work{
			Src:  smp.Data,
			Dst:  bus[j*AdsrUpdateSampleCount : (j+1)*AdsrUpdateSampleCount],
			Pos:  p.pos,
			PosF: p.posF,
			// The 65536 scale pre-applies the fixed-point step of the
			// float-to-int16 conversion.
			Gain:  p.gain * s.masterVolume * 65536,
			Pitch: p.pitch,
		}
		s.kernel.Render(&w, AdsrUpdateSampleCount)

		loopEnd := smp.Length
		loopBack := 0
		if smp.AdsrEnabled {
			loopEnd = smp.LoopEnd
			loopBack = smp.LoopStart - smp.LoopEnd
		}

		pos := w.Pos
		if pos >= loopEnd {
			if loopBack == 0 {
				// No loop region: the end of the sample ends the voice.
				p.playing = false
				break
			}
			// A high enough pitch overshoots the loop region by more than
			// its length within one kernel call.
			for pos >= loopEnd {
				pos += loopBack
			}
		}
		p.pos = pos
		p.posF = w.PosF
	}
}
