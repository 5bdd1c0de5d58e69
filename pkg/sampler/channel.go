package sampler

import (
	"github.com/wararyo/capsulego/pkg/debug"
)

// playingNote records a voice this channel believes is still sounding for a
// held note. The entry is erased on the matching note-off even if the voice
// was stolen in the meantime.
type playingNote struct {
	noteNo   uint8
	playerID int
}

// channel is one MIDI-style control channel: a timbre binding, the current
// pitch bend and the bookkeeping of live voices per held note. noteOn,
// noteOff and setPitchBend run on the audio goroutine, dispatched from
// Process; setTimbre runs on the goroutine that calls Sampler.SetTimbre. A
// channel whose sampler pointer is nil no-ops, which keeps teardown safe.
type channel struct {
	sampler      *Sampler
	index        uint8
	timbre       *Timbre
	pitchBend    float32 // semitones
	playingNotes []playingNote
}

func (c *channel) setTimbre(t *Timbre) {
	if c.sampler == nil {
		return
	}
	c.timbre = t
}

// noteOn resolves the sample for the note, claims a voice and records the
// note as playing. With no free voice the oldest one is stolen outright.
func (c *channel) noteOn(noteNo, velocity uint8) {
	s := c.sampler
	if s == nil {
		return
	}
	debug.Debugf(logTag, "NoteOn : %2x, %2x", noteNo, velocity)

	var smp *Sample
	if c.timbre != nil {
		smp = c.timbre.LookupSample(noteNo, velocity)
	}

	s.playersMu.Lock()
	defer s.playersMu.Unlock()

	id := -1
	oldest := 0
	for i := range s.players {
		if !s.players[i].playing {
			id = i
			break
		}
		if s.players[i].createdAt < s.players[oldest].createdAt {
			oldest = i
		}
	}
	if id < 0 {
		// Every player is sounding; the oldest one is overwritten with no
		// fade-out.
		id = oldest
	}

	s.tick++
	s.players[id].reset(smp, noteNo, s.velocityTable[velocity], c.pitchBend, c.index, s.tick)
	c.playingNotes = append(c.playingNotes, playingNote{noteNo: noteNo, playerID: id})
}

// noteOff requests release of every voice this channel still holds for the
// note. A voice whose note or channel no longer match was stolen since the
// note-on; it is left alone and only the bookkeeping entry goes away.
func (c *channel) noteOff(noteNo, velocity uint8) {
	s := c.sampler
	if s == nil {
		return
	}
	debug.Debugf(logTag, "NoteOff: %2x, %2x", noteNo, velocity)

	s.playersMu.Lock()
	defer s.playersMu.Unlock()

	kept := c.playingNotes[:0]
	for _, pn := range c.playingNotes {
		if pn.noteNo != noteNo {
			kept = append(kept, pn)
			continue
		}
		p := &s.players[pn.playerID]
		if p.noteNo == noteNo && p.channel == c.index {
			p.released = true
		}
	}
	c.playingNotes = kept
}

// setPitchBend stores the new bend and re-pitches every voice that still
// belongs to this channel.
func (c *channel) setPitchBend(raw int16) {
	s := c.sampler
	if s == nil {
		return
	}
	c.pitchBend = float32(raw) * 12.0 / 8192.0

	s.playersMu.Lock()
	defer s.playersMu.Unlock()

	for _, pn := range c.playingNotes {
		p := &s.players[pn.playerID]
		if p.channel == c.index {
			p.pitchBend = c.pitchBend
			p.updatePitch()
		}
	}
}
