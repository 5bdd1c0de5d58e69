// Package midi defines the control events understood by the sampler and the
// queue that carries them from control threads to the audio thread.
package midi

import (
	"fmt"
	"math"
)

// EventType identifies an event variant.
type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePitchBend
)

// Event is a control message. Concrete variants are NoteOnEvent,
// NoteOffEvent and PitchBendEvent.
type Event interface {
	Type() EventType
	Channel() uint8
	String() string
}

// BaseEvent carries the fields shared by all variants.
type BaseEvent struct {
	EventChannel uint8
}

// Channel returns the channel the event is addressed to.
func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

// NoteOnEvent starts a note.
type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity)
}

// NoteOffEvent releases a note.
type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity)
}

// PitchBendEvent changes a channel's pitch bend.
type PitchBendEvent struct {
	BaseEvent
	Value int16 // -8192 to 8191, 0 is center
}

func (e PitchBendEvent) Type() EventType {
	return EventTypePitchBend
}

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d}",
		e.EventChannel, e.Value)
}

// Semitones returns the bend in semitones over a ±12 semitone range.
func (e PitchBendEvent) Semitones() float32 {
	return float32(e.Value) * 12.0 / 8192.0
}

// NoteToFrequency converts a MIDI note number to a frequency in Hz.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Pow(2, (float64(note)-69.0)/12.0)
}

// NoteNumberToName returns the conventional name of a note number, e.g. "A4".
func NoteNumberToName(note uint8) string {
	noteNames := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
