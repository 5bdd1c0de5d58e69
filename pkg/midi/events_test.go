package midi

import (
	"math"
	"testing"
)

func TestEventStrings(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NoteOnEvent{BaseEvent: BaseEvent{EventChannel: 1}, NoteNumber: 60, Velocity: 100}, "NoteOn{ch:1, note:60, vel:100}"},
		{NoteOffEvent{BaseEvent: BaseEvent{EventChannel: 2}, NoteNumber: 61, Velocity: 0}, "NoteOff{ch:2, note:61, vel:0}"},
		{PitchBendEvent{BaseEvent: BaseEvent{EventChannel: 3}, Value: -8192}, "PitchBend{ch:3, val:-8192}"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPitchBendSemitones(t *testing.T) {
	tests := []struct {
		value int16
		want  float32
	}{
		{0, 0},
		{8192 / 2, 6},
		{-8192, -12},
		{8191, 8191 * 12.0 / 8192.0},
	}
	for _, tt := range tests {
		e := PitchBendEvent{Value: tt.value}
		if got := e.Semitones(); got != tt.want {
			t.Errorf("Semitones(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNoteToFrequency(t *testing.T) {
	if got := NoteToFrequency(69, 440); got != 440 {
		t.Errorf("A4 = %v, want 440", got)
	}
	if got := NoteToFrequency(81, 440); math.Abs(got-880) > 1e-9 {
		t.Errorf("A5 = %v, want 880", got)
	}
	if got := NoteToFrequency(69, 0); got != 440 {
		t.Errorf("zero tuning fallback = %v, want 440", got)
	}
}

func TestNoteNumberToName(t *testing.T) {
	tests := []struct {
		note uint8
		want string
	}{
		{60, "C4"},
		{69, "A4"},
		{0, "C-1"},
		{127, "G9"},
	}
	for _, tt := range tests {
		if got := NoteNumberToName(tt.note); got != tt.want {
			t.Errorf("NoteNumberToName(%d) = %q, want %q", tt.note, got, tt.want)
		}
	}
}
