// Package midiinput bridges a portmidi input device to the sampler's
// control API.
package midiinput

import (
	"time"

	"github.com/rakyll/portmidi"

	"github.com/wararyo/capsulego/pkg/debug"
)

const logTag = "midiinput"

// Receiver is the slice of the sampler's control API the bridge drives.
type Receiver interface {
	NoteOn(noteNo, velocity, channel uint8)
	NoteOff(noteNo, velocity, channel uint8)
	PitchBend(raw int16, channel uint8)
}

// Controller reads events from one MIDI input device and forwards them.
// Callers must have initialized portmidi before opening a controller.
type Controller struct {
	stream *portmidi.Stream
	target Receiver
	done   chan struct{}
}

// Open starts reading from the device on a background goroutine.
func Open(id portmidi.DeviceID, target Receiver) (*Controller, error) {
	in, err := portmidi.NewInputStream(id, 1024)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		stream: in,
		target: target,
		done:   make(chan struct{}),
	}
	go c.run()
	return c, nil
}

// Close stops the reader goroutine and closes the device.
func (c *Controller) Close() error {
	close(c.done)
	return c.stream.Close()
}

func (c *Controller) run() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		events, err := c.stream.Read(1024)
		if err != nil {
			debug.Errorf(logTag, "read: %v", err)
			return
		}
		if len(events) == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		for _, event := range events {
			Dispatch(c.target, event.Status, event.Data1, event.Data2)
		}
	}
}

// Dispatch decodes one raw MIDI message and forwards it to the receiver.
// Note-on with velocity zero is a note-off, per convention. Messages other
// than note-on, note-off and pitch bend are dropped.
func Dispatch(target Receiver, status, data1, data2 int64) {
	ch := uint8(status & 0x0f)
	switch status & 0xf0 {
	case 0x90:
		if data2 == 0 {
			target.NoteOff(uint8(data1), 0, ch)
			return
		}
		target.NoteOn(uint8(data1), uint8(data2), ch)
	case 0x80:
		target.NoteOff(uint8(data1), uint8(data2), ch)
	case 0xe0:
		// 14-bit bend from the two 7-bit data bytes, recentered on zero.
		target.PitchBend(int16(data2<<7|data1)-8192, ch)
	default:
		debug.Debugf(logTag, "dropped status %02x", status)
	}
}
