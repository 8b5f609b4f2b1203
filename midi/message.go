// Package midi decodes raw MIDI transport bytes into the fixed-shape
// message record the dispatcher consumes, and provides the bounded
// single-producer/single-consumer queue that carries them from the
// transport to the control context.
package midi

import (
	"gitlab.com/gomidi/midi/v2"
)

// Event identifies a channel-voice message's status nibble, or a system
// message's full status byte verbatim.
type Event uint8

const (
	EventNoteOff        Event = 0x8
	EventNoteOn         Event = 0x9
	EventControlChange  Event = 0xB
	EventProgramChange  Event = 0xC
	EventPitchBend      Event = 0xE

	EventStop  Event = 0xFC
	EventReset Event = 0xFF
)

// Message is the decoded record the MIDI queue carries. For system
// messages (status >= 0xF0) Channel is the meaningless low nibble of the
// status byte; callers must not key dispatch off it.
type Message struct {
	Channel int8
	Event   Event
	Data    [3]byte
}

// Decode splits a status byte into channel and event: for channel voice
// messages (0x80..0xEF), channel = status&0x0F and event =
// (status>>4)&0x0F; for system messages (status >= 0xF0), event = status
// verbatim and channel is the same meaningless status&0x0F bit pattern.
func Decode(raw []byte) Message {
	var m Message
	if len(raw) == 0 {
		return m
	}
	status := raw[0]
	m.Channel = int8(status & 0x0F)
	if status >= 0xF0 {
		m.Event = Event(status)
	} else {
		m.Event = Event((status >> 4) & 0x0F)
	}
	for i := 0; i < 2 && i+1 < len(raw); i++ {
		m.Data[i+1] = raw[i+1]
	}
	m.Data[0] = status
	return m
}

// NoteOn builds a note-on Message using gomidi's message constructor,
// grounded on the same gitlab.com/gomidi/midi/v2 API other MIDI-producing
// tools in this ecosystem use to build wire messages rather than hand
// assembling status bytes.
func NoteOn(channel, note, velocity uint8) Message {
	raw := midi.NoteOn(channel, note, velocity)
	return Decode(raw)
}

// NoteOff builds a note-off Message via gomidi.
func NoteOff(channel, note uint8) Message {
	raw := midi.NoteOff(channel, note)
	return Decode(raw)
}

// ControlChange builds a control-change Message via gomidi.
func ControlChange(channel, controller, value uint8) Message {
	raw := midi.ControlChange(channel, controller, value)
	return Decode(raw)
}

// ProgramChange builds a program-change Message via gomidi.
func ProgramChange(channel, program uint8) Message {
	raw := midi.ProgramChange(channel, program)
	return Decode(raw)
}

// PitchBend builds a pitch-bend Message via gomidi from a signed 14-bit
// relative value; callers working from raw lsb/msb bytes should use Decode
// directly instead.
func PitchBend(channel uint8, value int16) Message {
	raw := midi.Pitchbend(channel, value)
	return Decode(raw)
}
