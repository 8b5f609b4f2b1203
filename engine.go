package synth

import (
	"sync"

	"github.com/ice458/pico-synth/midi"
)

// Engine owns every piece of shared state between the render and control
// contexts. It is safe for one goroutine to call Render repeatedly while
// another calls Dispatch/NoteOn/NoteOff/ControlChange concurrently; mu
// serializes control-context mutation against the render tick.
type Engine struct {
	mu sync.Mutex

	channels [MaxChannels]ChannelState
	voices   [MaxVoiceNum]VoiceState
	reverb   ReverbState
	master   MasterState

	queue  *midi.Queue
	logger Logger
}

// NewEngine constructs an Engine with every channel, voice, and the reverb
// bus at their power-on defaults.
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		reverb: defaultReverbState(),
		logger: opts.Logger,
	}
	if e.logger == nil {
		e.logger = noopLogger{}
	}
	for i := range e.channels {
		e.channels[i] = defaultChannelState()
	}
	for i := range e.voices {
		e.voices[i].AssignedChannel = -1
		e.voices[i].env.state = EnvIdle
	}
	return e
}

// AttachQueue wires a MIDI queue so RESET can reinitialize it. The queue
// itself is drained by the caller via DrainOne; Engine never reads from
// transport directly.
func (e *Engine) AttachQueue(q *midi.Queue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = q
}

// DrainOne pops at most one message from the attached queue and dispatches
// it, so a foreground loop can interleave MIDI handling with its other
// work one message per pass. It is a no-op if no queue has been attached
// or the queue is empty.
func (e *Engine) DrainOne() {
	e.mu.Lock()
	q := e.queue
	e.mu.Unlock()
	if q == nil {
		return
	}
	msg, ok := q.Pop()
	if !ok {
		return
	}
	e.Dispatch(msg)
}

// Render produces one stereo Q15 frame, advancing every non-idle voice,
// channel mix, reverb, and the master DC blocker by exactly one sample.
// The render path never blocks on anything but mu and never allocates.
func (e *Engine) Render() (left, right q15) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderMaster()
}

// RenderFrames fills out with interleaved stereo Q15 samples, one Render
// call per frame; len(out) must be even.
func (e *Engine) RenderFrames(out []q15) {
	for i := 0; i+1 < len(out); i += 2 {
		l, r := e.Render()
		out[i] = l
		out[i+1] = r
	}
}

// ControlChange dispatches a standalone Control Change without going
// through the MIDI queue, for hosts that already have a decoded
// message and want to skip transport framing.
func (e *Engine) ControlChange(channel int8, controller, value uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handleControlChangeLocked(channel, controller, value)
}

// ProgramChange loads a GM preset into a channel directly.
func (e *Engine) ProgramChange(channel int8, program uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handleProgramChangeLocked(channel, program)
}

// PitchBend applies a 14-bit pitch-bend value to a channel directly.
func (e *Engine) PitchBend(channel int8, lsb, msb uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlePitchBendLocked(channel, lsb, msb)
}

// Stop forces every voice to RELEASE, as if a STOP system message arrived.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handleStopLocked()
}

// Reset reinitializes the whole engine, as if a RESET system message
// arrived.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handleResetLocked()
}

// ChannelSnapshot returns a copy of one channel's state, taken under the
// same mutex Render uses so it is never torn.
func (e *Engine) ChannelSnapshot(channel int8) ChannelState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channels[channel]
}

// VoiceCount returns the number of voices not currently IDLE, useful for
// host-side level meters or tests.
func (e *Engine) VoiceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for i := range e.voices {
		if !e.voices[i].idle() {
			n++
		}
	}
	return n
}
