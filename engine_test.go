package synth

import (
	"testing"

	"github.com/ice458/pico-synth/midi"
)

// TestScenarioAttackThenRelease exercises a note held for 1000 samples (still
// early in its attack), released, and rendered until it falls silent and
// idles out.
func TestScenarioAttackThenRelease(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(0, 60, 100)

	for i := 0; i < 1000; i++ {
		e.Render()
	}
	if e.VoiceCount() == 0 {
		t.Fatalf("expected the voice to still be sounding after 1000 samples")
	}

	e.NoteOff(0, 60)

	for i := 0; i < 10000; i++ {
		e.Render()
	}
	if e.VoiceCount() != 0 {
		t.Fatalf("expected the voice to have reached IDLE after a long release tail, got %d active", e.VoiceCount())
	}
}

// TestScenarioResetDuringActiveVoicesSilencesEverything: RESET while notes
// are sounding must immediately silence and idle them.
func TestScenarioResetDuringActiveVoicesSilencesEverything(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(0, 60, 100)
	e.NoteOn(1, 64, 90)
	e.ControlChange(0, 0x5B, 100)

	e.Reset()

	if e.VoiceCount() != 0 {
		t.Fatalf("expected RESET to idle every voice immediately, got %d active", e.VoiceCount())
	}
	left, right := e.Render()
	if left != 0 || right != 0 {
		t.Fatalf("expected a post-RESET render to be silent, got (%v, %v)", left, right)
	}
	if e.reverb.WetLevel != defaultReverbState().WetLevel {
		t.Fatalf("expected RESET to restore default reverb levels")
	}
}

// TestScenarioPolyphonyAcrossChannelsIsIndependent verifies that notes on
// distinct channels render and release independently of one another.
func TestScenarioPolyphonyAcrossChannelsIsIndependent(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(0, 60, 100)
	e.NoteOn(1, 67, 100)

	for i := 0; i < 500; i++ {
		e.Render()
	}

	e.NoteOff(0, 60)
	for i := 0; i < 10000; i++ {
		e.Render()
	}

	var channel0Active, channel1Active bool
	for i := range e.voices {
		v := &e.voices[i]
		if v.idle() {
			continue
		}
		if v.AssignedChannel == 0 {
			channel0Active = true
		}
		if v.AssignedChannel == 1 {
			channel1Active = true
		}
	}
	if channel0Active {
		t.Fatalf("expected channel 0's released note to have idled out")
	}
	if !channel1Active {
		t.Fatalf("expected channel 1's held note to still be sounding")
	}
}

// TestScenarioRenderFramesFillsInterleavedStereoBuffer sanity-checks the
// convenience batch renderer used by audio sinks.
func TestScenarioRenderFramesFillsInterleavedStereoBuffer(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(0, 60, 127)

	buf := make([]q15, 512)
	e.RenderFrames(buf)

	var sawNonZero bool
	for _, s := range buf {
		if s != 0 {
			sawNonZero = true
			break
		}
	}
	if !sawNonZero {
		t.Fatalf("expected a sounding voice to produce non-zero samples somewhere in the buffer")
	}
}

// TestScenarioDrainOneDispatchesExactlyOneQueuedMessage matches
// synthesizer_task's one-message-per-pass cadence.
func TestScenarioDrainOneDispatchesExactlyOneQueuedMessage(t *testing.T) {
	e := newTestEngine()
	q := &midi.Queue{}
	e.AttachQueue(q)

	q.Push(midi.NoteOn(0, 60, 100))
	q.Push(midi.NoteOn(0, 64, 100))

	e.DrainOne()
	if e.VoiceCount() != 1 {
		t.Fatalf("expected exactly one message drained, got VoiceCount=%d", e.VoiceCount())
	}
	e.DrainOne()
	if e.VoiceCount() != 2 {
		t.Fatalf("expected the second drained message to assign a second voice, got VoiceCount=%d", e.VoiceCount())
	}
}
