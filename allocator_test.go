package synth

import "testing"

func newTestEngine() *Engine {
	return NewEngine(EngineOptions{})
}

func TestNoteOnAssignsExactlyOneVoice(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(0, 60, 100)

	count := 0
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == 0 && v.Note == 60 {
			count++
			if v.env.state != EnvAttack {
				t.Fatalf("expected ATTACK, got %v", v.env.state)
			}
			if v.Velocity != 100 {
				t.Fatalf("expected velocity 100, got %v", v.Velocity)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one voice assigned, got %d", count)
	}
}

func TestNoteOnPrefersIdleOverSustain(t *testing.T) {
	e := newTestEngine()
	for i := range e.voices {
		e.voices[i].AssignedChannel = 0
		e.voices[i].env.state = EnvSustain
	}
	idleIdx := 5
	e.voices[idleIdx].env.state = EnvIdle
	e.voices[idleIdx].AssignedChannel = -1

	e.NoteOn(0, 72, 90)

	if e.voices[idleIdx].env.state != EnvAttack || e.voices[idleIdx].Note != 72 {
		t.Fatalf("expected the IDLE voice to be chosen over SUSTAIN voices")
	}
}

func TestVoiceStealingTakesFirstActiveVoiceInIndexOrder(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < MaxVoiceNum; i++ {
		e.NoteOn(0, int8(40+i), 100)
	}
	for i := range e.voices {
		if e.voices[i].env.state == EnvIdle {
			t.Fatalf("expected all %d voices busy before the stealing note", MaxVoiceNum)
		}
	}

	e.NoteOn(0, 72, 100)

	if e.voices[0].Note != 72 {
		t.Fatalf("expected voice 0 (first in index order) to be stolen, got note %d on voice 0", e.voices[0].Note)
	}
}

func TestSustainPedalLatchesNoteOff(t *testing.T) {
	e := newTestEngine()
	e.ControlChange(0, 0x40, 127) // sustain on
	e.NoteOn(0, 60, 100)
	e.NoteOff(0, 60)

	v := &e.voices[0]
	if v.env.state == EnvRelease {
		t.Fatalf("expected voice to remain active while hold is on")
	}
	if !v.env.noteOffLatched {
		t.Fatalf("expected note_off_latched to be set")
	}

	e.ControlChange(0, 0x40, 0) // sustain off
	if v.env.state != EnvRelease {
		t.Fatalf("expected voice to transition to RELEASE once hold lifts, got %v", v.env.state)
	}
}

func TestNoteOnOutOfRangeChannelIsIgnored(t *testing.T) {
	e := newTestEngine()
	e.NoteOn(16, 60, 100)
	if e.VoiceCount() != 0 {
		t.Fatalf("expected no voices allocated for an out-of-range channel")
	}
}
