package synth

// NoteOn allocates a voice for (channel, note, velocity) with a single-pass
// priority scan: an IDLE voice wins outright, else the first RELEASE voice,
// else the first ATTACK/DECAY/SUSTAIN voice is stolen. If no voice is
// selectable the note is dropped and logged.
func (e *Engine) NoteOn(channel int8, note, velocity int8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noteOnLocked(channel, note, velocity)
}

func (e *Engine) noteOnLocked(channel int8, note, velocity int8) {
	if channel < 0 || channel >= MaxChannels {
		return
	}

	idleCandidate := -1
	releasingCandidate := -1
	activeStealCandidate := -1

	for i := range e.voices {
		state := e.voices[i].env.state
		if state == EnvIdle {
			idleCandidate = i
			break
		}
		if releasingCandidate == -1 && state == EnvRelease {
			releasingCandidate = i
		}
		if activeStealCandidate == -1 && (state == EnvAttack || state == EnvDecay || state == EnvSustain) {
			activeStealCandidate = i
		}
	}

	voiceToUse := -1
	switch {
	case idleCandidate != -1:
		voiceToUse = idleCandidate
	case releasingCandidate != -1:
		voiceToUse = releasingCandidate
	case activeStealCandidate != -1:
		voiceToUse = activeStealCandidate
	}

	if voiceToUse == -1 {
		e.logger.Printf("pico-synth: voice exhaustion, dropping note-on ch=%d note=%d", channel, note)
		return
	}

	setVoiceState(&e.voices[voiceToUse], &e.channels[channel], channel, note, velocity)
}

// NoteOff releases every voice matching (channel, note), respecting the
// sustain-pedal hold latch: if the channel's hold is on, the voice is
// marked note-off-latched but stays in its current ADSR state until the
// pedal lifts.
func (e *Engine) NoteOff(channel int8, note int8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noteOffLocked(channel, note)
}

func (e *Engine) noteOffLocked(channel int8, note int8) {
	if channel < 0 || channel >= MaxChannels {
		return
	}
	for i := range e.voices {
		v := &e.voices[i]
		if !v.idle() && v.AssignedChannel == channel && v.Note == note {
			v.env.noteOffLatched = true
			if !e.channels[channel].IsHoldOn {
				v.env.state = EnvRelease
			}
		}
	}
}
