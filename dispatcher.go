package synth

import "github.com/ice458/pico-synth/midi"

// Dispatch routes one decoded MIDI message to the appropriate handler. It
// is the only entry point the control context needs once a message has
// been popped from the queue.
func (e *Engine) Dispatch(msg midi.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch msg.Event {
	case midi.EventNoteOn:
		velocity := int8(msg.Data[2])
		note := int8(msg.Data[1])
		if velocity > 0 {
			e.noteOnLocked(msg.Channel, note, velocity)
		} else {
			e.noteOffLocked(msg.Channel, note)
		}
	case midi.EventNoteOff:
		e.noteOffLocked(msg.Channel, int8(msg.Data[1]))
	case midi.EventPitchBend:
		e.handlePitchBendLocked(msg.Channel, msg.Data[1], msg.Data[2])
	case midi.EventProgramChange:
		e.handleProgramChangeLocked(msg.Channel, msg.Data[1])
	case midi.EventControlChange:
		e.handleControlChangeLocked(msg.Channel, msg.Data[1], msg.Data[2])
	case midi.EventStop:
		e.handleStopLocked()
	case midi.EventReset:
		e.handleResetLocked()
	}
}

// handlePitchBendLocked assembles the 14-bit bend value and refreshes the
// pitch-bend factor on every live voice of the channel.
func (e *Engine) handlePitchBendLocked(channel int8, lsb, msb byte) {
	if channel < 0 || channel >= MaxChannels {
		return
	}
	value := uint16(lsb) | uint16(msb)<<7
	ch := &e.channels[channel]
	ch.PitchBend.Range = value

	factor := getInterpolatedPitchBendFactor(ch.PitchBend.Sensitivity, value)
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == channel && !v.idle() {
			v.pbFactor = factor
		}
	}
}

// handleProgramChangeLocked loads a GM preset into the channel's tone.
// Already-sounding voices keep their note-on snapshot.
func (e *Engine) handleProgramChangeLocked(channel int8, program byte) {
	if channel < 0 || channel >= MaxChannels {
		return
	}
	if int(program) >= len(gmTones) {
		return
	}
	e.channels[channel].Tone = gmTones[program]
}

// handleStopLocked forces every non-idle voice into RELEASE.
func (e *Engine) handleStopLocked() {
	for i := range e.voices {
		if !e.voices[i].idle() {
			e.voices[i].env.state = EnvRelease
		}
	}
}

// handleResetLocked reinitializes the queue, master state, channels and
// forces every voice IDLE.
func (e *Engine) handleResetLocked() {
	if e.queue != nil {
		e.queue.Reset()
	}
	e.master = MasterState{}
	e.reverb = defaultReverbState()
	for i := range e.channels {
		e.channels[i] = defaultChannelState()
	}
	for i := range e.voices {
		e.voices[i].env.state = EnvIdle
	}
}

// handleControlChangeLocked routes a Control Change message. NRPN/RPN
// assembler CCs and the three All-Notes-Off-family CCs are checked first,
// then the flat table of standard controllers.
func (e *Engine) handleControlChangeLocked(channel int8, controller, value byte) {
	if channel < 0 || channel >= MaxChannels {
		return
	}
	ch := &e.channels[channel]

	switch controller {
	case 0x63: // NRPN MSB
		ch.NRPNRPN.NRPNMsb = value
		ch.NRPNRPN.ParamType = ParamNRPN
		return
	case 0x62: // NRPN LSB
		ch.NRPNRPN.NRPNLsb = value
		ch.NRPNRPN.ParamType = ParamNRPN
		return
	case 0x65: // RPN MSB
		ch.NRPNRPN.RPNMsb = value
		ch.NRPNRPN.ParamType = ParamRPN
		return
	case 0x64: // RPN LSB
		ch.NRPNRPN.RPNLsb = value
		ch.NRPNRPN.ParamType = ParamRPN
		return
	case 0x06: // data entry MSB
		e.dispatchDataEntry(channel, true, value)
		return
	case 0x26: // data entry LSB
		e.dispatchDataEntry(channel, false, value)
		return
	case 0x60: // data increment
		e.dispatchDataIncrement(channel, true)
		return
	case 0x61: // data decrement
		e.dispatchDataIncrement(channel, false)
		return
	case 0x7B, 0x78, 0x79: // All Notes Off / All Sound Off / Reset All Controllers
		e.handleAllNotesOffLocked(channel, controller)
		return
	}

	switch controller {
	case 0x07: // Volume
		ch.Volume = q15FromFloat(float64(value) / 127.0 * 0.2)
	case 0x0B: // Expression
		ch.Expression = value
	case 0x0A: // Pan
		ch.Pan = value
	case 0x01: // Modulation depth
		ch.Mod.Depth = int8(value)
		for i := range e.voices {
			v := &e.voices[i]
			if v.AssignedChannel == channel && !v.idle() {
				v.vibrato.depth = ch.Mod.Depth
			}
		}
	case 0x40: // Sustain pedal
		e.handleSustainPedalLocked(channel, value)
	case 0x42: // Sostenuto pedal: recognized, intentionally a no-op (Non-goal)
	case 0x4C: // Vibrato rate
		ch.Mod.Freq = int8(value)
	case 0x5B: // Reverb send
		e.reverb.setReverbSend(value)
	case 0x48: // Release time
		ch.Tone.Env.ReleaseTime = int8(value)
	case 0x49: // Attack time
		ch.Tone.Env.AttackTime = int8(value)
	case 0x4B: // Decay time
		ch.Tone.Env.DecayTime = int8(value)
	}
}

// handleSustainPedalLocked implements CC 0x40: turning hold off releases
// every voice that had a note-off latched while hold was on.
func (e *Engine) handleSustainPedalLocked(channel int8, value byte) {
	ch := &e.channels[channel]
	if value > 0 {
		ch.IsHoldOn = true
		return
	}
	ch.IsHoldOn = false
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == channel && !v.idle() && v.env.noteOffLatched {
			v.env.state = EnvRelease
		}
	}
}

// handleAllNotesOffLocked implements CC 0x78/0x7B (release all voices on
// the channel) and CC 0x79 (Reset All Controllers, which additionally
// reinitializes the channel and resets its still-sounding voices'
// pitch-bend factor, vibrato depth, and tone to GM 0).
func (e *Engine) handleAllNotesOffLocked(channel int8, controller byte) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == channel && !v.idle() {
			v.env.state = EnvRelease
		}
	}

	if controller != 0x79 {
		return
	}
	if channel < 0 || channel >= MaxChannels {
		return
	}
	e.channels[channel] = defaultChannelState()
	ch := &e.channels[channel]
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == channel && !v.idle() {
			v.pbFactor = getInterpolatedPitchBendFactor(ch.PitchBend.Sensitivity, ch.PitchBend.Range)
			v.vibrato.depth = 0
			v.Tone = gmTones[0]
		}
	}
}
