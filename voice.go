package synth

// EnvState is the ADSR state machine's current phase.
type EnvState int8

const (
	EnvAttack EnvState = iota
	EnvDecay
	EnvSustain
	EnvRelease
	EnvIdle
)

type oscillator struct {
	increment   q8
	readPointer q8
}

type envelope struct {
	amplitude      int32 // 0..127*128, amortized-tick internal range
	state          EnvState
	counter        uint32
	noteOffLatched bool
}

type dcBlocker struct {
	prevIn, prevOut q15
}

// VoiceState is one of MaxVoiceNum render slots. AssignedChannel starts at
// -1 and is never reset when a note ends; the allocator keys exclusively
// off env.state, so a stale channel number on an idle voice is harmless.
type VoiceState struct {
	AssignedChannel int8
	Tone            Tone
	Note            int8
	Velocity        int8

	osc1Type WaveType
	osc1     oscillator
	osc2     oscillator

	pbFactor q8

	vibrato struct {
		oscillator
		factor q8
		depth  int8
		freq   int8
	}

	env envelope
	dc  dcBlocker

	amplitude              q15
	pcmInitialDelayCounter uint32
}

// idle reports whether the voice is a candidate for allocation.
func (v *VoiceState) idle() bool { return v.env.state == EnvIdle }

// setVoiceState initializes a voice for a fresh note-on. Channel 9 is the
// percussion channel: its voices skip the oscillator/envelope setup and
// play raw PCM instead.
func setVoiceState(v *VoiceState, ch *ChannelState, channel int8, note, velocity int8) {
	v.AssignedChannel = channel
	v.Tone = ch.Tone
	v.Note = note
	v.Velocity = velocity
	v.amplitude = 0
	v.dc = dcBlocker{}

	if channel != 9 {
		v.osc1Type = ch.Tone.Osc1Type
		v.osc1 = oscillator{increment: incrementTable[note&0x7f]}
		v.osc2 = oscillator{increment: q8(int64(incrementTable[note&0x7f]) * (int64(ch.Tone.RM.FreqRate) + 1) / 32)}

		v.pbFactor = getInterpolatedPitchBendFactor(ch.PitchBend.Sensitivity, ch.PitchBend.Range)

		v.vibrato.increment = vibratoTable[ch.Mod.Freq]
		v.vibrato.readPointer = 0
		v.vibrato.factor = q8FromFloat(1.0)
		v.vibrato.depth = ch.Mod.Depth
		v.vibrato.freq = ch.Mod.Freq

		v.env = envelope{state: EnvAttack}
	} else {
		v.osc1 = oscillator{increment: q8FromInt(1)}
		v.env = envelope{state: EnvAttack}
		v.pcmInitialDelayCounter = PCMInitialSilenceSamples
	}
}

// render advances the voice's oscillators, vibrato, ring modulation and
// envelope (or PCM playback) by one sample and returns the post-gain,
// DC-blocked Q15 sample.
func (v *VoiceState) render() q15 {
	var wave1, wave2 q15

	if v.AssignedChannel != 9 {
		wave1 = waveTables[v.osc1Type][v.osc1.readPointer.Int()&(TableLength-1)]
		inc1 := v.osc1.increment.Mul(v.pbFactor).Mul(v.vibrato.factor)
		v.osc1.readPointer += inc1
		if v.osc1.readPointer >= q8FromInt(TableLength) {
			v.osc1.readPointer -= q8FromInt(TableLength)
		}

		wave2 = sinTable[v.osc2.readPointer.Int()&(TableLength-1)]
		inc2 := v.osc2.increment.Mul(v.pbFactor).Mul(v.vibrato.factor)
		v.osc2.readPointer += inc2
		if v.osc2.readPointer >= q8FromInt(TableLength) {
			v.osc2.readPointer -= q8FromInt(TableLength)
		}

		if v.vibrato.depth != 0 {
			lfo := sinTable[v.vibrato.readPointer.Int()&(TableLength-1)]
			bipolar := int32(lfo) >> 7
			delta := (bipolar * int32(v.vibrato.depth) * 10) >> 15
			v.vibrato.factor = q8FromInt(1) + q8(delta)
			v.vibrato.readPointer += v.vibrato.increment
			if v.vibrato.readPointer >= q8FromInt(TableLength) {
				v.vibrato.readPointer -= q8FromInt(TableLength)
			}
		} else {
			v.vibrato.factor = q8FromInt(1)
		}

		if v.Tone.RM.FreqRate != 0 {
			wave2 = q15((int32(wave2) * int32(v.Tone.RM.RMGain)) >> 7)
			wave1 = wave1.Mul(wave2)
		}

		v.tickEnvelope()

		adsrGain := q15((int32(v.env.amplitude) * int32(fixedQ15Max)) >> 14)
		wave1 = wave1.Mul(adsrGain)
	} else {
		wave1 = v.renderPCM()
	}

	wave1 = q15((int32(wave1) * int32(v.Velocity)) >> 7)
	v.amplitude = q15((int32(wave1) * int32(v.Tone.OutputGain)) >> 7)

	signal := v.amplitude
	v.amplitude = hpfAlpha.Mul(v.dc.prevOut + signal - v.dc.prevIn)
	v.dc.prevIn = signal
	v.dc.prevOut = v.amplitude

	return v.amplitude
}

// tickEnvelope advances the amortized ADSR state machine by one sample,
// mutating amplitude/state only once every EnvCounterThreshold samples.
// Envelope times are calibrated against that cadence.
func (v *VoiceState) tickEnvelope() {
	if v.env.counter == 0 {
		switch v.env.state {
		case EnvAttack:
			if v.Tone.Env.AttackTime != 0 {
				v.env.amplitude += 127 / int32(v.Tone.Env.AttackTime)
			} else {
				v.env.amplitude = 127 * 128
			}
			if v.env.amplitude >= 127*128 {
				v.env.amplitude = 127 * 128
				v.env.state = EnvDecay
			}
		case EnvDecay:
			if v.Tone.Env.DecayTime != 0 {
				v.env.amplitude -= 127 / int32(v.Tone.Env.DecayTime)
			} else {
				v.env.amplitude = int32(v.Tone.Env.SustainLevel) * 128
			}
			if v.env.amplitude <= int32(v.Tone.Env.SustainLevel)*128 {
				v.env.amplitude = int32(v.Tone.Env.SustainLevel) * 128
				v.env.state = EnvSustain
			}
		case EnvSustain:
			v.env.amplitude -= int32(v.Tone.Env.SustainRate)
			if v.env.amplitude <= 0 {
				v.env.amplitude = 0
				v.env.state = EnvRelease
			}
		case EnvRelease:
			if v.Tone.Env.ReleaseTime != 0 {
				v.env.amplitude -= 127 / int32(v.Tone.Env.ReleaseTime)
			} else {
				v.env.amplitude = 0
			}
			if v.env.amplitude <= 0 {
				v.env.amplitude = 0
				v.env.state = EnvIdle
			}
		case EnvIdle:
			v.env.amplitude = 0
		}
	}
	v.env.counter++
	if v.env.counter >= EnvCounterThreshold {
		v.env.counter = 0
	}
}

// renderPCM implements the percussion-channel playback path: a fixed
// initial silence, then raw sample playback. Missing data or an
// out-of-range note idles the voice immediately.
func (v *VoiceState) renderPCM() q15 {
	if v.pcmInitialDelayCounter > 0 {
		v.pcmInitialDelayCounter--
		return 0
	}

	if v.Note < PCMStartNote || v.Note > PCMEndNote {
		v.env.state = EnvIdle
		v.osc1.readPointer = 0
		return 0
	}

	sample := &pcmSamples[v.Note-PCMStartNote]
	readPos := int(v.osc1.readPointer.Int())
	if sample.Data == nil || sample.Length == 0 || readPos >= sample.Length {
		v.env.state = EnvIdle
		v.osc1.readPointer = 0
		return 0
	}

	out := sample.Data[readPos]
	v.osc1.readPointer += q8FromInt(1)
	if int(v.osc1.readPointer.Int()) >= sample.Length {
		v.env.state = EnvIdle
	}
	return out
}
