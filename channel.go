package synth

// ParamType is the NRPN/RPN assembler's current parameter kind.
type ParamType int8

const (
	ParamNone ParamType = iota
	ParamRPN
	ParamNRPN
)

// NRPNState is the two-byte parameter-number/data-value assembler, one
// instance per channel.
type NRPNState struct {
	ParamType ParamType

	NRPNMsb, NRPNLsb uint8
	RPNMsb, RPNLsb   uint8

	DataMsb, DataLsb                 uint8
	DataMsbReceived, DataLsbReceived bool
}

// PitchBendState holds the semitone sensitivity and the last received raw
// 14-bit bend value. Range is the bend value, not a semitone range.
type PitchBendState struct {
	Sensitivity int8
	Range       uint16
}

// ModState holds a channel's vibrato depth/rate controller values.
type ModState struct {
	Depth int8
	Freq  int8
}

// ChannelState is one of MaxChannels MIDI channel instances.
type ChannelState struct {
	Tone       Tone
	Volume     q15
	Expression uint8
	PitchBend  PitchBendState
	Mod        ModState
	IsHoldOn   bool
	Pan        uint8
	NRPNRPN    NRPNState
}

func defaultChannelState() ChannelState {
	return ChannelState{
		Tone:       DefaultTone(),
		Volume:     q15FromFloat(0.1),
		Expression: 127,
		PitchBend:  PitchBendState{Sensitivity: defaultPitchBendSens, Range: defaultPitchBendRange},
		Mod:        ModState{Depth: 0, Freq: 64},
		IsHoldOn:   false,
		Pan:        64,
		NRPNRPN:    NRPNState{},
	}
}

// renderChannel mixes all non-idle voices assigned to channelIdx, rendering
// each as a side effect of iteration. Rendering and mixing happen in one
// pass; a parallel mix would have to render every voice first.
func (e *Engine) renderChannel(channelIdx int8) (left, right q15) {
	ch := &e.channels[channelIdx]
	chGain := q15(int32(ch.Volume) * int32(ch.Expression) / 127)

	var mono q15
	for i := range e.voices {
		v := &e.voices[i]
		if v.AssignedChannel == channelIdx && !v.idle() {
			sample := v.render()
			mono = mono.Add(sample.Mul(chGain))
		}
	}

	pan := panTable[ch.Pan]
	return mono.Mul(pan[0]), mono.Mul(pan[1])
}
