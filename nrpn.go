package synth

// commitRPNNRPN applies a fully-assembled 14-bit (parameter, value) pair
// to channel state. Unrecognized parameters are ignored.
func (e *Engine) commitRPNNRPN(channel int8, isNRPN bool, parameter, value uint16) {
	if channel < 0 || channel >= MaxChannels {
		return
	}
	ch := &e.channels[channel]

	pMSB := uint8((parameter >> 7) & 0x7F)
	pLSB := uint8(parameter & 0x7F)
	vMSB := uint8((value >> 7) & 0x7F)

	if isNRPN {
		switch pMSB {
		case 2:
			switch pLSB {
			case 0:
				if vMSB < 5 {
					ch.Tone.Osc1Type = WaveType(vMSB)
				}
			case 2:
				ch.Tone.OutputGain = int8(vMSB)
			}
		case 3:
			switch pLSB {
			case 0:
				ch.Tone.RM.FreqRate = int8(vMSB)
			case 1:
				ch.Tone.RM.RMGain = int8(vMSB)
			}
		case 6:
			switch pLSB {
			case 0:
				ch.Tone.Env.SustainRate = int8(vMSB)
			case 1:
				ch.Tone.Env.SustainLevel = int8(vMSB)
			}
		}
		return
	}

	switch parameter {
	case 0: // RPN 0: pitch bend sensitivity
		if value <= pitchBendSensitivityMax {
			ch.PitchBend.Sensitivity = int8(value)
			for i := range e.voices {
				v := &e.voices[i]
				if v.AssignedChannel == channel && !v.idle() {
					v.pbFactor = getInterpolatedPitchBendFactor(int8(value), ch.PitchBend.Range)
				}
			}
		}
	case 1, 2: // master fine/coarse tuning: accepted, no-op
	}
}

// dispatchDataEntry handles CC 0x06 (data entry MSB) and CC 0x26 (data
// entry LSB), committing the assembled parameter once both halves have
// arrived. A lone LSB commits immediately with the MSB treated as zero,
// so 7-bit controllers still land.
func (e *Engine) dispatchDataEntry(channel int8, isMSB bool, value uint8) {
	ch := &e.channels[channel]
	n := &ch.NRPNRPN
	if n.ParamType == ParamNone {
		return
	}

	if isMSB {
		n.DataMsb = value
		n.DataMsbReceived = true
		if n.DataLsbReceived {
			e.commitAssembled(channel)
			n.DataMsbReceived = false
			n.DataLsbReceived = false
		}
		return
	}

	n.DataLsb = value
	n.DataLsbReceived = true
	if n.DataMsbReceived {
		e.commitAssembled(channel)
		n.DataMsbReceived = false
		n.DataLsbReceived = false
		return
	}
	// Only LSB received so far: commit with MSB treated as 0.
	e.commitAssembledLSBOnly(channel)
	n.DataLsbReceived = false
}

func (e *Engine) assembledParamNumber(n *NRPNState) (isNRPN bool, param uint16) {
	isNRPN = n.ParamType == ParamNRPN
	if isNRPN {
		return true, uint16(n.NRPNMsb)<<7 | uint16(n.NRPNLsb)
	}
	return false, uint16(n.RPNMsb)<<7 | uint16(n.RPNLsb)
}

func (e *Engine) commitAssembled(channel int8) {
	n := &e.channels[channel].NRPNRPN
	isNRPN, param := e.assembledParamNumber(n)
	value := uint16(n.DataMsb)<<7 | uint16(n.DataLsb)
	e.commitRPNNRPN(channel, isNRPN, param, value)
}

func (e *Engine) commitAssembledLSBOnly(channel int8) {
	n := &e.channels[channel].NRPNRPN
	isNRPN, param := e.assembledParamNumber(n)
	e.commitRPNNRPN(channel, isNRPN, param, uint16(n.DataLsb))
}

// dispatchDataIncrement handles CC 0x60/0x61 (increment/decrement). The
// delta is applied to zero, never to the parameter's stored value: 0x60
// always commits 1 and 0x61 always commits the uint16 wraparound 0xFFFF.
// Known quirk, kept deliberately.
func (e *Engine) dispatchDataIncrement(channel int8, increment bool) {
	ch := &e.channels[channel]
	n := &ch.NRPNRPN
	if n.ParamType == ParamNone {
		return
	}
	isNRPN, param := e.assembledParamNumber(n)
	var currentValue uint16 = 0 // never read back, see above
	var newValue uint16
	if increment {
		newValue = currentValue + 1
	} else {
		newValue = currentValue - 1
	}
	e.commitRPNNRPN(channel, isNRPN, param, newValue)
}
