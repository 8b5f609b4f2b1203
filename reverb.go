package synth

// combLine is one parallel feedback delay line of the Schroeder reverb:
// y[n] = x[n] + g*y[n-M].
type combLine struct {
	bufL, bufR [maxReverbCombDelay]q15
	delay      uint16
	gain       q15
	writePtr   uint16
}

// allpassLine is one series Schroeder all-pass stage:
// y[n] = d[n-M] + g*x[n]; d[n] = x[n] - g*y[n].
type allpassLine struct {
	bufL, bufR [maxReverbAllpassDelay]q15
	delay      uint16
	gain       q15
	writePtr   uint16
}

// ReverbState holds the parallel comb bank, series all-pass bank, and
// wet/dry mix of the reverb send.
type ReverbState struct {
	combs    [ReverbCombFilterCount]combLine
	allpass  [ReverbAllpassFilterCount]allpassLine
	WetLevel q15
	DryLevel q15
}

func defaultReverbState() ReverbState {
	r := ReverbState{}
	r.combs[0] = combLine{delay: 1103, gain: q15FromFloat(0.77)}
	r.combs[1] = combLine{delay: 1277, gain: q15FromFloat(0.71)}
	r.allpass[0] = allpassLine{delay: 131, gain: q15FromFloat(0.6)}
	r.WetLevel = q15FromFloat(0.33)
	r.DryLevel = q15FromFloat(1.0) - r.WetLevel
	return r
}

// process runs the stereo input through the parallel comb bank followed by
// the series all-pass bank, then mixes wet/dry.
func (r *ReverbState) process(inLeft, inRight q15) (outLeft, outRight q15) {
	var combSumL, combSumR int32

	for i := range r.combs {
		c := &r.combs[i]
		readPtr := (int(c.writePtr) - int(c.delay) + maxReverbCombDelay) % maxReverbCombDelay

		delayedL := c.bufL[readPtr]
		delayedR := c.bufR[readPtr]

		outL := inLeft.Add(c.gain.Mul(delayedL))
		outR := inRight.Add(c.gain.Mul(delayedR))

		c.bufL[c.writePtr] = outL
		c.bufR[c.writePtr] = outR

		combSumL += int32(outL)
		combSumR += int32(outR)

		c.writePtr = (c.writePtr + 1) % maxReverbCombDelay
	}

	stageL := q15(combSumL / ReverbCombFilterCount)
	stageR := q15(combSumR / ReverbCombFilterCount)

	for i := range r.allpass {
		a := &r.allpass[i]
		readPtr := (int(a.writePtr) - int(a.delay) + maxReverbAllpassDelay) % maxReverbAllpassDelay

		xL, xR := stageL, stageR
		dL := a.bufL[readPtr]
		dR := a.bufR[readPtr]

		yL := dL.Add(a.gain.Mul(xL))
		yR := dR.Add(a.gain.Mul(xR))

		a.bufL[a.writePtr] = xL - a.gain.Mul(yL)
		a.bufR[a.writePtr] = xR - a.gain.Mul(yR)

		stageL, stageR = yL, yR

		a.writePtr = (a.writePtr + 1) % maxReverbAllpassDelay
	}

	outLeft = inLeft.Mul(r.DryLevel).Add(stageL.Mul(r.WetLevel))
	outRight = inRight.Mul(r.DryLevel).Add(stageR.Mul(r.WetLevel))
	return outLeft, outRight
}

// setReverbSend maps CC 0x5B to a wet level topping out at 60%, deriving
// dry as the clamped complement.
func (r *ReverbState) setReverbSend(value uint8) {
	wet := q15FromFloat(float64(value) / 127.0 * 0.6)
	if wet > q15FromFloat(1.0) {
		wet = q15FromFloat(1.0)
	}
	if wet < 0 {
		wet = 0
	}
	r.WetLevel = wet
	dry := q15FromFloat(1.0) - wet
	if dry < 0 {
		dry = 0
	}
	r.DryLevel = dry
}
