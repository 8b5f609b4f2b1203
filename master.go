package synth

// MasterState holds the stereo single-pole DC blocker applied after
// reverb, the last stage of the render path.
type MasterState struct {
	dcPrevIn, dcPrevOut [2]q15 // index 0 = left, 1 = right
}

// renderMaster sums every channel's contribution, runs the result through
// reverb, and DC-blocks it, returning one stereo frame. This is the single
// call a render tick makes per sample.
func (e *Engine) renderMaster() (left, right q15) {
	var sumL, sumR q15
	for ch := int8(0); ch < MaxChannels; ch++ {
		l, r := e.renderChannel(ch)
		sumL = sumL.Add(l)
		sumR = sumR.Add(r)
	}

	wetL, wetR := e.reverb.process(sumL, sumR)

	beforeL, beforeR := wetL, wetR

	outL := hpfAlpha.Mul(wetL + e.master.dcPrevOut[0] - e.master.dcPrevIn[0])
	outR := hpfAlpha.Mul(wetR + e.master.dcPrevOut[1] - e.master.dcPrevIn[1])

	e.master.dcPrevIn[0], e.master.dcPrevIn[1] = beforeL, beforeR
	e.master.dcPrevOut[0], e.master.dcPrevOut[1] = outL, outR

	return outL, outR
}
