package synth

import "testing"

// renderChannelPeaks drives one channel long enough for the envelope to open
// and returns the largest absolute sample seen on each side.
func renderChannelPeaks(e *Engine, channel int8, samples int) (peakL, peakR float64) {
	for i := 0; i < samples; i++ {
		l, r := e.renderChannel(channel)
		if v := l.ToFloat64(); v > peakL {
			peakL = v
		} else if -v > peakL {
			peakL = -v
		}
		if v := r.ToFloat64(); v > peakR {
			peakR = v
		} else if -v > peakR {
			peakR = -v
		}
	}
	return peakL, peakR
}

func TestPanCenterIsEqualLeftRight(t *testing.T) {
	e := newTestEngine()
	e.channels[0].Pan = 64
	e.NoteOn(0, 60, 127)

	peakL, peakR := renderChannelPeaks(e, 0, 2000)
	if peakL == 0 || peakR == 0 {
		t.Fatalf("expected audible output on both sides at center pan")
	}
	if !approxEqual(peakL, peakR, 0.02) {
		t.Fatalf("expected center pan to weight both channels equally, got left=%v right=%v", peakL, peakR)
	}
}

func TestPanHardLeftSilencesRight(t *testing.T) {
	e := newTestEngine()
	e.channels[0].Pan = 0
	e.NoteOn(0, 60, 127)

	peakL, peakR := renderChannelPeaks(e, 0, 2000)
	if peakL == 0 {
		t.Fatalf("expected audible output on the left at hard-left pan")
	}
	if !approxEqual(peakR, 0, 0.001) {
		t.Fatalf("expected hard-left pan to silence the right channel, got %v", peakR)
	}
}

func TestPanHardRightSilencesLeft(t *testing.T) {
	e := newTestEngine()
	e.channels[0].Pan = 127
	e.NoteOn(0, 60, 127)

	peakL, peakR := renderChannelPeaks(e, 0, 2000)
	if peakR == 0 {
		t.Fatalf("expected audible output on the right at hard-right pan")
	}
	if !approxEqual(peakL, 0, 0.001) {
		t.Fatalf("expected hard-right pan to silence the left channel, got %v", peakL)
	}
}

func TestExpressionZeroSilencesChannel(t *testing.T) {
	e := newTestEngine()
	e.channels[0].Expression = 0
	e.NoteOn(0, 60, 127)

	peakL, peakR := renderChannelPeaks(e, 0, 2000)
	if peakL != 0 || peakR != 0 {
		t.Fatalf("expected zero expression to mute the channel, got (%v, %v)", peakL, peakR)
	}
}

func TestIdleVoicesDoNotContributeToChannelMix(t *testing.T) {
	e := newTestEngine()
	left, right := e.renderChannel(0)
	if left != 0 || right != 0 {
		t.Fatalf("expected a channel with no active voices to mix to silence, got (%v, %v)", left, right)
	}
}
