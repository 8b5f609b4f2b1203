// Package synth implements the voice engine, channel mixer, reverb, master
// bus and MIDI dispatcher of a polyphonic, multi-timbral synthesizer.
package synth

import (
	"math"

	"github.com/ice458/pico-synth/fixedpoint"
)

type q15 = fixedpoint.Q15
type q8 = fixedpoint.Q8

func q15FromFloat(f float64) q15 { return fixedpoint.FromFloat64(f) }
func q8FromFloat(f float64) q8   { return fixedpoint.Q8FromFloat64(f) }
func q8FromInt(i int32) q8       { return fixedpoint.Q8FromInt(i) }

// Sample rate and polyphony limits.
const (
	SampleRate  = 40000 // Hz
	MaxVoiceNum = 20
	MaxChannels = 16
	TableLength = 256 // wave/vibrato/sin table length, power of two
)

const (
	maxSustainSeconds = 7
	// EnvCounterThreshold is the number of render samples between amortized
	// envelope state-machine ticks. Envelope attack/decay/release times are
	// calibrated against this cadence; changing it without rescaling the
	// tone bank's env fields changes the perceived envelope speed.
	EnvCounterThreshold = uint32(maxSustainSeconds * SampleRate / 127 / 128)

	hpfCutoffHz = 2.0

	// PCMInitialSilenceSamples defers PCM drum onset to suppress a click.
	PCMInitialSilenceSamples = 10

	ReverbCombFilterCount    = 2
	ReverbAllpassFilterCount = 1
	maxReverbCombDelay       = 6000
	maxReverbAllpassDelay    = 800

	PCMStartNote = 35
	PCMEndNote   = 81

	pitchBendSensitivityMax = 24
	defaultPitchBendSens    = 2
	defaultPitchBendRange   = 8192
)

// hpfAlpha is the single-pole DC-blocker coefficient for a 2 Hz cutoff at
// SampleRate, computed in floating point once at init and truncated to
// Q15.
var hpfAlpha = computeHPFAlpha()

func computeHPFAlpha() q15 {
	rc := 1.0 / (2.0 * math.Pi * hpfCutoffHz)
	alpha := rc / (rc + 1.0/float64(SampleRate))
	return q15FromFloat(alpha)
}

// EngineOptions customizes an Engine at construction. The zero value gives
// the power-on defaults.
type EngineOptions struct {
	// Logger receives diagnostic messages from the control path (voice
	// exhaustion, dropped notes). Render-path code never logs. A nil
	// Logger disables logging via a no-op writer.
	Logger Logger
}

// Logger is the minimal logging surface Engine needs, satisfied directly
// by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
