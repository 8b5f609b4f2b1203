package synth

import "math"

// WaveType selects an oscillator's read-only lookup table. Dispatch is by
// table index, not by interface or inheritance, to match the render path's
// no-allocation requirement.
type WaveType int8

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
	WaveNoise
	waveTypeCount
)

// waveTables holds one TableLength-entry Q15 lookup table per WaveType,
// generated deterministically at init rather than shipped as a binary
// blob.
var waveTables [waveTypeCount][TableLength]q15

// sinTable is addressed independently of waveTables[WaveSine] because the
// second oscillator and the vibrato LFO are always sine regardless of
// osc1's configured wave type.
var sinTable [TableLength]q15

func init() {
	rng := newNoiseGenerator(0x2545F4914F6CDD1D)
	for i := 0; i < TableLength; i++ {
		phase := 2 * math.Pi * float64(i) / float64(TableLength)
		sample := math.Sin(phase)
		sinTable[i] = q15FromFloat(sample)
		waveTables[WaveSine][i] = sinTable[i]

		if i < TableLength/2 {
			waveTables[WaveSquare][i] = fixedQ15Max
		} else {
			waveTables[WaveSquare][i] = fixedQ15Min
		}

		saw := 2.0*(float64(i)/float64(TableLength)) - 1.0
		waveTables[WaveSaw][i] = q15FromFloat(saw)

		var tri float64
		t := float64(i) / float64(TableLength)
		if t < 0.5 {
			tri = 4*t - 1
		} else {
			tri = 3 - 4*t
		}
		waveTables[WaveTriangle][i] = q15FromFloat(tri)

		waveTables[WaveNoise][i] = q15FromFloat(rng.nextBipolar())
	}
}

const (
	fixedQ15Max = q15(32767)
	fixedQ15Min = q15(-32768)
)

// noiseGenerator is a small xorshift64 PRNG used only to fill the static
// noise table at init time; it is never called from the render path.
type noiseGenerator struct{ state uint64 }

func newNoiseGenerator(seed uint64) *noiseGenerator {
	if seed == 0 {
		seed = 1
	}
	return &noiseGenerator{state: seed}
}

func (g *noiseGenerator) next() uint64 {
	g.state ^= g.state << 13
	g.state ^= g.state >> 7
	g.state ^= g.state << 17
	return g.state
}

func (g *noiseGenerator) nextBipolar() float64 {
	v := g.next() % (1 << 24)
	return 2*(float64(v)/float64(1<<24)) - 1
}

// panTable[pan][0]=left gain, [1]=right gain, satisfying a constant-power
// panning law across pan values 0..127 (64 = center).
var panTable [128][2]q15

func init() {
	for pan := 0; pan < 128; pan++ {
		theta := (float64(pan) / 127.0) * (math.Pi / 2)
		panTable[pan][0] = q15FromFloat(math.Cos(theta))
		panTable[pan][1] = q15FromFloat(math.Sin(theta))
	}
}

// vibratoTable maps a channel's modulation-rate CC value (0..127) to a Q8
// LFO phase increment per sample.
var vibratoTable [128]q8

func init() {
	const minHz = 0.1
	const maxHz = 10.0
	for rate := 0; rate < 128; rate++ {
		hz := minHz + (maxHz-minHz)*float64(rate)/127.0
		incPerSample := hz * float64(TableLength) / float64(SampleRate)
		vibratoTable[rate] = q8FromFloat(incPerSample)
	}
}

// incrementTable maps a MIDI note (0..127) to the osc1 phase increment (Q8)
// that advances a TableLength-entry wave table at the note's fundamental
// frequency.
var incrementTable [128]q8

func init() {
	for note := 0; note < 128; note++ {
		freq := 440.0 * math.Pow(2.0, (float64(note)-69.0)/12.0)
		incPerSample := freq * float64(TableLength) / float64(SampleRate)
		incrementTable[note] = q8FromFloat(incPerSample)
	}
}

// PCMSample is a read-only drum hit: nil Data (or zero Length) means the
// PCM voice goes idle immediately.
type PCMSample struct {
	Data   []q15
	Length int
}

// pcmSamples covers PCMStartNote..PCMEndNote (47 GM percussion notes),
// filled with small synthesized hits. A host with a real drum bank can
// swap these for sampled data of the same shape.
var pcmSamples [PCMEndNote - PCMStartNote + 1]PCMSample

func init() {
	for i := range pcmSamples {
		length := 64 + (i%8)*16
		data := make([]q15, length)
		decay := 1.0
		decayStep := 1.0 / float64(length)
		freq := 80.0 + float64(i)*11.0
		for n := 0; n < length; n++ {
			phase := 2 * math.Pi * freq * float64(n) / float64(SampleRate)
			data[n] = q15FromFloat(math.Sin(phase) * decay)
			decay -= decayStep
			if decay < 0 {
				decay = 0
			}
		}
		pcmSamples[i] = PCMSample{Data: data, Length: length}
	}
}
