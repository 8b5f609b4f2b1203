package synth

// Envelope holds the five ADSR parameters of a Tone, each a 0..127 value.
type Envelope struct {
	AttackTime   int8
	DecayTime    int8
	SustainLevel int8
	SustainRate  int8
	ReleaseTime  int8
}

// RingMod holds a Tone's ring-modulation parameters.
type RingMod struct {
	FreqRate int8 // osc2 increment = osc1 increment * (FreqRate+1) / 32
	RMGain   int8 // 0..127, applied to osc2 before multiplying into osc1
}

// Tone is the timbre descriptor snapshotted onto a voice at note-on and
// mutated live only via Program Change, CC, and NRPN/RPN.
type Tone struct {
	Osc1Type   WaveType
	RM         RingMod
	Env        Envelope
	OutputGain int8 // 0..127
}

// gmTones is the 128-entry General MIDI program bank, built by cycling
// through five archetypes: program i gets archetype i mod 5, so the bank
// holds five distinct tones.
var gmTones [128]Tone

func init() {
	archetypes := []Tone{
		{Osc1Type: WaveSine, Env: Envelope{AttackTime: 10, DecayTime: 40, SustainLevel: 90, SustainRate: 1, ReleaseTime: 30}, OutputGain: 100},
		{Osc1Type: WaveTriangle, Env: Envelope{AttackTime: 5, DecayTime: 30, SustainLevel: 100, SustainRate: 1, ReleaseTime: 20}, OutputGain: 110},
		{Osc1Type: WaveSquare, Env: Envelope{AttackTime: 2, DecayTime: 50, SustainLevel: 60, SustainRate: 2, ReleaseTime: 40}, OutputGain: 90},
		{Osc1Type: WaveSaw, Env: Envelope{AttackTime: 20, DecayTime: 60, SustainLevel: 110, SustainRate: 1, ReleaseTime: 60}, OutputGain: 95},
		{Osc1Type: WaveSine, RM: RingMod{FreqRate: 4, RMGain: 64}, Env: Envelope{AttackTime: 1, DecayTime: 80, SustainLevel: 0, SustainRate: 0, ReleaseTime: 80}, OutputGain: 105},
	}
	for i := range gmTones {
		gmTones[i] = archetypes[i%len(archetypes)]
	}
}

// DefaultTone returns GM program 0, the tone Reset All Controllers and
// channel init revert to.
func DefaultTone() Tone {
	return gmTones[0]
}
