package synth

import "math"

// pitchBendInterpTableSize is the resolution of the interpolated pitch-bend
// factor table; bend values are linearly remapped into this index space and
// interpolated between adjacent entries.
const pitchBendInterpTableSize = 129

// pitchBendOriginalTableMax is the largest 14-bit MIDI bend value (16383),
// the denominator against which bend values are rescaled into table space.
const pitchBendOriginalTableMax = 16383

// pitchBendFactors[sensitivity][i] holds a Q8 frequency multiplier; i=0 is
// -sensitivity semitones, i=(size-1)/2 is center (factor 1.0), i=size-1 is
// +sensitivity semitones.
var pitchBendFactors [pitchBendSensitivityMax + 1][pitchBendInterpTableSize]q8

func init() {
	for sens := 0; sens <= pitchBendSensitivityMax; sens++ {
		for i := 0; i < pitchBendInterpTableSize; i++ {
			frac := float64(i)/float64(pitchBendInterpTableSize-1)*2 - 1 // -1..1
			semitones := frac * float64(sens)
			factor := math.Pow(2.0, semitones/12.0)
			pitchBendFactors[sens][i] = q8FromFloat(factor)
		}
	}
}

// getInterpolatedPitchBendFactor returns the Q8 frequency multiplier for a
// (sensitivity, bend value) pair. Out-of-range sensitivity substitutes 2,
// and the bend value is linearly interpolated between the two nearest
// table entries using a Q0.8 fractional byte.
func getInterpolatedPitchBendFactor(sensitivity int8, bendValue uint16) q8 {
	if sensitivity < 0 || int(sensitivity) > pitchBendSensitivityMax {
		sensitivity = defaultPitchBendSens
	}

	const interpMaxIdx = pitchBendInterpTableSize - 1
	const originalMax = pitchBendOriginalTableMax

	if bendValue >= originalMax {
		return pitchBendFactors[sensitivity][interpMaxIdx]
	}

	scaledNumerator := uint32(bendValue) * uint32(interpMaxIdx)
	idx1 := int(scaledNumerator / originalMax)
	remainder := scaledNumerator % originalMax
	fraction := uint8((remainder * 256) / originalMax)
	idx2 := idx1 + 1

	val1 := pitchBendFactors[sensitivity][idx1]
	val2 := pitchBendFactors[sensitivity][idx2]

	diff := int32(val2) - int32(val1)
	term := (diff * int32(fraction)) >> 8

	return val1 + q8(term)
}
