// Package fixedpoint implements the Q15 sample format and the 8-fraction-bit
// Q8 phase/gain format used throughout the synthesizer's render path.
// Conversions to and from float64 are intended for initialization and tests
// only; the render path never leaves fixed-point representation.
package fixedpoint

// Q15 is a signed 16-bit fixed-point sample with 15 fractional bits,
// representing values in the range [-1, 1).
type Q15 int16

const (
	Q15Max Q15 = 32767
	Q15Min Q15 = -32768
	q15One     = 1 << 15
)

// Mul multiplies two Q15 values, widening to 32 bits to avoid overflow.
func (a Q15) Mul(b Q15) Q15 {
	return Q15((int32(a) * int32(b)) >> 15)
}

// Div divides a by b, both Q15.
func (a Q15) Div(b Q15) Q15 {
	return Q15((int32(a) << 15) / int32(b))
}

// Add adds two Q15 values and saturates to [Q15Min, Q15Max].
func (a Q15) Add(b Q15) Q15 {
	sum := int32(a) + int32(b)
	return saturate15(sum)
}

func saturate15(v int32) Q15 {
	if v > int32(Q15Max) {
		return Q15Max
	}
	if v < int32(Q15Min) {
		return Q15Min
	}
	return Q15(v)
}

// ToFloat64 converts a Q15 value to its float64 equivalent.
func (a Q15) ToFloat64() float64 {
	return float64(a) / q15One
}

// FromFloat64 converts a float64 in [-1, 1) to Q15, saturating on overflow.
func FromFloat64(f float64) Q15 {
	scaled := f * q15One
	if scaled > float64(Q15Max) {
		return Q15Max
	}
	if scaled < float64(Q15Min) {
		return Q15Min
	}
	return Q15(scaled)
}

// Q8 is a signed 32-bit fixed-point value with 8 fractional bits, used for
// phase increments and gain factors that must exceed unity (e.g. pitch-bend
// and vibrato multipliers, table read pointers).
type Q8 int32

const (
	Q8Max Q8 = 2147483647
	Q8Min Q8 = -2147483648
	q8One    = 1 << 8
)

// Int returns the integer portion of a Q8 value via arithmetic right shift,
// the same operation used to turn a phase into a table index.
func (a Q8) Int() int32 {
	return int32(a) >> 8
}

// Mul multiplies two Q8 values, widening to 64 bits to avoid overflow.
func (a Q8) Mul(b Q8) Q8 {
	return Q8((int64(a) * int64(b)) >> 8)
}

// Div divides a by b, both Q8.
func (a Q8) Div(b Q8) Q8 {
	return Q8((int64(a) << 8) / int64(b))
}

// ToFloat64 converts a Q8 value to its float64 equivalent.
func (a Q8) ToFloat64() float64 {
	return float64(a) / q8One
}

// Q8FromFloat64 converts a float64 to Q8.
func Q8FromFloat64(f float64) Q8 {
	return Q8(f * q8One)
}

// Q8FromInt lifts a plain integer index into Q8 with a zero fraction.
func Q8FromInt(i int32) Q8 {
	return Q8(i << 8)
}
