// Package grisu turns binary floating-point values into short decimal digit
// strings using Florian Loitsch's Grisu2 algorithm.
//
// The digits produced by [Shortest] always parse back to the exact input
// value at the input's width. In the vast majority of cases they are also the
// shortest such string.
package grisu

import (
	"math"
	"math/bits"
)

// FP is an unpacked floating-point number with the value F * 2^E.
type FP struct {
	F uint64
	E int
}

// Parts is the IEEE-754 decomposition of a float32 or float64.
type Parts struct {
	Value FP
	// Hidden is the implicit leading significand bit for the source width.
	Hidden   uint64
	Negative bool
	// Special is set for infinities (Value.F == 0) and NaN (Value.F != 0).
	Special bool
}

// Inf reports whether p is an infinity.
func (p Parts) Inf() bool { return p.Special && p.Value.F == 0 }

// NaN reports whether p is not a number.
func (p Parts) NaN() bool { return p.Special && p.Value.F != 0 }

// Decimal is the value Digits * 10^Exp, where Digits holds ASCII decimal
// digits without leading zeros.
type Decimal struct {
	Digits []byte
	Exp    int
}

// Decompose64 splits v into sign, significand and binary exponent.
func Decompose64(v float64) Parts {
	return decompose(math.Float64bits(v), 52, 11)
}

// Decompose32 splits v into sign, significand and binary exponent.
func Decompose32(v float32) Parts {
	return decompose(uint64(math.Float32bits(v)), 23, 8)
}

func decompose(raw uint64, mantBits, expBits uint) Parts {
	bias := 1<<(expBits-1) - 1
	expMask := uint64(1)<<expBits - 1
	hidden := uint64(1) << mantBits

	p := Parts{
		Hidden:   hidden,
		Negative: raw>>(mantBits+expBits) != 0,
	}
	biased := int((raw >> mantBits) & expMask)
	f := raw & (hidden - 1)

	switch {
	case uint64(biased) == expMask:
		p.Special = true
		p.Value = FP{F: f}
	case biased == 0:
		// Subnormal: no hidden bit, minimum exponent.
		p.Value = FP{F: f, E: 1 - bias - int(mantBits)}
	default:
		p.Value = FP{F: f | hidden, E: biased - bias - int(mantBits)}
	}
	return p
}

// Shortest returns the decimal digits for the finite value described by p.
// The sign is not part of the result.
func Shortest(p Parts) Decimal {
	v := p.Value
	if v.F == 0 {
		return Decimal{Digits: []byte{'0'}}
	}

	upper, lower := boundaries(v, p.Hidden)

	k, ck := cachedPower(-59 - (upper.E + 64))

	mUp := mul(upper, ck)
	mUp.F--
	mLow := mul(lower, ck)
	mLow.F++

	return generateDigits(mUp, mUp.F-mLow.F, k)
}

// boundaries returns the points halfway to the neighbouring representable
// values, both scaled to the normalized exponent of the upper one.
func boundaries(v FP, hidden uint64) (upper, lower FP) {
	upper = FP{F: v.F<<1 + 1, E: v.E - 1}
	if v.F == hidden {
		// The predecessor is closer on the low side, one extra bit is needed.
		lower = FP{F: v.F<<2 - 1, E: v.E - 2}
	} else {
		lower = FP{F: v.F<<1 - 1, E: v.E - 1}
	}

	shift := bits.LeadingZeros64(upper.F)
	upper.F <<= uint(shift)
	upper.E -= shift

	if d := lower.E - upper.E; d > 0 {
		lower.F <<= uint(d)
	} else {
		lower.F >>= uint(-d)
	}
	lower.E = upper.E
	return upper, lower
}

// cachedPower picks the smallest cached power of ten whose binary exponent is
// at least eMin and returns its decimal exponent alongside it.
func cachedPower(eMin int) (int, FP) {
	const invLog2Of10 = 0.30102999566398114
	kOpt := int(math.Ceil(float64(eMin+64-1) * invLog2Of10))

	idx := (kOpt-firstCachedExp-1)/cachedExpStep + 1
	k := idx*cachedExpStep + firstCachedExp
	return k, FP{F: pow10Significands[idx], E: int(pow10Exponents[idx])}
}

// mul computes a*b / 2^64, rounding half up.
func mul(a, b FP) FP {
	hi, lo := bits.Mul64(a.F, b.F)
	hi += lo >> 63
	return FP{F: hi, E: a.E + b.E + 64}
}

func generateDigits(up FP, delta uint64, k int) Decimal {
	shift := uint(-up.E)
	one := uint64(1) << shift
	part1 := uint32(up.F >> shift)
	part2 := up.F & (one - 1)

	out := make([]byte, 0, 20)
	kappa := 10
	div := uint32(1000000000)

	for kappa > 0 {
		d := part1 / div
		if d > 0 || len(out) > 0 {
			out = append(out, byte('0'+d))
		}
		part1 %= div
		div /= 10
		kappa--
		if uint64(part1)<<shift+part2 <= delta {
			return Decimal{Digits: out, Exp: kappa - k}
		}
	}

	for {
		part2 *= 10
		d := part2 >> shift
		if d > 0 || len(out) > 0 {
			out = append(out, byte('0'+d))
		}
		part2 &= one - 1
		delta *= 10
		kappa--
		if part2 <= delta {
			break
		}
	}
	return Decimal{Digits: out, Exp: kappa - k}
}
