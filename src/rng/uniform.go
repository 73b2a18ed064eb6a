package rng

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// readUint64 draws one big-endian 64-bit sample from the entropy source.
// A failed read marks the health monitor unhealthy and surfaces as a
// *SourceError, never as a zero sample.
func readUint64(r io.Reader, h *Health) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if h != nil {
			h.Set(false, "error fetching random bytes: "+err.Error())
		}
		return 0, &SourceError{Err: err}
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Uint64n returns a uniform integer in [0, bound), using Lemire's nearly
// divisionless method:
// https://lemire.me/blog/2019/06/06/nearly-divisionless-random-integer-generation-on-various-systems/
//
// A 64-bit sample s is scaled into [0, bound) by taking the high 64 bits of
// the 128-bit product s*bound. On its own that is biased whenever bound does
// not divide 2^64: the 2^64 mod bound leftover samples land in oversized
// buckets. The low 64 bits of the product tell us whether s was one of them,
// and those samples are rejected and redrawn. The exact threshold
// (2^64 mod bound) needs a division, so it is only computed once the cheap
// low < bound test says the bias region may have been hit; the common case
// is a single multiply with no division at all.
//
// The rejection loop is unbounded. A source stuck on a constant below the
// threshold would loop forever; detecting a stuck source is the Health
// monitor's job, not the sampler's.
func Uint64n(r io.Reader, h *Health, bound uint64) (uint64, error) {
	if bound == 0 {
		return 0, ErrInvalidBound
	}

	s, err := readUint64(r, h)
	if err != nil {
		return 0, err
	}

	hi, lo := bits.Mul64(s, bound)
	if lo < bound {
		// Go defines -bound on a uint64 as 2^64 - bound, so this is
		// (2^64 - bound) mod bound == 2^64 mod bound. The identity is
		// covered by tests, not assumed.
		threshold := -bound % bound
		for lo < threshold {
			s, err = readUint64(r, h)
			if err != nil {
				return 0, err
			}
			hi, lo = bits.Mul64(s, bound)
		}
	}

	return hi, nil
}

// UniformInt64 returns a uniform integer in [min, max] inclusive.
// Built on Uint64n, so it is unbiased assuming the byte stream is uniform.
func UniformInt64(r io.Reader, h *Health, min int64, max int64) (int64, error) {
	// Bounds keep the inclusive range size representable in a uint64.
	const limit = 1_000_000_000_000_000_000
	if min < -limit {
		return 0, errors.New("the minimum value should not be lower than -1,000,000,000,000,000,000")
	}
	if min > limit {
		return 0, errors.New("the minimum value should not be higher than 1,000,000,000,000,000,000")
	}
	if max < -limit {
		return 0, errors.New("the maximum value should not be lower than -1,000,000,000,000,000,000")
	}
	if max > limit {
		return 0, errors.New("the maximum value should not be higher than 1,000,000,000,000,000,000")
	}
	if min > max {
		return 0, errors.New("the minimum value should be smaller than or equal to the maximum value")
	}

	v, err := Uint64n(r, h, uint64(max-min)+1)
	if err != nil {
		return 0, err
	}
	return min + int64(v), nil
}
