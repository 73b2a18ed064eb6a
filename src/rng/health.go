package rng

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type Health struct {
	mu            sync.RWMutex
	ok            bool
	lastErr       string
	lastCheckedAt time.Time
	lastSample64  uint64
	repeatCount64 int
}

func NewHealth() *Health { return &Health{ok: false} }

func (h *Health) Set(ok bool, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ok = ok
	h.lastErr = errMsg
	h.lastCheckedAt = time.Now()
}

func (h *Health) Snapshot() (ok bool, errMsg string, t time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ok, h.lastErr, h.lastCheckedAt
}

// HealthCheckRNG performs a lightweight sanity check on the entropy source.
// It cannot prove randomness, but detects disconnection/stuck output/common
// failures before the sampler starts its unbounded rejection loop on them.
func HealthCheckRNG(r io.Reader, h *Health) error {
	const sampleBytes = 256
	buf := make([]byte, sampleBytes)

	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(err, "entropy source read failed")
	}

	// Trivial stuck check: all identical
	allSame := true
	for i := 1; i < len(buf); i++ {
		if buf[i] != buf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return errors.New("entropy source appears stuck (all sampled bytes identical)")
	}

	// Excessive 64-bit repeats. The sampler consumes the stream in 64-bit
	// words, so repeats are checked at that granularity.
	if len(buf) >= 16 {
		var prev uint64
		repeats := 0
		words := 0
		for i := 0; i+8 <= len(buf); i += 8 {
			w := binary.BigEndian.Uint64(buf[i : i+8])
			if words > 0 && w == prev {
				repeats++
			}
			prev = w
			words++
		}
		if words > 1 && repeats > (words-1)*3/4 {
			return errors.New("entropy source appears stuck (64-bit words repeating excessively)")
		}

		if h != nil {
			h.mu.Lock()
			h.lastSample64 = prev
			h.repeatCount64 = 0
			h.mu.Unlock()
		}
	}

	// Too few distinct byte values
	distinct := make(map[byte]struct{}, 256)
	for _, b := range buf {
		distinct[b] = struct{}{}
	}
	if len(distinct) < 8 {
		return errors.Errorf("entropy source sample has too few distinct byte values (%d); suspicious", len(distinct))
	}

	return nil
}

func PeriodicHealthCheck(r io.Reader, h *Health, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var buf [8]byte
	for range ticker.C {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			h.Set(false, "entropy source read failed: "+err.Error())
			continue
		}

		w := binary.BigEndian.Uint64(buf[:])

		h.mu.Lock()
		if w == h.lastSample64 {
			h.repeatCount64++
		} else {
			h.repeatCount64 = 0
		}
		h.lastSample64 = w

		// 20 identical 64-bit values in a row is astronomically unlikely for a healthy source.
		if h.repeatCount64 >= 20 {
			h.ok = false
			h.lastErr = "entropy source appears stuck (repeating identical 64-bit outputs)"
			h.lastCheckedAt = time.Now()
			h.mu.Unlock()
			continue
		}

		h.ok = true
		h.lastErr = ""
		h.lastCheckedAt = time.Now()
		h.mu.Unlock()
	}
}
